package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-planner/domain"
)

func TestHTTPSubmitter_Submit(t *testing.T) {
	var got domain.GoalRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submit_goal", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cashResult())
	}))
	defer srv.Close()

	res, err := NewHTTPSubmitter(srv.URL+"/", srv.Client()).Submit(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, sampleRequest(), got)
	assert.Equal(t, cashResult(), res)
}

func TestHTTPSubmitter_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error body", http.StatusNotFound, `{"error":"vehicle not found"}`, "vehicle not found"},
		{"empty body", http.StatusInternalServerError, ``, ""},
		{"non json body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"success shaped body", http.StatusInternalServerError, `{"estimated_date":"2026-01-01"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPSubmitter(srv.URL, srv.Client()).Submit(context.Background(), sampleRequest())

			var se *SubmitError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, KindStatus, se.Kind)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.message, se.Message)
		})
	}
}

func TestHTTPSubmitter_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"estimated_date":`))
	}))
	defer srv.Close()

	_, err := NewHTTPSubmitter(srv.URL, srv.Client()).Submit(context.Background(), sampleRequest())

	var se *SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindDecode, se.Kind)
	assert.Equal(t, MsgSubmitFailed, se.UserMessage())
}

func TestHTTPSubmitter_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewHTTPSubmitter(addr, nil).Submit(context.Background(), sampleRequest())

	var se *SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindTransport, se.Kind)
}

func TestHTTPSubmitter_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewHTTPSubmitter(srv.URL, srv.Client()).Submit(ctx, sampleRequest())

	var se *SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindTimeout, se.Kind)
}

func TestHTTPSubmitter_SaveGoal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/save_goal", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"1b4e28ba-2fa1-11d2-883f-0016d3cca427","message":"Data saved successfully!"}`))
	}))
	defer srv.Close()

	id, err := NewHTTPSubmitter(srv.URL, srv.Client()).SaveGoal(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "1b4e28ba-2fa1-11d2-883f-0016d3cca427", id)
}

// The whole pipeline against a stub collaborator: form values in, page
// state and chart out.
func TestPipeline_EndToEnd(t *testing.T) {
	var got domain.GoalRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"estimated_date": "2026-01-01",
			"down_payment": 20000,
			"car_price": 80000,
			"promotion": false,
			"time_chart": [
				{"date": "2025-06-01", "savings": 10000},
				{"date": "2026-01-01", "savings": 20000}
			]
		}`))
	}))
	defer srv.Close()

	notifier := &RecordingNotifier{}
	surface := NewChartSurface(640, 320)
	ctl := NewController(NewHTTPSubmitter(srv.URL, srv.Client()), notifier, surface, Options{Timeout: 5 * time.Second})

	err := ctl.SubmitForm(context.Background(), url.Values{
		FieldIsNew:         {"true"},
		FieldModel:         {"Model X"},
		FieldYear:          {"2025"},
		FieldPaymentMethod: {"cash"},
		FieldDownPayment:   {"20000"},
	})
	require.NoError(t, err)

	assert.True(t, got.IsNew)
	assert.Equal(t, "Model X", got.Model)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, domain.PaymentCash, got.PaymentMethod)
	assert.Equal(t, 20000.0, got.DownPayment)

	v := ctl.View()
	assert.Equal(t, "20,000", v.DownPayment)
	assert.Equal(t, "80,000", v.CarPrice)
	assert.Equal(t, "2026-01-01", v.EstimatedDate)
	assert.False(t, v.PromotionVisible)
	assert.False(t, v.Financing.Visible)
	assert.False(t, v.SubmitButton.Disabled)
	assert.Empty(t, notifier.Messages())

	drawing, ok := surface.Drawing(v.ChartMount)
	require.True(t, ok)
	require.NotNil(t, drawing.Chart.Purchase)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), drawing.Chart.Purchase.Date)
	assert.Equal(t, 20000.0, drawing.Chart.Purchase.Savings)
	assert.NotEmpty(t, drawing.PNG)
}

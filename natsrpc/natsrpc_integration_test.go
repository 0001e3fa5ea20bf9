//go:build integration

package natsrpc

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goal-planner/client"
	"goal-planner/domain"
)

func natsURL() string {
	if v := os.Getenv("NATS_URL"); v != "" {
		return v
	}
	return nats.DefaultURL
}

func connectNATS(t *testing.T) *nats.Conn {
	t.Helper()
	nc, err := nats.Connect(natsURL())
	if err != nil {
		t.Fatalf("nats connect: %v", err)
	}
	t.Cleanup(func() { nc.Close() })
	return nc
}

func TestNATS_SubmitRoundTrip(t *testing.T) {
	nc := connectNATS(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	subject := "integ.goal.submit"

	svc := stubGoals{result: domain.GoalResult{
		EstimatedDate: "2026-01-01",
		DownPayment:   20000,
		CarPrice:      80000,
		TimeChart: []domain.ChartPoint{
			{Date: "2025-06-01", Savings: 10000},
			{Date: "2026-01-01", Savings: 20000},
		},
	}}
	sub, err := Serve(nc, subject, svc, time.Second, log)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	ctl := client.NewController(NewSubmitter(nc, subject), nil, client.NewChartSurface(0, 0), client.Options{Timeout: 2 * time.Second})
	require.NoError(t, ctl.Submit(context.Background(), domain.GoalRequest{Model: "Model X", Year: 2025}))

	v := ctl.View()
	assert.Equal(t, "80,000", v.CarPrice)
	assert.Equal(t, "20,000", v.DownPayment)
}

func TestNATS_SubmitRejected(t *testing.T) {
	nc := connectNATS(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	subject := "integ.goal.rejected"

	sub, err := Serve(nc, subject, stubGoals{err: domain.ErrVehicleNotFound}, time.Second, log)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	_, err = NewSubmitter(nc, subject).Submit(context.Background(), domain.GoalRequest{})

	var se *client.SubmitError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, client.KindStatus, se.Kind)
	assert.Equal(t, "vehicle not found", se.UserMessage())
}

func TestNATS_NoResponders(t *testing.T) {
	nc := connectNATS(t)

	_, err := NewSubmitter(nc, "integ.goal.nobody").Submit(context.Background(), domain.GoalRequest{})

	var se *client.SubmitError
	require.ErrorAs(t, err, &se)
	assert.NotEqual(t, client.KindStatus, se.Kind)
}

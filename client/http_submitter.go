package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"goal-planner/domain"
)

// HTTPSubmitter talks to the collaborator's JSON endpoints.
type HTTPSubmitter struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSubmitter targets baseURL (e.g. "http://localhost:8080"). A nil
// httpClient gets a traced client without its own timeout; the controller
// bounds each call through the context.
func NewHTTPSubmitter(baseURL string, httpClient *http.Client) *HTTPSubmitter {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	return &HTTPSubmitter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit posts req to /submit_goal. Any non-2xx status is a failure,
// whatever the body says.
func (s *HTTPSubmitter) Submit(ctx context.Context, req domain.GoalRequest) (domain.GoalResult, error) {
	var result domain.GoalResult
	if err := s.post(ctx, "/submit_goal", req, &result); err != nil {
		return domain.GoalResult{}, err
	}
	return result, nil
}

// SaveGoal posts req to /save_goal and returns the saved plan id.
func (s *HTTPSubmitter) SaveGoal(ctx context.Context, req domain.GoalRequest) (string, error) {
	var ack struct {
		ID string `json:"id"`
	}
	if err := s.post(ctx, "/save_goal", req, &ack); err != nil {
		return "", err
	}
	return ack.ID, nil
}

func (s *HTTPSubmitter) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &SubmitError{Kind: KindInternal, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return &SubmitError{Kind: KindInternal, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		kind := KindTransport
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return &SubmitError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &SubmitError{Kind: KindStatus, Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var errBody domain.ErrorResponse
		if json.Unmarshal(raw, &errBody) == nil {
			se.Message = strings.TrimSpace(errBody.Error)
		}
		return se
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &SubmitError{Kind: KindDecode, Err: fmt.Errorf("decode %s response: %w", path, err)}
	}
	return nil
}

var (
	_ Submitter = (*HTTPSubmitter)(nil)
	_ Saver     = (*HTTPSubmitter)(nil)
)

// Package natsrpc exposes the submit-goal operation over NATS request/reply,
// with OpenTelemetry trace context carried in message headers.
package natsrpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	"goal-planner/client"
	"goal-planner/domain"
)

// DefaultSubject is the subject the server answers on.
const DefaultSubject = "goal.submit"

// Reply is the envelope sent back for every request. Exactly one of Result
// and Error is set.
type Reply struct {
	Result *domain.GoalResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// GoalSubmitter computes a projection for a goal.
type GoalSubmitter interface {
	SubmitGoal(ctx context.Context, req domain.GoalRequest) (domain.GoalResult, error)
}

// headerCarrier adapts nats.Msg headers for the OTel propagator.
type headerCarrier nats.Msg

func (c *headerCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *headerCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *headerCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// Serve answers goal requests on subject until the subscription is drained.
// Each request gets at most timeout to complete; zero means no limit.
func Serve(nc *nats.Conn, subject string, svc GoalSubmitter, timeout time.Duration, log *slog.Logger) (*nats.Subscription, error) {
	return nc.QueueSubscribe(subject, "goal-planner", func(msg *nats.Msg) {
		ctx := otel.GetTextMapPropagator().Extract(context.Background(), (*headerCarrier)(msg))
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		reply := handle(ctx, msg.Data, svc)
		if reply.Error != "" {
			log.Info("goal request rejected", "subject", msg.Subject, "err", reply.Error)
		}

		data, err := json.Marshal(reply)
		if err != nil {
			log.Error("encode goal reply", "err", err)
			return
		}
		if err := msg.Respond(data); err != nil {
			log.Warn("respond to goal request", "err", err)
		}
	})
}

func handle(ctx context.Context, data []byte, svc GoalSubmitter) Reply {
	var req domain.GoalRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return Reply{Error: "invalid request body"}
	}
	result, err := svc.SubmitGoal(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidGoal) ||
			errors.Is(err, domain.ErrVehicleNotFound) ||
			errors.Is(err, domain.ErrUnreachableGoal) {
			return Reply{Error: err.Error()}
		}
		return Reply{Error: "internal server error"}
	}
	return Reply{Result: &result}
}

// Submitter is a client.Submitter that sends goals over NATS.
type Submitter struct {
	nc      *nats.Conn
	subject string
}

func NewSubmitter(nc *nats.Conn, subject string) *Submitter {
	if subject == "" {
		subject = DefaultSubject
	}
	return &Submitter{nc: nc, subject: subject}
}

// Submit sends req and waits for the reply. Without a deadline on ctx the
// request is bounded by nats.DefaultTimeout.
func (s *Submitter) Submit(ctx context.Context, req domain.GoalRequest) (domain.GoalResult, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return domain.GoalResult{}, &client.SubmitError{Kind: client.KindInternal, Err: err}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, nats.DefaultTimeout)
		defer cancel()
	}

	msg := &nats.Msg{Subject: s.subject, Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*headerCarrier)(msg))

	resp, err := s.nc.RequestMsgWithContext(ctx, msg)
	if err != nil {
		kind := client.KindTransport
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, nats.ErrTimeout) {
			kind = client.KindTimeout
		}
		return domain.GoalResult{}, &client.SubmitError{Kind: kind, Err: err}
	}

	var reply Reply
	if err := json.Unmarshal(resp.Data, &reply); err != nil {
		return domain.GoalResult{}, &client.SubmitError{Kind: client.KindDecode, Err: err}
	}
	if reply.Error != "" || reply.Result == nil {
		return domain.GoalResult{}, &client.SubmitError{Kind: client.KindStatus, Message: reply.Error}
	}
	return *reply.Result, nil
}

var _ client.Submitter = (*Submitter)(nil)

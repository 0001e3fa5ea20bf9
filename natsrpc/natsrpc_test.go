package natsrpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"

	"goal-planner/domain"
)

type stubGoals struct {
	result domain.GoalResult
	err    error
}

func (s stubGoals) SubmitGoal(context.Context, domain.GoalRequest) (domain.GoalResult, error) {
	return s.result, s.err
}

func TestHandle(t *testing.T) {
	ok := stubGoals{result: domain.GoalResult{EstimatedDate: "2026-01-01", CarPrice: 80000}}

	reply := handle(context.Background(), []byte(`{"model":"Mercedes C200","year":2025}`), ok)
	require.NotNil(t, reply.Result)
	assert.Equal(t, "2026-01-01", reply.Result.EstimatedDate)
	assert.Empty(t, reply.Error)

	reply = handle(context.Background(), []byte(`not json`), ok)
	assert.Nil(t, reply.Result)
	assert.Equal(t, "invalid request body", reply.Error)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: model is required", domain.ErrInvalidGoal), "invalid goal: model is required"},
		{domain.ErrVehicleNotFound, "vehicle not found"},
		{domain.ErrUnreachableGoal, "goal cannot be reached"},
		{errors.New("redis down"), "internal server error"},
	}
	for _, tt := range tests {
		reply := handle(context.Background(), []byte(`{}`), stubGoals{err: tt.err})
		assert.Nil(t, reply.Result)
		assert.Equal(t, tt.want, reply.Error)
	}
}

func TestHeaderCarrier(t *testing.T) {
	msg := &nats.Msg{Subject: DefaultSubject}
	c := (*headerCarrier)(msg)

	assert.Empty(t, c.Get("traceparent"))
	assert.Empty(t, c.Keys())

	c.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", msg.Header.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())

	// A W3C propagator reads back what it wrote.
	prop := propagation.TraceContext{}
	ctx := prop.Extract(context.Background(), c)
	out := &nats.Msg{}
	prop.Inject(ctx, (*headerCarrier)(out))
	assert.Equal(t, msg.Header.Get("traceparent"), out.Header.Get("traceparent"))
}

//go:build integration

package repository

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	c := NewRedisCache(addr, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	key := "goal-test:" + uuid.NewString()
	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, "v", time.Minute))
	v, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "REDIS_ADDR", "CACHE_TTL", "RATE_LIMIT", "SUBMIT_TIMEOUT", "NATS_SUBJECT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, "goal.submit", cfg.NATSSubject)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT", "20")
	t.Setenv("SUBMIT_TIMEOUT", "0s")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.Equal(t, time.Duration(0), cfg.SubmitTimeout)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
}

// Package config loads process configuration from the environment, after
// applying an optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration.
type Config struct {
	Port         string
	RedisAddr    string // empty uses the in-memory cache
	CacheTTL     time.Duration
	CatalogFile  string // empty uses the built-in catalog
	NATSURL      string // empty disables the NATS binding
	NATSSubject  string
	CORSOrigin   string
	RateLimit    int
	RateWindow   time.Duration
	OpenAIAPIKey string
	LogLevel     string

	// Client side.
	GoalAPIURL    string
	SubmitTimeout time.Duration // 0 disables the timeout
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          envOr("PORT", "8080"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		CacheTTL:      envDuration("CACHE_TTL", 6*time.Hour),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		NATSURL:       os.Getenv("NATS_URL"),
		NATSSubject:   envOr("NATS_SUBJECT", "goal.submit"),
		CORSOrigin:    envOr("CORS_ORIGIN", "*"),
		RateLimit:     envInt("RATE_LIMIT", 5),
		RateWindow:    envDuration("RATE_WINDOW", time.Minute),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		LogLevel:      envOr("LOG_LEVEL", "info"),
		GoalAPIURL:    envOr("GOAL_API_URL", "http://localhost:8080"),
		SubmitTimeout: envDuration("SUBMIT_TIMEOUT", 30*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresDSN  string
	HTTPAddr     string
	FetchTimeout time.Duration
}

// Load reads configuration from the environment, with a best-effort .env file
// for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is not set")
	}

	cfg := Config{
		PostgresDSN:  dsn,
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		FetchTimeout: 10 * time.Second,
	}

	if raw := os.Getenv("FETCH_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %q: %w", raw, err)
		}
		cfg.FetchTimeout = timeout
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

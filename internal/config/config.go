package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all client configuration.
type Config struct {
	// APIBase is the base URL of the ByteTech backend, without a
	// trailing slash. Default: "http://localhost:8000".
	APIBase string

	// Timeout is the maximum duration for a single API request
	// (including retries). Default: 30s.
	Timeout time.Duration

	// DBPath overrides the local SQLite cache location.
	DBPath string

	// LogPath overrides the log file location.
	LogPath string

	Retry RetryConfig
}

// RetryConfig configures retry behavior for transient request failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		APIBase: "http://localhost:8000",
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. A .env file in the working directory is
// loaded first if present; real environment variables win.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("BYTETECH_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("BYTETECH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("BYTETECH_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("BYTETECH_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("BYTETECH_RETRY_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}

	return cfg
}

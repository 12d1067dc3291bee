package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	DatasetPath  string
	MappingsPath string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DebounceWindow coalesces continuous filter input (the year-range
	// slider) into a single recompute.
	DebounceWindow time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	debounceWindow, err := parseDuration("DEBOUNCE_WINDOW", "300ms")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetPath:     os.Getenv("DATASET_PATH"),
		MappingsPath:    os.Getenv("MAPPINGS_PATH"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		DebounceWindow:  debounceWindow,
	}

	if cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_PATH is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

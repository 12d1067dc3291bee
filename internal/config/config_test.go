package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATASET_PATH", "data/incidents.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/incidents.csv", cfg.DatasetPath)
	assert.Empty(t, cfg.MappingsPath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceWindow)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATASET_PATH", "/data/fires.csv")
	t.Setenv("MAPPINGS_PATH", "/etc/wildfire/classification.yaml")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DEBOUNCE_WINDOW", "150ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/fires.csv", cfg.DatasetPath)
	assert.Equal(t, "/etc/wildfire/classification.yaml", cfg.MappingsPath)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceWindow)
}

func TestLoad_MissingDatasetPath(t *testing.T) {
	t.Setenv("DATASET_PATH", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_PATH")
}

func TestLoad_InvalidDebounceWindow(t *testing.T) {
	t.Setenv("DATASET_PATH", "data/incidents.csv")
	t.Setenv("DEBOUNCE_WINDOW", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEBOUNCE_WINDOW")
}

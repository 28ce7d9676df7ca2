package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(100<<20), cfg.Limits.MaxUploadBytes)
	assert.Equal(t, 20, cfg.Limits.MaxFiles)
	assert.Equal(t, 30*time.Minute, cfg.Workspace.MaxAge)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.Empty(t, cfg.AI.APIKey)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  host: "127.0.0.1"
limits:
  max_upload_bytes: 1048576
workspace:
  sweep_interval: 1m
  max_age: 5m
observability:
  log_level: debug
  log_format: console
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, int64(1048576), cfg.Limits.MaxUploadBytes)
	assert.Equal(t, time.Minute, cfg.Workspace.SweepInterval)
	assert.Equal(t, 5*time.Minute, cfg.Workspace.MaxAge)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	// Untouched sections keep their defaults.
	assert.Equal(t, 20, cfg.Limits.MaxFiles)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("BLINKPDF_LOG_LEVEL", "warn")
	t.Setenv("BLINKPDF_AI_MODEL", "gemini-pro-test")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
	assert.Equal(t, "gemini-pro-test", cfg.AI.Model)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"zero upload cap", func(c *Config) { c.Limits.MaxUploadBytes = 0 }},
		{"zero max files", func(c *Config) { c.Limits.MaxFiles = 0 }},
		{"zero workspace age", func(c *Config) { c.Workspace.MaxAge = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

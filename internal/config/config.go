// Package config provides unified configuration loading for the BlinkPDF
// service. Supports YAML files, environment variables, and programmatic
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Limits        LimitsConfig        `yaml:"limits"`
	Workspace     WorkspaceConfig     `yaml:"workspace"`
	AI            AIConfig            `yaml:"ai"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
}

// LimitsConfig bounds what a single request may upload.
type LimitsConfig struct {
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
	MaxFiles       int   `yaml:"max_files"`
}

// WorkspaceConfig holds temp-artifact settings.
type WorkspaceConfig struct {
	Dir           string        `yaml:"dir"` // empty means the OS temp dir
	SweepInterval time.Duration `yaml:"sweep_interval"`
	MaxAge        time.Duration `yaml:"max_age"`
}

// AIConfig holds settings for the Gemini-backed tools. The API key is only
// ever read from the environment, never from a file.
type AIConfig struct {
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	APIKey      string  `yaml:"-"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. An empty path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration with sensible defaults for development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      60 * time.Second,
			WriteTimeout:     120 * time.Second,
			IdleTimeout:      120 * time.Second,
			RequestTimeout:   90 * time.Second,
			GracefulShutdown: 10 * time.Second,
		},
		Limits: LimitsConfig{
			MaxUploadBytes: 100 << 20, // 100MB, matches the historical cap
			MaxFiles:       20,
		},
		Workspace: WorkspaceConfig{
			Dir:           "",
			SweepInterval: 10 * time.Minute,
			MaxAge:        30 * time.Minute,
		},
		AI: AIConfig{
			Model:       "gemini-2.0-flash",
			MaxTokens:   1024,
			Temperature: 0.2,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BLINKPDF_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("BLINKPDF_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("BLINKPDF_LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("BLINKPDF_WORKSPACE_DIR"); v != "" {
		cfg.Workspace.Dir = v
	}
	if v := os.Getenv("BLINKPDF_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	cfg.AI.APIKey = os.Getenv("GEMINI_API_KEY")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Limits.MaxUploadBytes <= 0 {
		return fmt.Errorf("invalid max upload bytes: %d", c.Limits.MaxUploadBytes)
	}
	if c.Limits.MaxFiles < 1 {
		return fmt.Errorf("invalid max files: %d", c.Limits.MaxFiles)
	}
	if c.Workspace.MaxAge <= 0 {
		return fmt.Errorf("invalid workspace max age: %s", c.Workspace.MaxAge)
	}
	return nil
}

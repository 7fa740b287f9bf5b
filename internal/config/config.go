// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for kryptt.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"
)

// Config is the top-level configuration structure.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Agent  AgentConfig  `yaml:"agent"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds the HTTP gateway settings.
type ServerConfig struct {
	// Bind is the listen address, e.g. ":8000" or "127.0.0.1:8000".
	Bind string `yaml:"bind"`

	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// AllowedOrigins is the CORS allowlist. "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// AgentConfig tunes the model and the reasoning loop shared by all agents.
type AgentConfig struct {
	// Model is the chat model identifier sent to the provider.
	Model string `yaml:"model"`

	Temperature float32 `yaml:"temperature"`

	// MaxRetries bounds provider call retries per loop iteration.
	MaxRetries int `yaml:"max_retries"`

	// MaxIterations bounds reason-act cycles per chat turn.
	MaxIterations int `yaml:"max_iterations"`

	// MaxMessages bounds remembered conversation history per agent.
	MaxMessages int `yaml:"max_messages"`

	// Timeout is the wall-clock bound for one chat turn.
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Bind == "" {
		c.Server.Bind = ":8000"
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = 3 * time.Minute
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Agent.Model == "" {
		c.Agent.Model = "llama-3.3-70b-versatile"
	}
	if c.Agent.Temperature <= 0 {
		c.Agent.Temperature = 0.1
	}
	if c.Agent.MaxRetries <= 0 {
		c.Agent.MaxRetries = 2
	}
	if c.Agent.MaxIterations <= 0 {
		c.Agent.MaxIterations = 10
	}
	if c.Agent.MaxMessages <= 0 {
		c.Agent.MaxMessages = 10
	}
	if c.Agent.Timeout <= 0 {
		c.Agent.Timeout = 2 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the structural validity of a Config.
func (c *Config) Validate() error {
	var errs []error

	if _, err := net.ResolveTCPAddr("tcp", c.Server.Bind); err != nil {
		errs = append(errs, fmt.Errorf("config: invalid bind address %q", c.Server.Bind))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Agent.Temperature > 2 {
		errs = append(errs, fmt.Errorf("config: temperature %v out of range [0, 2]", c.Agent.Temperature))
	}

	return errors.Join(errs...)
}

// LogLevel parses the configured level string.
func (c *Config) LogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
}

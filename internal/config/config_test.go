package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Bind != ":8000" {
		t.Errorf("Bind = %q, want :8000", cfg.Server.Bind)
	}
	if cfg.Agent.MaxMessages != 10 {
		t.Errorf("MaxMessages = %d, want 10", cfg.Agent.MaxMessages)
	}
	if cfg.Agent.Model != "llama-3.3-70b-versatile" {
		t.Errorf("Model = %q", cfg.Agent.Model)
	}
}

func TestLoad_ParsesAndFillsDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  bind: "127.0.0.1:9000"
agent:
  max_iterations: 5
  timeout: 90s
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1:9000" {
		t.Errorf("Bind = %q", cfg.Server.Bind)
	}
	if cfg.Agent.MaxIterations != 5 {
		t.Errorf("MaxIterations = %d, want 5", cfg.Agent.MaxIterations)
	}
	if cfg.Agent.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Agent.Timeout)
	}
	// Untouched fields still default.
	if cfg.Agent.MaxMessages != 10 {
		t.Errorf("MaxMessages = %d, want 10", cfg.Agent.MaxMessages)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("KRYPTT_TEST_BIND", "127.0.0.1:7777")

	path := writeConfig(t, `
server:
  bind: "${KRYPTT_TEST_BIND}"
log:
  level: "${KRYPTT_TEST_LEVEL:-warn}"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1:7777" {
		t.Errorf("Bind = %q", cfg.Server.Bind)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Level = %q, want default-expanded warn", cfg.Log.Level)
	}
}

func TestLoad_UnresolvedVariable(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server:
  bind: "${KRYPTT_DEFINITELY_UNSET_VAR}"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unresolved variable")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(c *Config) {}},
		{name: "bad bind", mutate: func(c *Config) { c.Server.Bind = "not-an-addr:xx" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "temperature too high", mutate: func(c *Config) { c.Agent.Temperature = 3 }, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Log.Level = "warning"
	level, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if level.String() != "WARN" {
		t.Errorf("level = %s, want WARN", level)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("Server.MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, 1<<20)
	}
	if cfg.Verifier.Language != "id" {
		t.Errorf("Verifier.Language = %q, want id", cfg.Verifier.Language)
	}
	if cfg.Verifier.MaxExponent != 64 || cfg.Verifier.MaxTerms != 50000 {
		t.Errorf("limits = %d/%d, want 64/50000", cfg.Verifier.MaxExponent, cfg.Verifier.MaxTerms)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v, want info/text", cfg.Log)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "linearcheck.yaml", `
server:
  addr: "127.0.0.1:9000"
  read_timeout: 3s
log:
  level: debug
  format: json
verifier:
  language: en
  max_exponent: 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("ReadTimeout = %v, want 3s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 15*time.Second {
		t.Errorf("WriteTimeout = %v, want default 15s", cfg.Server.WriteTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Verifier.Language != "en" || cfg.Verifier.MaxExponent != 8 {
		t.Errorf("verifier = %+v", cfg.Verifier)
	}
	if cfg.Verifier.MaxTerms != 50000 {
		t.Errorf("MaxTerms = %d, want default", cfg.Verifier.MaxTerms)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "linearcheck.toml", `
[verifier]
max_input_length = 128
parallelism = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Verifier.MaxInputLength != 128 || cfg.Verifier.Parallelism != 2 {
		t.Errorf("verifier = %+v", cfg.Verifier)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "linearcheck.yaml", "log:\n  level: warn\n")
	t.Setenv("LINEARCHECK_LOG_LEVEL", "error")
	t.Setenv("LINEARCHECK_SERVER_ADDR", ":9999")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want error", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want :9999", cfg.Server.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidValue(t *testing.T) {
	path := writeFile(t, "linearcheck.yaml", "log:\n  format: xml\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Format != "xml" {
		t.Fatalf("log.format = %q, want the raw file value", cfg.Log.Format)
	}
	if err := cfg.Validate(); !IsConfigError(err) {
		t.Fatalf("Validate error = %v, want *ConfigError", err)
	}

	cfg.Log.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate after override: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, "server.addr"},
		{"zero read timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "server.read_timeout"},
		{"negative shutdown", func(c *Config) { c.Server.ShutdownTimeout = -time.Second }, "server.shutdown_timeout"},
		{"zero body", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad language", func(c *Config) { c.Verifier.Language = "not a tag!" }, "verifier.language"},
		{"zero exponent", func(c *Config) { c.Verifier.MaxExponent = 0 }, "verifier.max_exponent"},
		{"zero terms", func(c *Config) { c.Verifier.MaxTerms = 0 }, "verifier.max_terms"},
		{"zero length", func(c *Config) { c.Verifier.MaxInputLength = 0 }, "verifier.max_input_length"},
		{"zero parallelism", func(c *Config) { c.Verifier.Parallelism = 0 }, "verifier.parallelism"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			ce, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "log.level", Message: "unknown level"}
	want := "config error in field 'log.level': unknown level"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

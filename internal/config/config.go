// Package config loads linearcheck settings from defaults, an optional
// config file and LINEARCHECK_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix is prepended to every environment override, for example
// LINEARCHECK_SERVER_ADDR or LINEARCHECK_VERIFIER_LANGUAGE.
const EnvPrefix = "LINEARCHECK"

// Config is the root configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" json:"server" yaml:"server"`
	Log      LogConfig      `mapstructure:"log" json:"log" yaml:"log"`
	Verifier VerifierConfig `mapstructure:"verifier" json:"verifier" yaml:"verifier"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr              string        `mapstructure:"addr" json:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" json:"read_header_timeout" yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxBodyBytes      int64         `mapstructure:"max_body_bytes" json:"max_body_bytes" yaml:"max_body_bytes"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// VerifierConfig configures message language and normalization limits.
type VerifierConfig struct {
	Language       string `mapstructure:"language" json:"language" yaml:"language"`
	MaxExponent    int    `mapstructure:"max_exponent" json:"max_exponent" yaml:"max_exponent"`
	MaxTerms       int    `mapstructure:"max_terms" json:"max_terms" yaml:"max_terms"`
	MaxInputLength int    `mapstructure:"max_input_length" json:"max_input_length" yaml:"max_input_length"`
	Parallelism    int    `mapstructure:"parallelism" json:"parallelism" yaml:"parallelism"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Verifier: VerifierConfig{
			Language:       "id",
			MaxExponent:    64,
			MaxTerms:       50000,
			MaxInputLength: 4096,
			Parallelism:    4,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_header_timeout", d.Server.ReadHeaderTimeout)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", d.Server.IdleTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("verifier.language", d.Verifier.Language)
	v.SetDefault("verifier.max_exponent", d.Verifier.MaxExponent)
	v.SetDefault("verifier.max_terms", d.Verifier.MaxTerms)
	v.SetDefault("verifier.max_input_length", d.Verifier.MaxInputLength)
	v.SetDefault("verifier.parallelism", d.Verifier.Parallelism)
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment apply. The file format follows its
// extension (yaml, toml or json). The result is not validated; callers
// apply their overrides first and then call Validate.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field and reports the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return &ConfigError{Field: "server.addr", Message: "must not be empty"}
	}
	timeouts := map[string]time.Duration{
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.read_timeout":        c.Server.ReadTimeout,
		"server.write_timeout":       c.Server.WriteTimeout,
		"server.idle_timeout":        c.Server.IdleTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
	}
	for _, field := range []string{"server.read_header_timeout", "server.read_timeout", "server.write_timeout", "server.idle_timeout", "server.shutdown_timeout"} {
		if timeouts[field] <= 0 {
			return &ConfigError{Field: field, Message: "must be positive"}
		}
	}
	if c.Server.MaxBodyBytes <= 0 {
		return &ConfigError{Field: "server.max_body_bytes", Message: "must be positive"}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &ConfigError{Field: "log.format", Message: fmt.Sprintf("unknown format %q (want text or json)", c.Log.Format)}
	}
	if _, err := language.Parse(c.Verifier.Language); err != nil {
		return &ConfigError{Field: "verifier.language", Message: err.Error()}
	}
	limits := []struct {
		field string
		value int
	}{
		{"verifier.max_exponent", c.Verifier.MaxExponent},
		{"verifier.max_terms", c.Verifier.MaxTerms},
		{"verifier.max_input_length", c.Verifier.MaxInputLength},
		{"verifier.parallelism", c.Verifier.Parallelism},
	}
	for _, l := range limits {
		if l.value <= 0 {
			return &ConfigError{Field: l.field, Message: "must be positive"}
		}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

// IsConfigError reports whether err is or wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

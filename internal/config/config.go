// Package config defines service configuration and how it is loaded.
//
// Conventions:
// - New(ctx) returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and CATALOG_* env vars on top.
// - Validation failures wrap ErrInvalidConfig; provider failures wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Running modes. Only development enables cross-origin headers.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// DefaultCORSOrigins are the origins allowed in development mode.
var DefaultCORSOrigins = []string{
	"http://localhost:5000",     // API docs served by this process
	"http://localhost:5001",     // frontend dev server
	"https://editor.swagger.io", // hosted OpenAPI editor
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// DatabaseURL selects the store backend: sqlite://path or postgres://...
	DatabaseURL string `koanf:"database_url"`

	// RunningMode is "development" or "production".
	RunningMode string `koanf:"running_mode"`

	// CORSOrigins overrides the development origin allowlist.
	CORSOrigins []string `koanf:"cors_origins"`

	// Seed inserts the sample catalog into empty tables at startup.
	Seed bool `koanf:"seed"`

	// SlowQueryThreshold logs SQL statements slower than this as warnings.
	// Zero keeps the store default.
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":5000",
		DatabaseURL:        "sqlite://products.db",
		RunningMode:        ModeProduction,
		CORSOrigins:        append([]string(nil), DefaultCORSOrigins...),
		Seed:               true,
		SlowQueryThreshold: 200 * time.Millisecond,
	}
}

// CORSEnabled reports whether cross-origin headers should be attached.
func (c *Config) CORSEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(c.RunningMode), ModeDevelopment)
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DatabaseURL) == "":
		return fmt.Errorf("%w: database_url must not be empty", ErrInvalidConfig)
	case c.SlowQueryThreshold < 0:
		return fmt.Errorf("%w: slow_query_threshold must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

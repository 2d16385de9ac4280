// Package config defines module configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/timeblock/internal/diagnostics"
)

// Config contains process configuration shared by the shared library, the
// CLI and the HTTP service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MetricsEnabled toggles Prometheus collection.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// BenchmarkIterations sets the workload size of the micro-benchmark.
	BenchmarkIterations int `koanf:"benchmark_iterations"`

	// BenchmarkRatePerSec and BenchmarkBurst throttle the HTTP benchmark endpoint.
	BenchmarkRatePerSec float64 `koanf:"benchmark_rate_per_sec"`
	BenchmarkBurst      int     `koanf:"benchmark_burst"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		MetricsEnabled:      true,
		BenchmarkIterations: diagnostics.DefaultIterations,
		BenchmarkRatePerSec: 1,
		BenchmarkBurst:      2,
	}
}

// Validate checks field ranges. Errors wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.BenchmarkIterations <= 0:
		return fmt.Errorf("%w: benchmark_iterations must be positive, got %d", ErrInvalidConfig, c.BenchmarkIterations)
	case c.BenchmarkRatePerSec <= 0:
		return fmt.Errorf("%w: benchmark_rate_per_sec must be positive, got %g", ErrInvalidConfig, c.BenchmarkRatePerSec)
	case c.BenchmarkBurst <= 0:
		return fmt.Errorf("%w: benchmark_burst must be positive, got %d", ErrInvalidConfig, c.BenchmarkBurst)
	}
	return nil
}

package config_test

import (
	"errors"
	"testing"

	"github.com/okian/timeblock/internal/config"
	"github.com/okian/timeblock/internal/diagnostics"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.BenchmarkIterations, convey.ShouldEqual, diagnostics.DefaultIterations)
			convey.So(cfg.BenchmarkRatePerSec, convey.ShouldEqual, 1.0)
			convey.So(cfg.BenchmarkBurst, convey.ShouldEqual, 2)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with out-of-range fields", t, func() {
		cases := map[string]func(*config.Config){
			"addr must not be empty":           func(c *config.Config) { c.Addr = "  " },
			"benchmark_iterations":             func(c *config.Config) { c.BenchmarkIterations = 0 },
			"benchmark_rate_per_sec":           func(c *config.Config) { c.BenchmarkRatePerSec = -1 },
			"benchmark_burst must be positive": func(c *config.Config) { c.BenchmarkBurst = 0 },
		}

		for want, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, want)
		}
	})
}

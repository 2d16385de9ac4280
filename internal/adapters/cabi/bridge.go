// Package cabi adapts the scoring service to the fixed signatures exported by
// the shared library: int32 inputs, float64 results, no errors. Keeping the
// adapter free of cgo lets it be tested without a C toolchain.
package cabi

import (
	"context"
	"fmt"
	"os"
	"sync"

	service "github.com/okian/timeblock/internal/app"
	"github.com/okian/timeblock/internal/config"
	"github.com/okian/timeblock/pkg/logger"
	"github.com/okian/timeblock/pkg/metrics"
)

// PingValue is returned by Ping so hosts can verify the library loaded.
const PingValue = 42

// Bridge serves the exported calls. Invalid input never crosses the
// boundary as an error: it is logged, counted and answered with 0.
type Bridge struct {
	svc    *service.Service
	logger logger.Logger
}

// NewBridge wraps svc. A nil log falls back to the global logger.
func NewBridge(svc *service.Service, log logger.Logger) *Bridge {
	if log == nil {
		log = logger.Get()
	}
	return &Bridge{svc: svc, logger: log}
}

var (
	defaultOnce   sync.Once
	defaultBridge *Bridge
)

// Default returns the process-wide bridge, building it on first use: the
// logger writes to stderr, configuration comes from TIMEBLOCK_* variables
// and falls back to defaults when loading fails.
func Default() *Bridge {
	defaultOnce.Do(func() {
		defaultBridge = newDefaultBridge(context.Background())
	})
	return defaultBridge
}

func newDefaultBridge(ctx context.Context) *Bridge {
	if !logger.Initialized() {
		// InitWithWriter only fails on a nil writer.
		_ = logger.InitWithWriter(os.Stderr)
	}
	log := logger.Named("cabi")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Warn(ctx, "falling back to default config", logger.Error(err))
		cfg = config.New()
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.SetEnabled(cfg.MetricsEnabled)

	svc := service.New(
		service.WithLogger(log),
		service.WithSurface(metrics.SurfaceCABI),
		service.WithBenchmarkIterations(cfg.BenchmarkIterations),
	)
	log.Debug(ctx, "shared library initialized", logger.Int("benchmark_iterations", cfg.BenchmarkIterations))
	return NewBridge(svc, log)
}

// CalculateProductivity returns the productivity percentage, or 0 for
// negative input.
func (b *Bridge) CalculateProductivity(totalBlocks, totalMinutes int32) (out float64) {
	ctx := context.Background()
	defer b.recoverTo(ctx, "calculate_productivity", &out)

	p, err := b.svc.Productivity(ctx, int(totalBlocks), int(totalMinutes))
	if err != nil {
		return 0
	}
	return p
}

// CalculateEfficiency returns the efficiency ratio, or 0 for negative input.
func (b *Bridge) CalculateEfficiency(totalBlocks, totalMinutes int32) (out float64) {
	ctx := context.Background()
	defer b.recoverTo(ctx, "calculate_efficiency", &out)

	e, err := b.svc.Efficiency(ctx, int(totalBlocks), int(totalMinutes))
	if err != nil {
		return 0
	}
	return e
}

// PerformanceBenchmark returns the elapsed milliseconds of one benchmark run,
// or 0 if the run failed.
func (b *Bridge) PerformanceBenchmark() (out float64) {
	ctx := context.Background()
	defer b.recoverTo(ctx, "performance_benchmark", &out)

	res, err := b.svc.Benchmark(ctx)
	if err != nil {
		return 0
	}
	return res.Milliseconds()
}

// SystemInfo returns the runtime description. ok is false if building it
// panicked; the export then hands NULL to the host.
func (b *Bridge) SystemInfo() (info string, ok bool) {
	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error(ctx, "recovered panic", logger.String("call", "get_system_info"), logger.Any("panic", r))
			info, ok = "", false
		}
	}()
	return b.svc.SystemInfo(ctx), true
}

// Ping returns PingValue.
func Ping() int32 { return PingValue }

// recoverTo stops a panic at the boundary and zeroes the result.
func (b *Bridge) recoverTo(ctx context.Context, call string, out *float64) {
	if r := recover(); r != nil {
		b.logger.Error(ctx, "recovered panic",
			logger.String("call", call),
			logger.Error(fmt.Errorf("%w: %v", ErrPanic, r)),
		)
		*out = 0
	}
}

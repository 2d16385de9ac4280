// Package service provides the core business service that implements
// the dependencies required by the C ABI bridge, the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/okian/timeblock/internal/diagnostics"
	"github.com/okian/timeblock/internal/domain/model"
	"github.com/okian/timeblock/internal/domain/scoring"
	"github.com/okian/timeblock/pkg/logger"
	"github.com/okian/timeblock/pkg/metrics"
)

// Operation label values.
const (
	OpProductivity = "productivity"
	OpEfficiency   = "efficiency"
	OpEvaluate     = "evaluate"
)

// Service validates samples, runs the scoring engine and keeps counters.
// It holds no per-call state and is safe for concurrent use.
type Service struct {
	// Configuration
	surface             string
	benchmarkIterations int

	// Counters
	evaluations atomic.Int64
	rejected    atomic.Int64
	capped      atomic.Int64
	benchmarks  atomic.Int64
	lastBenchNs atomic.Int64

	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSurface sets the metrics label identifying the caller-facing surface.
func WithSurface(surface string) Option {
	return func(s *Service) {
		if surface != "" {
			s.surface = surface
		}
	}
}

// WithBenchmarkIterations sets the micro-benchmark workload size.
func WithBenchmarkIterations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.benchmarkIterations = n
		}
	}
}

// New constructs a new Service with default configuration. Without
// WithLogger the global logger is used, so logger.Init must have run.
func New(opts ...Option) *Service {
	s := &Service{
		surface:             metrics.SurfaceCLI,
		benchmarkIterations: diagnostics.DefaultIterations,
		startedAt:           time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	return s
}

// Evaluate validates the sample and returns the full score breakdown.
func (s *Service) Evaluate(ctx context.Context, sample model.ScheduleSample) (model.Breakdown, error) {
	if err := s.validate(ctx, sample); err != nil {
		return model.Breakdown{}, err
	}

	b := scoring.Evaluate(sample)
	s.evaluations.Add(1)
	if b.Capped {
		s.capped.Add(1)
	}

	metrics.RecordEvaluation(OpEvaluate, s.surface)
	metrics.ObserveProductivity(b.Productivity, b.Capped)
	metrics.ObserveEfficiency(b.Efficiency)

	s.logger.Debug(ctx, "evaluated sample",
		logger.Int("blocks", b.BlockCount),
		logger.Int("minutes", b.TotalMinutes),
		logger.String("band", b.Band.String()),
		logger.Float64("efficiency", b.Efficiency),
		logger.Float64("productivity", b.Productivity),
		logger.Bool("capped", b.Capped),
	)
	return b, nil
}

// Productivity validates the inputs and returns the productivity percentage.
func (s *Service) Productivity(ctx context.Context, blockCount, totalMinutes int) (float64, error) {
	sample := model.ScheduleSample{BlockCount: blockCount, TotalMinutes: totalMinutes}
	if err := s.validate(ctx, sample); err != nil {
		return 0, err
	}

	b := scoring.Evaluate(sample)
	s.evaluations.Add(1)
	if b.Capped {
		s.capped.Add(1)
	}
	metrics.RecordEvaluation(OpProductivity, s.surface)
	metrics.ObserveProductivity(b.Productivity, b.Capped)
	return b.Productivity, nil
}

// Efficiency validates the inputs and returns the efficiency ratio.
func (s *Service) Efficiency(ctx context.Context, blockCount, totalMinutes int) (float64, error) {
	sample := model.ScheduleSample{BlockCount: blockCount, TotalMinutes: totalMinutes}
	if err := s.validate(ctx, sample); err != nil {
		return 0, err
	}

	e := scoring.Efficiency(blockCount, totalMinutes)
	s.evaluations.Add(1)
	metrics.RecordEvaluation(OpEfficiency, s.surface)
	metrics.ObserveEfficiency(e)
	return e, nil
}

// Benchmark runs the configured micro-benchmark workload.
func (s *Service) Benchmark(ctx context.Context) (diagnostics.BenchmarkResult, error) {
	res, err := diagnostics.RunBenchmark(ctx, s.benchmarkIterations)
	if err != nil {
		s.logger.Warn(ctx, "benchmark aborted", logger.Error(err))
		return diagnostics.BenchmarkResult{}, err
	}

	s.benchmarks.Add(1)
	s.lastBenchNs.Store(int64(res.Elapsed))
	metrics.RecordBenchmark(res.Milliseconds())

	s.logger.Info(ctx, "benchmark finished",
		logger.Int("iterations", res.Iterations),
		logger.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// SystemInfo describes the runtime environment.
func (s *Service) SystemInfo(_ context.Context) string {
	return diagnostics.SystemInfo()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"surface":             s.surface,
		"uptimeSeconds":       int64(time.Since(s.startedAt).Seconds()),
		"evaluations":         s.evaluations.Load(),
		"rejected":            s.rejected.Load(),
		"capped":              s.capped.Load(),
		"benchmarks":          s.benchmarks.Load(),
		"benchmarkIterations": s.benchmarkIterations,
		"lastBenchmarkMs":     float64(s.lastBenchNs.Load()) / float64(time.Millisecond),
	}
}

func (s *Service) validate(ctx context.Context, sample model.ScheduleSample) error {
	err := sample.Validate()
	if err == nil {
		return nil
	}

	s.rejected.Add(1)
	metrics.RecordRejectedInput(s.surface, RejectReason(err))
	s.logger.Warn(ctx, "rejected sample",
		logger.Int("blocks", sample.BlockCount),
		logger.Int("minutes", sample.TotalMinutes),
		logger.Error(err),
	)
	return err
}

// RejectReason maps a validation error to a metrics label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, model.ErrNegativeBlockCount):
		return "negative_block_count"
	case errors.Is(err, model.ErrNegativeMinutes):
		return "negative_minutes"
	default:
		return "invalid"
	}
}

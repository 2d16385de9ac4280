// Package diagnostics provides the host-facing helper calls that sit next to
// the scoring engine: a fixed floating-point micro-benchmark and a one-line
// description of the runtime environment.
package diagnostics

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Benchmark defaults.
const (
	DefaultIterations = 1_000_000
	// checkEvery bounds how often the loop looks at ctx.
	checkEvery = 1 << 16
)

// BenchmarkResult reports one run of the workload.
type BenchmarkResult struct {
	Iterations int           `json:"iterations" yaml:"iterations"`
	Elapsed    time.Duration `json:"-" yaml:"-"`
	// Checksum is the accumulated workload value. Reporting it keeps the
	// compiler from discarding the loop.
	Checksum float64 `json:"checksum" yaml:"checksum"`
}

// Milliseconds returns the elapsed wall time in milliseconds.
func (r BenchmarkResult) Milliseconds() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// RunBenchmark accumulates sqrt(i) * sin(i * 0.001) for i in [0, iterations).
// A non-positive iteration count uses DefaultIterations.
func RunBenchmark(ctx context.Context, iterations int) (BenchmarkResult, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	start := time.Now()
	var sum float64
	for i := 0; i < iterations; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return BenchmarkResult{}, fmt.Errorf("%w after %d iterations: %w", ErrBenchmarkCancelled, i, err)
			}
		}
		f := float64(i)
		sum += math.Sqrt(f) * math.Sin(f*0.001)
	}

	return BenchmarkResult{
		Iterations: iterations,
		Elapsed:    time.Since(start),
		Checksum:   sum,
	}, nil
}

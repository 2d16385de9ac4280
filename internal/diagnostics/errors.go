package diagnostics

import "errors"

// Sentinel kinds for diagnostics errors.
var (
	ErrBenchmarkCancelled = errors.New("benchmark cancelled")
)

package loadtest

import "errors"

// Sentinel kinds for load test failures.
var (
	ErrUnhealthy = errors.New("service health check failed")
	ErrMismatch  = errors.New("service answers disagree with the local engine")
	ErrSave      = errors.New("saving samples failed")
)

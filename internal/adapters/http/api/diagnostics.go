package api

import (
	"net/http"

	"github.com/okian/timeblock/pkg/logger"
	"github.com/okian/timeblock/pkg/metrics"
	"golang.org/x/time/rate"
)

// DiagnosticsHandler serves the runtime diagnostics endpoints.
type DiagnosticsHandler struct {
	deps    Dependencies
	limiter *rate.Limiter
	logger  logger.Logger
}

// NewDiagnosticsHandler creates a new diagnostics handler.
func NewDiagnosticsHandler(deps Dependencies, limiter *rate.Limiter, log logger.Logger) *DiagnosticsHandler {
	return &DiagnosticsHandler{deps: deps, limiter: limiter, logger: log}
}

type systemResponse struct {
	Info string `json:"info"`
}

type benchmarkResponse struct {
	Iterations int     `json:"iterations"`
	ElapsedMs  float64 `json:"elapsed_ms"`
	Checksum   float64 `json:"checksum"`
}

// HandleSystem handles GET /diagnostics/system.
func (h *DiagnosticsHandler) HandleSystem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, systemResponse{Info: h.deps.SystemInfo(r.Context())})
}

// HandleBenchmark handles POST /diagnostics/benchmark. Runs are CPU bound,
// so a token bucket limits how often callers can start one.
func (h *DiagnosticsHandler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	const op = "api.benchmark"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !h.limiter.Allow() {
		metrics.RecordBenchmarkThrottled()
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, "rate_limited", ErrRateLimited)
		return
	}

	res, err := h.deps.Benchmark(r.Context())
	if err != nil {
		h.logger.Warn(r.Context(), "benchmark request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "benchmark_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, benchmarkResponse{
		Iterations: res.Iterations,
		ElapsedMs:  res.Milliseconds(),
		Checksum:   res.Checksum,
	})
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/timeblock/internal/diagnostics"
	"github.com/okian/timeblock/internal/domain/model"
	"github.com/okian/timeblock/pkg/logger"
	"golang.org/x/time/rate"
)

// Default limits for the benchmark endpoint and request bodies.
const (
	DefaultBenchmarkRate  = 1
	DefaultBenchmarkBurst = 2
	maxBodyBytes          = 1 << 16
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the scoring service.
type Dependencies interface {
	StatsProvider

	Evaluate(ctx context.Context, sample model.ScheduleSample) (model.Breakdown, error)
	Efficiency(ctx context.Context, blockCount, totalMinutes int) (float64, error)
	Benchmark(ctx context.Context) (diagnostics.BenchmarkResult, error)
	SystemInfo(ctx context.Context) string
}

// Server wires HTTP routes for the scoring API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	scoreHandler       *ScoreHandler
	diagnosticsHandler *DiagnosticsHandler

	version string
	limiter *rate.Limiter
	logger  logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) {
		if v != "" {
			s.version = v
		}
	}
}

// WithBenchmarkLimit throttles POST /diagnostics/benchmark to perSec runs per
// second with the given burst. Non-positive values keep the defaults.
func WithBenchmarkLimit(perSec float64, burst int) Option {
	return func(s *Server) {
		if perSec > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithLogger sets the logger used by the handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		version: "dev",
		limiter: rate.NewLimiter(DefaultBenchmarkRate, DefaultBenchmarkBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.healthHandler = NewHealthHandler(s.version)
	s.statsHandler = NewStatsHandler(deps)
	s.scoreHandler = NewScoreHandler(deps)
	s.diagnosticsHandler = NewDiagnosticsHandler(deps, s.limiter, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(s.scoreHandler.HandleScore, "score"))
	mux.HandleFunc("/efficiency", MetricsMiddleware(s.scoreHandler.HandleEfficiency, "efficiency"))
	mux.HandleFunc("/diagnostics/system", MetricsMiddleware(s.diagnosticsHandler.HandleSystem, "diagnostics_system"))
	mux.HandleFunc("/diagnostics/benchmark", MetricsMiddleware(s.diagnosticsHandler.HandleBenchmark, "diagnostics_benchmark"))
}

// Handler returns a mux with every route registered and request IDs attached.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	s.Register(ctx, mux)
	return RequestID(mux)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func methodNotAllowed(w http.ResponseWriter, allow ...string) {
	for _, m := range allow {
		w.Header().Add("Allow", m)
	}
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

// writeSampleError maps service validation failures to 400 and anything
// else to 500.
func writeSampleError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrInvalidSample) {
		writeError(w, http.StatusBadRequest, "invalid_sample", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", err)
}

// queryInt reads a required integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing %s", ErrBadRequest, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return v, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/timeblock/internal/adapters/http/api"
	"github.com/okian/timeblock/internal/adapters/http/site"
	"github.com/okian/timeblock/internal/adapters/http/swagger"
	service "github.com/okian/timeblock/internal/app"
	"github.com/okian/timeblock/internal/config"
	"github.com/okian/timeblock/pkg/logger"
	"github.com/okian/timeblock/pkg/metrics"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func newServeCommand(env *cliEnv) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API over HTTP",
		Long: `Serve the scoring API over HTTP until SIGINT or SIGTERM.

Routes: /score, /efficiency, /diagnostics/system, /diagnostics/benchmark,
/stats, /healthz, /metrics, /openapi.yaml, /api-docs and a landing page at /.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				env.cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc := env.newService(metrics.SurfaceHTTP)
			srv := newHTTPServer(ctx, env.cfg, svc, env.log)
			return runServer(ctx, srv, env.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config addr)")
	return cmd
}

// newHTTPServer wires the docs, landing page and API routes behind the
// request ID middleware.
func newHTTPServer(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(svc,
		api.WithVersion(version),
		api.WithBenchmarkLimit(cfg.BenchmarkRatePerSec, cfg.BenchmarkBurst),
		api.WithLogger(log.Named("api")),
	)
	apiServer.Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.RequestID(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// runServer serves until ctx is cancelled, then shuts down gracefully. The
// system metrics updater runs alongside and stops with the server.
func runServer(ctx context.Context, srv *http.Server, log logger.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		startSystemMetricsUpdater(gctx, systemMetricsInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error(context.Background(), "server stopped with error", logger.Error(err))
		return err
	}
	log.Info(context.Background(), "server stopped")
	return nil
}

// startSystemMetricsUpdater samples runtime gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystem(m.HeapAlloc, runtime.NumGoroutine())
}

package loadtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/timeblock/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run checks the service health, scores cfg.Samples generated samples over
// cfg.Workers goroutines and verifies every answer. It returns ErrMismatch
// when any answer disagrees with the local engine.
func Run(ctx context.Context, cfg Config, log logger.Logger) (Stats, error) {
	cfg = cfg.withDefaults()
	start := time.Now()

	log.Info(ctx, "starting load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("samples", cfg.Samples),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	if err := checkServiceHealth(ctx, client); err != nil {
		return Stats{}, err
	}

	samples := generateSamples(cfg.Samples)
	stats := submitSamples(ctx, cfg, client, samples, log)
	stats.Generated = len(samples)
	stats.Duration = time.Since(start)

	if cfg.OutputFile != "" {
		if err := saveSamplesToFile(cfg.OutputFile, samples); err != nil {
			log.Warn(ctx, "failed to save samples", logger.Error(err))
		}
	}

	displayFinalStats(ctx, log, stats)

	if err := ctx.Err(); err != nil {
		return stats, fmt.Errorf("load test interrupted: %w", err)
	}
	if stats.Mismatched > 0 {
		return stats, fmt.Errorf("%w: %d of %d samples", ErrMismatch, stats.Mismatched, stats.Submitted)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// submitSamples fans samples out to a fixed pool of workers.
func submitSamples(ctx context.Context, cfg Config, client *HTTPClient, samples []Sample, log logger.Logger) Stats {
	var submitted, matched, rejected, mismatched, failed atomic.Int64

	sampleChan := make(chan Sample, cfg.Workers*workerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range sampleChan {
				res, err := submitSample(ctx, client, s)
				submitted.Add(1)

				kind := outcomeFailed
				if err == nil {
					kind, err = verifySample(s, res)
				}
				switch kind {
				case outcomeMatched:
					matched.Add(1)
				case outcomeRejected:
					rejected.Add(1)
				case outcomeMismatched:
					mismatched.Add(1)
				default:
					failed.Add(1)
				}
				if err != nil && cfg.Verbose {
					log.Warn(ctx, "sample check failed", logger.String("id", s.ID), logger.Error(err))
				}
				if cfg.Progress != nil {
					cfg.Progress()
				}
			}
		}()
	}

	go func() {
		defer close(sampleChan)
		for _, s := range samples {
			select {
			case <-ctx.Done():
				return
			case sampleChan <- s:
			}
		}
	}()

	wg.Wait()

	return Stats{
		Submitted:  int(submitted.Load()),
		Matched:    int(matched.Load()),
		Rejected:   int(rejected.Load()),
		Mismatched: int(mismatched.Load()),
		Failed:     int(failed.Load()),
	}
}

// saveSamplesToFile writes the generated samples as a JSON array.
func saveSamplesToFile(filename string, samples []Sample) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("%w: %w", ErrSave, err)
		}
	}
	data, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// displayFinalStats logs the final statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("matched", stats.Matched),
		logger.Int("rejected", stats.Rejected),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("requestsPerSecond", stats.RequestsPerSecond()),
	)
}

// Package loadtest drives a running scoring service with generated schedule
// samples and checks every answer against the local scoring engine.
package loadtest

import (
	"runtime"
	"time"

	"github.com/okian/timeblock/internal/domain/model"
)

// Defaults for Config fields left at zero.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultSamples = 10000
	DefaultTimeout = 30 * time.Second
	// workerChannelMultiplier sizes the submit channel per worker.
	workerChannelMultiplier = 2
)

// Config holds configuration for a load test run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Samples    int           // Number of samples to generate and score
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	OutputFile string        // Optional JSON file receiving the generated samples
	Verbose    bool          // Log every mismatch and failure

	// Progress, when set, is called once per finished sample from worker
	// goroutines and must be safe for concurrent use.
	Progress func()
}

// withDefaults returns a copy of c with zero fields filled in.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Samples <= 0 {
		c.Samples = DefaultSamples
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU() * 2
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Sample is one generated request. Negative samples probe input rejection.
type Sample struct {
	ID string `json:"id"`
	model.ScheduleSample
}

// Stats holds load test statistics.
type Stats struct {
	Generated  int           `json:"generated"`
	Submitted  int           `json:"submitted"`
	Matched    int           `json:"matched"`
	Rejected   int           `json:"rejected"`
	Mismatched int           `json:"mismatched"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
}

// RequestsPerSecond reports throughput over the whole run.
func (s Stats) RequestsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Submitted) / s.Duration.Seconds()
}

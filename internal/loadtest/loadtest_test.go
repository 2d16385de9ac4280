package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/okian/timeblock/internal/adapters/http/api"
	service "github.com/okian/timeblock/internal/app"
	"github.com/okian/timeblock/internal/domain/model"
	"github.com/okian/timeblock/internal/domain/scoring"
	"github.com/okian/timeblock/internal/domain/types"
	"github.com/okian/timeblock/pkg/logger"
	"github.com/okian/timeblock/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newScoringServer() *httptest.Server {
	svc := service.New(service.WithSurface(metrics.SurfaceHTTP))
	return httptest.NewServer(api.NewServer(svc).Handler(context.Background()))
}

func TestRunAgainstService(t *testing.T) {
	Convey("Given a running scoring service", t, func() {
		srv := newScoringServer()
		defer srv.Close()

		Convey("When running a load test with progress tracking", func() {
			var progress atomic.Int64
			out := filepath.Join(t.TempDir(), "runs", "samples.json")
			stats, err := Run(context.Background(), Config{
				BaseURL:    srv.URL,
				Samples:    300,
				Workers:    4,
				OutputFile: out,
				Progress:   func() { progress.Add(1) },
			}, logger.Get())

			Convey("Then every answer should agree with the local engine", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 300)
				So(stats.Submitted, ShouldEqual, 300)
				So(stats.Mismatched, ShouldEqual, 0)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Matched+stats.Rejected, ShouldEqual, 300)
				So(progress.Load(), ShouldEqual, 300)
			})

			Convey("And the samples should be saved", func() {
				data, readErr := os.ReadFile(out)
				So(readErr, ShouldBeNil)
				var saved []Sample
				So(json.Unmarshal(data, &saved), ShouldBeNil)
				So(len(saved), ShouldEqual, 300)
			})
		})
	})
}

func TestRunAgainstBrokenService(t *testing.T) {
	Convey("Given a service that answers wrongly", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(requestIDHeader, r.Header.Get(requestIDHeader))
			if r.URL.Path == "/healthz" {
				w.WriteHeader(http.StatusOK)
				return
			}
			_ = json.NewEncoder(w).Encode(model.Breakdown{Productivity: -1, Band: types.BandLong})
		}))
		defer srv.Close()

		Convey("When running a load test", func() {
			stats, err := Run(context.Background(), Config{BaseURL: srv.URL, Samples: 50, Workers: 2}, logger.Get())

			Convey("Then the mismatches should be reported", func() {
				So(errors.Is(err, ErrMismatch), ShouldBeTrue)
				So(stats.Mismatched, ShouldBeGreaterThan, 0)
			})
		})
	})

	Convey("Given an unhealthy service", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := Run(context.Background(), Config{BaseURL: srv.URL, Samples: 1}, logger.Get())

		So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
	})
}

func TestVerifySample(t *testing.T) {
	Convey("Given a generated sample", t, func() {
		s := Sample{ID: "id-1", ScheduleSample: model.ScheduleSample{BlockCount: 8, TotalMinutes: 480}}
		good := scoreResult{status: http.StatusOK, requestID: "id-1", breakdown: scoring.Evaluate(s.ScheduleSample)}

		Convey("When the answer matches", func() {
			kind, err := verifySample(s, good)
			So(err, ShouldBeNil)
			So(kind, ShouldEqual, outcomeMatched)
		})

		Convey("When the request ID was not echoed", func() {
			bad := good
			bad.requestID = "other"
			kind, err := verifySample(s, bad)
			So(err, ShouldNotBeNil)
			So(kind, ShouldEqual, outcomeMismatched)
		})

		Convey("When the productivity differs", func() {
			bad := good
			bad.breakdown.Productivity = 99
			kind, err := verifySample(s, bad)
			So(err.Error(), ShouldContainSubstring, "productivity")
			So(kind, ShouldEqual, outcomeMismatched)
		})

		Convey("When the service errors", func() {
			kind, err := verifySample(s, scoreResult{status: http.StatusInternalServerError, requestID: "id-1"})
			So(err, ShouldNotBeNil)
			So(kind, ShouldEqual, outcomeFailed)
		})

		Convey("When a negative sample is rejected", func() {
			neg := Sample{ID: "id-2", ScheduleSample: model.ScheduleSample{BlockCount: -3, TotalMinutes: 60}}
			kind, err := verifySample(neg, scoreResult{status: http.StatusBadRequest, requestID: "id-2", errorCode: "invalid_sample"})
			So(err, ShouldBeNil)
			So(kind, ShouldEqual, outcomeRejected)
		})

		Convey("When a negative sample is accepted", func() {
			neg := Sample{ID: "id-3", ScheduleSample: model.ScheduleSample{BlockCount: -3, TotalMinutes: 60}}
			kind, err := verifySample(neg, scoreResult{status: http.StatusOK, requestID: "id-3"})
			So(err, ShouldNotBeNil)
			So(kind, ShouldEqual, outcomeMismatched)
		})
	})
}

func TestGenerateSamples(t *testing.T) {
	Convey("Given the sample generator", t, func() {
		samples := generateSamples(500)

		Convey("Then IDs should be unique and values within range", func() {
			seen := make(map[string]bool, len(samples))
			for _, s := range samples {
				So(seen[s.ID], ShouldBeFalse)
				seen[s.ID] = true
				So(s.BlockCount, ShouldBeBetweenOrEqual, -maxBlocks, maxBlocks)
				So(s.TotalMinutes, ShouldBeBetweenOrEqual, 0, maxBlocks*480)
			}
		})

		Convey("Then each shape should stay in its band", func() {
			for i := 0; i < 50; i++ {
				opt := generateSingleSample(caseOptimalDay)
				So(scoring.Classify(opt.BlockCount, opt.TotalMinutes), ShouldEqual, types.BandOptimal)

				short := generateSingleSample(caseShortBlocks)
				So(scoring.Classify(short.BlockCount, short.TotalMinutes), ShouldEqual, types.BandShort)

				long := generateSingleSample(caseLongBlocks)
				So(scoring.Classify(long.BlockCount, long.TotalMinutes), ShouldEqual, types.BandLong)

				So(generateSingleSample(caseOverbooked).Validate(), ShouldBeNil)
				So(scoring.Evaluate(generateSingleSample(caseOverbooked)).Capped, ShouldBeTrue)
				So(generateSingleSample(caseNoBlocks).BlockCount, ShouldEqual, 0)
				So(generateSingleSample(caseNegative).Validate(), ShouldNotBeNil)
			}
		})
	})
}

func TestConfigDefaults(t *testing.T) {
	Convey("Given an empty config", t, func() {
		c := Config{}.withDefaults()

		So(c.BaseURL, ShouldEqual, DefaultBaseURL)
		So(c.Samples, ShouldEqual, DefaultSamples)
		So(c.Workers, ShouldBeGreaterThan, 0)
		So(c.Timeout, ShouldEqual, DefaultTimeout)
		So(Stats{}.RequestsPerSecond(), ShouldEqual, 0)
	})
}

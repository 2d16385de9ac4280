package diagnostics_test

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/okian/timeblock/internal/diagnostics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRunBenchmark(t *testing.T) {
	Convey("Given the floating-point benchmark", t, func() {
		ctx := context.Background()

		Convey("When running a small workload", func() {
			res, err := diagnostics.RunBenchmark(ctx, 10_000)

			Convey("Then it should report the iterations and timing", func() {
				So(err, ShouldBeNil)
				So(res.Iterations, ShouldEqual, 10_000)
				So(res.Elapsed > 0, ShouldBeTrue)
				So(res.Milliseconds(), ShouldBeGreaterThan, 0)
			})

			Convey("And the checksum should be deterministic", func() {
				again, err := diagnostics.RunBenchmark(ctx, 10_000)
				So(err, ShouldBeNil)
				So(again.Checksum, ShouldEqual, res.Checksum)
			})
		})

		Convey("When the iteration count is not positive", func() {
			res, err := diagnostics.RunBenchmark(ctx, 0)

			Convey("Then the default workload should run", func() {
				So(err, ShouldBeNil)
				So(res.Iterations, ShouldEqual, diagnostics.DefaultIterations)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := diagnostics.RunBenchmark(cctx, 1_000)

			Convey("Then it should stop with a cancellation error", func() {
				So(errors.Is(err, diagnostics.ErrBenchmarkCancelled), ShouldBeTrue)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestSystemInfo(t *testing.T) {
	Convey("Given the system info string", t, func() {
		info := diagnostics.SystemInfo()
		parts := strings.Split(info, "|")

		Convey("Then it should have five pipe separated fields", func() {
			So(len(parts), ShouldEqual, 5)
			So(parts[0], ShouldEqual, "Go Module Active")
			So(parts[1], ShouldStartWith, "OS: ")
			So(parts[2], ShouldEqual, "Go: "+runtime.Version())
			So(parts[3], ShouldStartWith, "Processors: ")
			So(parts[4], ShouldEndWith, " MB")
		})

		Convey("And it should contain no NUL bytes", func() {
			So(strings.ContainsRune(info, 0), ShouldBeFalse)
		})
	})
}

func TestHostString(t *testing.T) {
	Convey("Given host descriptions", t, func() {
		So(diagnostics.Host{Name: "Linux", Release: "6.1", Machine: "x86_64"}.String(), ShouldEqual, "Linux 6.1 (x86_64)")
		So(diagnostics.Host{Name: "windows", Machine: "amd64"}.String(), ShouldEqual, "windows (amd64)")
		So(diagnostics.Host{Name: "plan9"}.String(), ShouldEqual, "plan9")
	})
}

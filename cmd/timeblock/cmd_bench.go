package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	service "github.com/okian/timeblock/internal/app"
	"github.com/okian/timeblock/internal/diagnostics"
	"github.com/okian/timeblock/pkg/metrics"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// ErrInvalidRounds is returned when --rounds is not positive.
var ErrInvalidRounds = errors.New("rounds must be positive")

func newBenchCommand(env *cliEnv) *cobra.Command {
	var (
		iterations int
		rounds     int
		output     string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the floating-point micro-benchmark",
		Long: `Run the sqrt/sin accumulation workload used by performance_benchmark
and report wall time per round.`,
		Args: cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if rounds <= 0 {
				return fmt.Errorf("%w (got %d)", ErrInvalidRounds, rounds)
			}
			return checkFormat(output)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := env.newService(metrics.SurfaceCLI, service.WithBenchmarkIterations(iterations))

			var bar *progressbar.ProgressBar
			if output == formatTable {
				bar = makeProgressBar(cmd.ErrOrStderr(), rounds)
			}

			results := make([]diagnostics.BenchmarkResult, 0, rounds)
			for i := 0; i < rounds; i++ {
				res, err := svc.Benchmark(cmd.Context())
				if err != nil {
					return fmt.Errorf("bench round %d: %w", i+1, err)
				}
				results = append(results, res)
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			if bar != nil {
				_ = bar.Finish()
				fmt.Fprintln(cmd.ErrOrStderr())
			}

			summary := summarize(results)
			if output == formatTable {
				return renderBench(cmd.OutOrStdout(), results, summary)
			}
			return writeStructured(cmd.OutOrStdout(), output, summary)
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 0, "Workload size per round (default from config)")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "Number of rounds to run")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json, yaml")

	return cmd
}

// benchSummary aggregates the rounds of one bench invocation.
type benchSummary struct {
	Rounds     int     `json:"rounds" yaml:"rounds"`
	Iterations int     `json:"iterations" yaml:"iterations"`
	MinMs      float64 `json:"min_ms" yaml:"min_ms"`
	MeanMs     float64 `json:"mean_ms" yaml:"mean_ms"`
	MaxMs      float64 `json:"max_ms" yaml:"max_ms"`
	Checksum   float64 `json:"checksum" yaml:"checksum"`
}

func summarize(results []diagnostics.BenchmarkResult) benchSummary {
	s := benchSummary{Rounds: len(results)}
	if len(results) == 0 {
		return s
	}
	s.Iterations = results[0].Iterations
	s.Checksum = results[0].Checksum
	s.MinMs = math.Inf(1)
	var total float64
	for _, r := range results {
		ms := r.Milliseconds()
		total += ms
		s.MinMs = math.Min(s.MinMs, ms)
		s.MaxMs = math.Max(s.MaxMs, ms)
	}
	s.MeanMs = total / float64(len(results))
	return s
}

func makeProgressBar(w io.Writer, rounds int) *progressbar.ProgressBar {
	return progressbar.NewOptions(rounds,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Benchmarking"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
	)
}

func renderBench(w io.Writer, results []diagnostics.BenchmarkResult, s benchSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header("Round", "Iterations", "Elapsed (ms)", "Checksum")
	for i, r := range results {
		if err := table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Iterations),
			fmt.Sprintf("%.3f", r.Milliseconds()),
			fmt.Sprintf("%.6g", r.Checksum),
		); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "%s min %.3f ms, mean %.3f ms, max %.3f ms over %d round(s)\n",
		bold.Sprint("Summary:"), s.MinMs, s.MeanMs, s.MaxMs, s.Rounds)
	return err
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/okian/timeblock/internal/loadtest"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newLoadtestCommand(env *cliEnv) *cobra.Command {
	var (
		cfg   loadtest.Config
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Drive a running service with generated samples and verify the answers",
		Long: `Generate schedule samples, POST them to /score concurrently and compare every
answer with the local scoring engine. Negative samples must be rejected.

Examples:
  timeblock loadtest --url http://localhost:9080 --samples 50000 --workers 16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !quiet {
				bar := progressbar.NewOptions(cfg.Samples,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("Scoring samples"),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
				)
				cfg.Progress = func() { _ = bar.Add(1) }
				defer func() {
					_ = bar.Finish()
					fmt.Fprintln(cmd.ErrOrStderr())
				}()
			}

			stats, err := loadtest.Run(cmd.Context(), cfg, env.log.Named("loadtest"))
			if renderErr := renderLoadtest(cmd.OutOrStdout(), stats); renderErr != nil && err == nil {
				err = renderErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cfg.BaseURL, "url", loadtest.DefaultBaseURL, "Base URL of the service")
	cmd.Flags().IntVar(&cfg.Samples, "samples", loadtest.DefaultSamples, "Number of samples to generate and score")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "Concurrent workers (default CPU cores * 2)")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", loadtest.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().StringVar(&cfg.OutputFile, "save", "", "Write the generated samples to this JSON file")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Log every failed check")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Hide the progress bar")

	return cmd
}

func renderLoadtest(w io.Writer, s loadtest.Stats) error {
	table := tablewriter.NewWriter(w)
	table.Header("Submitted", "Matched", "Rejected", "Mismatched", "Failed", "Duration", "Req/s")
	if err := table.Append(
		fmt.Sprintf("%d", s.Submitted),
		green.Sprintf("%d", s.Matched),
		fmt.Sprintf("%d", s.Rejected),
		red.Sprintf("%d", s.Mismatched),
		yellow.Sprintf("%d", s.Failed),
		s.Duration.Round(time.Millisecond).String(),
		fmt.Sprintf("%.0f", s.RequestsPerSecond()),
	); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/okian/timeblock/internal/domain/model"
	"github.com/okian/timeblock/pkg/metrics"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newScoreCommand(env *cliEnv) *cobra.Command {
	var (
		blocks  int
		minutes int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a schedule of time blocks",
		Long: `Score a schedule given the number of blocks and their total minutes.

Examples:
  timeblock score --blocks 8 --minutes 480
  timeblock score --blocks 4 --minutes 100 -o json`,
		Args: cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			return checkFormat(output)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := env.newService(metrics.SurfaceCLI)
			b, err := svc.Evaluate(cmd.Context(), model.ScheduleSample{BlockCount: blocks, TotalMinutes: minutes})
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}
			if output == formatTable {
				return renderBreakdown(cmd.OutOrStdout(), b)
			}
			return writeStructured(cmd.OutOrStdout(), output, b)
		},
	}

	cmd.Flags().IntVar(&blocks, "blocks", 0, "Number of scheduled blocks")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Total scheduled minutes")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json, yaml")
	_ = cmd.MarkFlagRequired("blocks")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func renderBreakdown(w io.Writer, b model.Breakdown) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")

	productivity := fmt.Sprintf("%.3f", b.Productivity)
	if b.Capped {
		productivity += " (capped)"
	}

	rows := [][]string{
		{"Blocks", strconv.Itoa(b.BlockCount)},
		{"Minutes", strconv.Itoa(b.TotalMinutes)},
		{"Average block", fmt.Sprintf("%.1f min", b.AverageBlockMinutes)},
		{"Band", colorBand(b.Band)},
		{"Base score", fmt.Sprintf("%.3f", b.BaseScore)},
		{"Planning bonus", fmt.Sprintf("%.1f", b.PlanningBonus)},
		{"Efficiency", fmt.Sprintf("%.4f", b.Efficiency)},
		{"Raw score", fmt.Sprintf("%.3f", b.RawScore)},
		{"Productivity", bold.Sprint(productivity)},
	}
	for _, r := range rows {
		if err := table.Append(r[0], r[1]); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

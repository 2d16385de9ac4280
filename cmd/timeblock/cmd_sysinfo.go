package main

import (
	"fmt"
	"strings"

	"github.com/okian/timeblock/pkg/metrics"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newSysinfoCommand(env *cliEnv) *cobra.Command {
	var asTable bool

	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Print the runtime description returned by get_system_info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := env.newService(metrics.SurfaceCLI).SystemInfo(cmd.Context())
			if !asTable {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info)
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Field", "Value")
			for _, part := range strings.Split(info, "|") {
				key, val, ok := strings.Cut(part, ": ")
				if !ok {
					key, val = "Status", part
				}
				if err := table.Append(key, val); err != nil {
					return fmt.Errorf("render table: %w", err)
				}
			}
			if err := table.Render(); err != nil {
				return fmt.Errorf("render table: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Split the fields into a table")
	return cmd
}

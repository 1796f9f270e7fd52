package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/output"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats <file>...",
		Short: "Print entry statistics for log files",
		Long: `Print entry counts per level, the time span and the average message
length of one or more log files. Files are merged by timestamp first.
Glob patterns are accepted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			a := newAnalyzer("")
			entries, _, err := loadEntries(commandContext(cmd), a, args)
			if err != nil {
				return err
			}

			stats, err := a.Analyze(entries)
			if err != nil {
				return fmt.Errorf("computing statistics: %w", err)
			}

			return output.WriteStatistics(cmd.OutOrStdout(), stats, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format (text|json)")

	return cmd
}

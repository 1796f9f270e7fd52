package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/analyzer"
	"github.com/ccollicutt/logsift/pkg/output"
)

// SelectOptions holds options shared by the filter and search commands.
type SelectOptions struct {
	Output string
	Write  string
}

func (o *SelectOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&o.Write, "write", "w", "", "Write matching entries to this file instead of stdout")
}

// NewFilterCommand creates the filter command.
func NewFilterCommand() *cobra.Command {
	opts := &SelectOptions{}
	var level string

	cmd := &cobra.Command{
		Use:   "filter <file>... --level <level>",
		Short: "Print entries with a given level",
		Long: `Print the entries of one or more log files whose level matches.
Valid levels are INFO, WARN, ERROR and DEBUG (any case).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, args, opts, func(a *analyzer.Analyzer, entries []analyzer.Entry) ([]analyzer.Entry, error) {
				return a.FilterByLevel(entries, level)
			})
		},
	}

	cmd.Flags().StringVarP(&level, "level", "l", "", "Level to keep (INFO|WARN|ERROR|DEBUG)")
	_ = cmd.MarkFlagRequired("level")
	opts.addFlags(cmd)

	return cmd
}

type selectFunc func(a *analyzer.Analyzer, entries []analyzer.Entry) ([]analyzer.Entry, error)

// runSelect loads the files, applies sel and prints or writes the result.
func runSelect(cmd *cobra.Command, files []string, opts *SelectOptions, sel selectFunc) error {
	if err := checkFormat(opts.Output); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a := newAnalyzer("")

	entries, _, err := loadEntries(ctx, a, files)
	if err != nil {
		return err
	}

	matches, err := sel(a, entries)
	if err != nil {
		return err
	}

	if opts.Write != "" {
		return writeMatches(ctx, cmd, a, matches, opts.Write)
	}

	return output.WriteEntries(cmd.OutOrStdout(), matches, opts.Output)
}

func writeMatches(ctx context.Context, cmd *cobra.Command, a *analyzer.Analyzer, matches []analyzer.Entry, path string) error {
	if err := a.WriteFile(ctx, matches, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(matches), path)
	return nil
}

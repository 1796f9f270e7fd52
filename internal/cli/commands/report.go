package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/logsift/pkg/analyzer"
	"github.com/ccollicutt/logsift/pkg/config"
	"github.com/ccollicutt/logsift/pkg/output"
)

// ReportOptions holds command-line options for the report command.
type ReportOptions struct {
	Output string
	Quiet  bool
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report <config-file>",
		Short: "Run the configured queries over log files",
		Long: `Read every configured log source, compute entry statistics and run
each query defined in the configuration file.

Exit codes:
  0 - No query matched
  1 - At least one query matched
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text|json), overrides the config file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runReport(cmd *cobra.Command, args []string, opts *ReportOptions) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	start := time.Now()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format := string(cfg.Output.Format)
	if opts.Output != "" {
		format = opts.Output
	}
	formatter, err := output.NewFormatter(format, output.FormatOptions{
		Verbose: Globals.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	a := newAnalyzer(cfg.Timestamp.Placeholder)

	entries, files, err := loadEntries(ctx, a, cfg.LogSources)
	if err != nil {
		return err
	}

	stats, err := a.Analyze(entries)
	if err != nil {
		return fmt.Errorf("computing statistics: %w", err)
	}

	results := make([]*analyzer.QueryResult, 0, len(cfg.Queries))
	for _, q := range cfg.AnalyzerQueries() {
		res, err := a.RunQuery(entries, q)
		if err != nil {
			return fmt.Errorf("query %s: %w", q.Name, err)
		}
		logger.Debug("query finished", zap.String("query", q.Name), zap.Int("matches", len(res.Matches)))
		results = append(results, res)
	}

	report := output.NewReport(stats, results, output.Metadata{
		ConfigFile: configPath,
		Sources:    files,
		AnalyzedAt: start,
		Duration:   time.Since(start),
	})

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.HasMatches() {
		ExitCode = 1
	}

	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/logsift/pkg/analyzer"
	"github.com/ccollicutt/logsift/pkg/source"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	// Verbose enables debug logging and detailed output.
	Verbose bool

	// Placeholder replaces the current time for lines without a timestamp.
	Placeholder string
}

// Globals is bound to the root command's persistent flags.
var Globals = &GlobalOptions{}

var logger = zap.NewNop()

// SetLogger sets the logger used by all commands.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// Logger returns the logger used by all commands.
func Logger() *zap.Logger {
	return logger
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newAnalyzer builds an analyzer honoring --placeholder, falling back to the
// configured placeholder when the flag is unset.
func newAnalyzer(configured string) *analyzer.Analyzer {
	placeholder := configured
	if Globals.Placeholder != "" {
		placeholder = Globals.Placeholder
	}

	opts := []analyzer.Option{analyzer.WithLogger(logger)}
	if placeholder != "" {
		opts = append(opts, analyzer.WithPlaceholder(placeholder))
	}
	return analyzer.NewAnalyzer(opts...)
}

// loadEntries expands patterns and reads every matching file, merged by timestamp.
func loadEntries(ctx context.Context, a *analyzer.Analyzer, patterns []string) ([]analyzer.Entry, []string, error) {
	files, err := source.ExpandGlobs(patterns)
	if err != nil {
		return nil, nil, fmt.Errorf("expanding log sources: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no log files matched patterns: %v", patterns)
	}

	reader := source.NewReader(a, source.WithLogger(logger))
	entries, err := reader.ReadMerged(ctx, files)
	if err != nil {
		return nil, nil, fmt.Errorf("reading logs: %w", err)
	}

	logger.Debug("loaded entries",
		zap.Int("files", len(files)),
		zap.Int("entries", len(entries)))

	return entries, files, nil
}

func checkFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

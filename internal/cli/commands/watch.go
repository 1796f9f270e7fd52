package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/analyzer"
	"github.com/ccollicutt/logsift/pkg/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print statistics every time a log file changes",
		Long: `Print a one-line statistics summary of a log file, then print a new one
each time the file is written. Runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, args[0], debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-reading the file")

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, debounce time.Duration) error {
	a := newAnalyzer("")
	out := cmd.OutOrStdout()

	printStats := func(ctx context.Context) error {
		entries, err := a.ReadFile(ctx, path)
		if err != nil {
			return err
		}
		stats, err := a.Analyze(entries)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s\n", time.Now().Format(analyzer.TimestampLayout), statsLine(stats))
		return nil
	}

	w, err := watch.New(path, watch.WithDebounce(debounce), watch.WithLogger(logger))
	if err != nil {
		return err
	}

	if err := printStats(ctx); err != nil {
		_ = w.Close()
		return err
	}

	return w.Run(ctx, printStats)
}

func statsLine(s analyzer.Statistics) string {
	line := fmt.Sprintf("%d entries (INFO %d, WARN %d, ERROR %d, DEBUG %d)",
		s.TotalEntries, s.InfoCount, s.WarnCount, s.ErrorCount, s.DebugCount)
	if s.TotalEntries > 0 {
		line += fmt.Sprintf(", last %s", s.LastEntry)
	}
	return line
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/config"
	"github.com/ccollicutt/logsift/pkg/source"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a logsift configuration file without reading any logs.

Checks:
  - YAML or TOML syntax
  - Required fields
  - Query levels and keyword limits
  - Duplicate query names
  - Log source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Log sources: %d pattern(s)\n", len(cfg.LogSources))
	fmt.Fprintf(out, "  Queries:     %d\n", len(cfg.Queries))
	fmt.Fprintf(out, "  Output:      %s\n", cfg.Output.Format)

	if len(cfg.Queries) > 0 {
		fmt.Fprintf(out, "\nQueries:\n")
	}
	for i, q := range cfg.Queries {
		fmt.Fprintf(out, "  %d. %s\n", i+1, q.Name)
		if q.Description != "" {
			fmt.Fprintf(out, "     %s\n", q.Description)
		}
	}

	// Missing log sources are only a warning; they may appear before the next run.
	files, err := source.ExpandGlobs(cfg.LogSources)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: Error expanding log source patterns: %v\n", err)
		return nil
	}

	var found []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			found = append(found, f)
		}
	}

	if len(found) == 0 {
		fmt.Fprintf(out, "\nWarning: No files match log source patterns\n")
		return nil
	}

	fmt.Fprintf(out, "\nLog files matched: %d\n", len(found))
	for _, f := range found {
		fmt.Fprintf(out, "  - %s\n", f)
	}

	return nil
}

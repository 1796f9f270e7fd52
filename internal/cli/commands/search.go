package commands

import (
	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/analyzer"
)

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SelectOptions{}
	var caseSensitive bool

	cmd := &cobra.Command{
		Use:   "search <file>... <keyword>",
		Short: "Print entries whose message contains a keyword",
		Long: `Print the entries of one or more log files whose message contains the
keyword. The last argument is the keyword; matching ignores case unless
--case-sensitive is given. Keywords are limited to 100 characters.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, keyword := args[:len(args)-1], args[len(args)-1]
			return runSelect(cmd, files, opts, func(a *analyzer.Analyzer, entries []analyzer.Entry) ([]analyzer.Entry, error) {
				return a.Search(entries, keyword, caseSensitive)
			})
		},
	}

	cmd.Flags().BoolVarP(&caseSensitive, "case-sensitive", "c", false, "Match the keyword's case exactly")
	opts.addFlags(cmd)

	return cmd
}

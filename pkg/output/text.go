package output

import (
	"context"
	"fmt"
	"io"
	"time"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	s := report.Summary
	_, err := fmt.Fprintf(w, "logsift: %d entries (%d errors, %d warnings), %d queries checked, %d with matches, %d total matches\n",
		s.TotalEntries, s.ErrorCount, s.WarnCount,
		s.QueriesChecked, s.QueriesWithMatches, s.TotalMatches)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	s := report.Summary

	fmt.Fprintln(w, "=== logsift Report ===")
	fmt.Fprintln(w)

	writeStatisticsText(w, s.Statistics)
	fmt.Fprintln(w)

	for i := range report.Queries {
		f.formatQuery(&report.Queries[i], w)
	}

	fmt.Fprintln(w, "---")
	_, err := fmt.Fprintf(w, "Summary: %d queries checked, %d queries with matches, %d total matches\n",
		s.QueriesChecked, s.QueriesWithMatches, s.TotalMatches)
	if err != nil {
		return err
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Sources: %d file(s)\n", len(report.Metadata.Sources))
		for _, src := range report.Metadata.Sources {
			fmt.Fprintf(w, "  - %s\n", src)
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatQuery(q *QueryReport, w io.Writer) {
	fmt.Fprintf(w, "[QUERY] %s\n", q.Name)

	if q.Description != "" && f.opts.Verbose {
		fmt.Fprintf(w, "  %s\n", q.Description)
	}

	fmt.Fprintf(w, "  %s\n", describeCriteria(q))

	if q.MatchCount == 0 {
		fmt.Fprintln(w, "  No matches")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "  Matched: %d entr%s\n", q.MatchCount, plural(q.MatchCount, "y", "ies"))

	if f.opts.Verbose {
		for _, e := range q.Matches {
			fmt.Fprintf(w, "    %s\n", e.OriginalLine)
		}
	}

	fmt.Fprintln(w)
}

func describeCriteria(q *QueryReport) string {
	switch {
	case q.Level != "" && q.Keyword != "":
		return fmt.Sprintf("Level: %s, keyword: %q%s", q.Level, q.Keyword, caseNote(q.CaseSensitive))
	case q.Level != "":
		return fmt.Sprintf("Level: %s", q.Level)
	default:
		return fmt.Sprintf("Keyword: %q%s", q.Keyword, caseNote(q.CaseSensitive))
	}
}

func caseNote(caseSensitive bool) string {
	if caseSensitive {
		return " (case-sensitive)"
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

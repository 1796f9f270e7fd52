package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ccollicutt/logsift/pkg/analyzer"
)

// WriteEntries prints entries either as their original lines ("text") or as a JSON array ("json").
func WriteEntries(w io.Writer, entries []analyzer.Entry, format string) error {
	switch format {
	case "text":
		bw := bufio.NewWriter(w)
		for _, e := range entries {
			if _, err := fmt.Fprintln(bw, e.OriginalLine); err != nil {
				return err
			}
		}
		return bw.Flush()
	case "json":
		if entries == nil {
			entries = []analyzer.Entry{}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

// WriteStatistics prints entry statistics as text lines or a JSON object.
func WriteStatistics(w io.Writer, stats analyzer.Statistics, format string) error {
	switch format {
	case "text":
		return writeStatisticsText(w, stats)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(stats)
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

func writeStatisticsText(w io.Writer, s analyzer.Statistics) error {
	_, err := fmt.Fprintf(w, "Entries: %d (INFO %d, WARN %d, ERROR %d, DEBUG %d, other %d)\n",
		s.TotalEntries, s.InfoCount, s.WarnCount, s.ErrorCount, s.DebugCount, s.OtherCount())
	if err != nil || s.TotalEntries == 0 {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time span: %s .. %s\n", s.FirstEntry, s.LastEntry); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Average message length: %d\n", s.AverageMessageLength)
	return err
}

package analyzer

import "unicode/utf8"

// Analyze computes aggregate statistics over entries.
//
// Only the four known levels are counted individually; entries with other levels
// contribute to TotalEntries alone. FirstEntry and LastEntry compare timestamps as
// strings, which is chronological for the fixed-width timestamp format.
func (a *Analyzer) Analyze(entries []Entry) (Statistics, error) {
	if entries == nil {
		return Statistics{}, nullArgument("entries")
	}

	var stats Statistics
	if len(entries) == 0 {
		return stats, nil
	}

	stats.TotalEntries = len(entries)
	stats.FirstEntry = entries[0].Timestamp
	stats.LastEntry = entries[0].Timestamp

	var totalLen, withMessage int
	for _, e := range entries {
		switch {
		case e.Level.Is(LevelInfo):
			stats.InfoCount++
		case e.Level.Is(LevelWarn):
			stats.WarnCount++
		case e.Level.Is(LevelError):
			stats.ErrorCount++
		case e.Level.Is(LevelDebug):
			stats.DebugCount++
		}

		if e.Timestamp < stats.FirstEntry {
			stats.FirstEntry = e.Timestamp
		}
		if e.Timestamp > stats.LastEntry {
			stats.LastEntry = e.Timestamp
		}

		if e.Message != "" {
			totalLen += utf8.RuneCountInString(e.Message)
			withMessage++
		}
	}

	if withMessage > 0 {
		stats.AverageMessageLength = totalLen / withMessage
	}

	return stats, nil
}

// Package analyzer parses, filters, searches and summarizes line-oriented log files.
package analyzer

import "strings"

// Limits enforced on inputs.
const (
	// MaxLineLength is the longest accepted log line, in characters.
	MaxLineLength = 10000

	// MaxKeywordLength is the longest accepted search keyword, in characters.
	MaxKeywordLength = 100

	// MaxFileSize is the largest log file ReadFile will load.
	MaxFileSize = 10 * 1024 * 1024

	// TimestampLayout is the layout of timestamps recognized in log lines.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Level is the severity tag of a log entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
	LevelDebug Level = "DEBUG"
)

// ValidLevels lists the recognized levels in display order.
var ValidLevels = []Level{LevelInfo, LevelWarn, LevelError, LevelDebug}

// ParseLevel looks up a level case-insensitively.
func ParseLevel(s string) (Level, bool) {
	for _, l := range ValidLevels {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Is reports whether l names the same level as other, ignoring case.
func (l Level) Is(other Level) bool {
	return strings.EqualFold(string(l), string(other))
}

// Entry is one structured record derived from a single log line.
type Entry struct {
	// Timestamp is the extracted timestamp text, or a placeholder.
	Timestamp string `json:"timestamp"`

	// Level is the severity tag.
	Level Level `json:"level"`

	// Message is the text after the level's colon, or the whole line.
	Message string `json:"message"`

	// OriginalLine is the raw source line, written back verbatim. It never holds a
	// line break.
	OriginalLine string `json:"original_line"`
}

// Statistics holds aggregate counters computed over a collection of entries.
type Statistics struct {
	TotalEntries int `json:"total_entries"`
	InfoCount    int `json:"info_count"`
	WarnCount    int `json:"warn_count"`
	ErrorCount   int `json:"error_count"`
	DebugCount   int `json:"debug_count"`

	// FirstEntry and LastEntry are the smallest and largest timestamp strings.
	FirstEntry string `json:"first_entry"`
	LastEntry  string `json:"last_entry"`

	// AverageMessageLength is the truncated mean length of non-empty messages.
	AverageMessageLength int `json:"average_message_length"`
}

// OtherCount returns the number of entries whose level is not one of ValidLevels.
func (s Statistics) OtherCount() int {
	return s.TotalEntries - s.InfoCount - s.WarnCount - s.ErrorCount - s.DebugCount
}

// Query is a named combination of a level filter and a keyword search.
type Query struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Level         string `json:"level,omitempty"`
	Keyword       string `json:"keyword,omitempty"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
}

// QueryResult contains the entries matched by a query.
type QueryResult struct {
	Query   Query   `json:"query"`
	Matches []Entry `json:"matches"`
}

// HasMatches returns true if the query matched at least one entry.
func (r *QueryResult) HasMatches() bool {
	return len(r.Matches) > 0
}

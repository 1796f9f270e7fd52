package analyzer

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

var (
	timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)
	levelPattern     = regexp.MustCompile(`INFO|WARN|ERROR|DEBUG`)
)

// Analyzer parses log lines and computes filters, searches and statistics over entries.
// An Analyzer holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	now         func() time.Time
	placeholder string
	logger      *zap.Logger
}

// Option configures analyzer behavior.
type Option func(*Analyzer)

// WithClock sets the clock used to fill in timestamps for lines that have none.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithPlaceholder sets a fixed timestamp for lines that have none.
// It takes precedence over the clock.
func WithPlaceholder(placeholder string) Option {
	return func(a *Analyzer) {
		a.placeholder = placeholder
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ParseLine converts a raw log line into an Entry.
//
// The timestamp is the first "YYYY-MM-DD HH:MM:SS" in the line. The level is the first
// INFO, WARN, ERROR or DEBUG token (case-sensitive), defaulting to INFO. The message is
// the trimmed text after the first colon that follows the level token; without one, the
// whole line is used. A line may not contain '\n' or end in '\r'.
func (a *Analyzer) ParseLine(line string) (Entry, error) {
	if strings.TrimSpace(line) == "" {
		return Entry{}, invalidArgument("line", "cannot be empty")
	}
	if utf8.RuneCountInString(line) > MaxLineLength {
		return Entry{}, invalidArgument("line", "exceeds %d characters", MaxLineLength)
	}
	// ReadFile splits on '\n' and drops a trailing '\r'.
	if strings.ContainsRune(line, '\n') || strings.HasSuffix(line, "\r") {
		return Entry{}, invalidArgument("line", "contains a line break")
	}

	entry := Entry{
		Timestamp:    a.defaultTimestamp(),
		Level:        LevelInfo,
		Message:      line,
		OriginalLine: line,
	}

	messageFrom := 0
	if loc := timestampPattern.FindStringIndex(line); loc != nil {
		entry.Timestamp = line[loc[0]:loc[1]]
		messageFrom = loc[1]
	}
	if loc := levelPattern.FindStringIndex(line); loc != nil {
		entry.Level = Level(line[loc[0]:loc[1]])
		// A timestamp after the level still owns its colons.
		messageFrom = max(messageFrom, loc[1])
	}

	if i := strings.IndexByte(line[messageFrom:], ':'); i >= 0 {
		if msg := strings.TrimSpace(line[messageFrom+i+1:]); msg != "" {
			entry.Message = msg
		}
	}

	return entry, nil
}

func (a *Analyzer) defaultTimestamp() string {
	if a.placeholder != "" {
		return a.placeholder
	}
	return a.now().Format(TimestampLayout)
}

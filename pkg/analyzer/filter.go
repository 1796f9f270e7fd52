package analyzer

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// FilterByLevel returns the entries whose level matches level, ignoring case.
// Order is preserved. level must be one of ValidLevels.
func (a *Analyzer) FilterByLevel(entries []Entry, level string) ([]Entry, error) {
	if entries == nil {
		return nil, nullArgument("entries")
	}
	if strings.TrimSpace(level) == "" {
		return nil, invalidArgument("level", "cannot be empty")
	}
	want, ok := ParseLevel(level)
	if !ok {
		return nil, invalidArgument("level", "invalid log level %q. Valid levels: %s", level, validLevelList())
	}

	result := make([]Entry, 0)
	for _, e := range entries {
		if e.Level.Is(want) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Search returns the entries whose message contains keyword.
// Order is preserved. Without caseSensitive, comparison ignores case.
func (a *Analyzer) Search(entries []Entry, keyword string, caseSensitive bool) ([]Entry, error) {
	if entries == nil {
		return nil, nullArgument("entries")
	}
	if strings.TrimSpace(keyword) == "" {
		return nil, invalidArgument("keyword", "cannot be empty")
	}
	if utf8.RuneCountInString(keyword) > MaxKeywordLength {
		return nil, invalidArgument("keyword", "exceeds %d characters", MaxKeywordLength)
	}

	needle := keyword
	if !caseSensitive {
		needle = strings.ToUpper(keyword)
	}

	result := make([]Entry, 0)
	for _, e := range entries {
		haystack := e.Message
		if !caseSensitive {
			haystack = strings.ToUpper(haystack)
		}
		if strings.Contains(haystack, needle) {
			result = append(result, e)
		}
	}
	return result, nil
}

// RunQuery applies a query's level filter and keyword search, in that order.
func (a *Analyzer) RunQuery(entries []Entry, q Query) (*QueryResult, error) {
	if entries == nil {
		return nil, nullArgument("entries")
	}
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}

	matches := entries
	var err error
	if q.Level != "" {
		if matches, err = a.FilterByLevel(matches, q.Level); err != nil {
			return nil, err
		}
	}
	if q.Keyword != "" {
		if matches, err = a.Search(matches, q.Keyword, q.CaseSensitive); err != nil {
			return nil, err
		}
	}

	return &QueryResult{Query: q, Matches: matches}, nil
}

// ValidateQuery checks that a query names itself and has at least one valid criterion.
func ValidateQuery(q Query) error {
	if strings.TrimSpace(q.Name) == "" {
		return invalidArgument("query.name", "cannot be empty")
	}
	if q.Level == "" && q.Keyword == "" {
		return invalidArgument("query", "%s: level or keyword is required", q.Name)
	}
	if q.Level != "" {
		if _, ok := ParseLevel(q.Level); !ok {
			return invalidArgument("query.level", "invalid log level %q. Valid levels: %s", q.Level, validLevelList())
		}
	}
	if q.Keyword != "" {
		if strings.TrimSpace(q.Keyword) == "" {
			return invalidArgument("query.keyword", "cannot be blank")
		}
		if utf8.RuneCountInString(q.Keyword) > MaxKeywordLength {
			return invalidArgument("query.keyword", "exceeds %d characters", MaxKeywordLength)
		}
	}
	return nil
}

// IsArgumentError reports whether err is a null or invalid argument error.
func IsArgumentError(err error) bool {
	return errors.Is(err, ErrNullArgument) || errors.Is(err, ErrInvalidArgument)
}

func validLevelList() string {
	names := make([]string, len(ValidLevels))
	for i, l := range ValidLevels {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

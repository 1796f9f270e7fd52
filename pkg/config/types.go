// Package config provides report configuration loading and validation for logsift.
package config

import "github.com/ccollicutt/logsift/pkg/analyzer"

// Config is the root configuration structure loaded from YAML or TOML.
type Config struct {
	// LogSources lists log file paths or glob patterns. Environment variables are expanded.
	LogSources []string `yaml:"log_sources" toml:"log_sources" validate:"min=1,dive,required"`

	Timestamp TimestampConfig `yaml:"timestamp,omitempty" toml:"timestamp"`
	Queries   []QueryConfig   `yaml:"queries,omitempty" toml:"queries" validate:"dive"`
	Output    OutputConfig    `yaml:"output,omitempty" toml:"output"`
}

// TimestampConfig controls timestamps for lines that carry none.
type TimestampConfig struct {
	// Placeholder is used verbatim for lines without a timestamp.
	// When empty, the current time is used.
	Placeholder string `yaml:"placeholder,omitempty" toml:"placeholder"`
}

// QueryConfig defines a named query over the loaded entries.
type QueryConfig struct {
	Name        string `yaml:"name" toml:"name" validate:"required"`
	Description string `yaml:"description,omitempty" toml:"description"`

	// Level restricts matches to one of INFO, WARN, ERROR or DEBUG (any case).
	Level string `yaml:"level,omitempty" toml:"level"`

	// Keyword restricts matches to messages containing it.
	Keyword       string `yaml:"keyword,omitempty" toml:"keyword" validate:"required_without=Level,max=100"`
	CaseSensitive bool   `yaml:"case_sensitive,omitempty" toml:"case_sensitive"`
}

// Query converts the configuration into an analyzer query.
func (q QueryConfig) Query() analyzer.Query {
	return analyzer.Query{
		Name:          q.Name,
		Description:   q.Description,
		Level:         q.Level,
		Keyword:       q.Keyword,
		CaseSensitive: q.CaseSensitive,
	}
}

// OutputFormat names a report format.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format OutputFormat `yaml:"format,omitempty" toml:"format" validate:"oneof=text json"`
}

// AnalyzerQueries returns the configured queries as analyzer queries.
func (c *Config) AnalyzerQueries() []analyzer.Query {
	queries := make([]analyzer.Query, len(c.Queries))
	for i, q := range c.Queries {
		queries[i] = q.Query()
	}
	return queries
}

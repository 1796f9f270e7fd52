package config

import (
	"os"
	"strings"
)

// Default values for configuration.
const (
	DefaultOutputFormat = OutputText
)

// Environment variable names.
const (
	EnvLogSources           = "LOGSIFT_LOG_SOURCES"
	EnvTimestampPlaceholder = "LOGSIFT_TIMESTAMP_PLACEHOLDER"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSources: []string{},
		Queries:    []QueryConfig{},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
		},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if sources := os.Getenv(EnvLogSources); sources != "" {
		c.LogSources = c.LogSources[:0]
		for _, s := range strings.Split(sources, ",") {
			if s = strings.TrimSpace(s); s != "" {
				c.LogSources = append(c.LogSources, s)
			}
		}
	}

	if placeholder := os.Getenv(EnvTimestampPlaceholder); placeholder != "" {
		c.Timestamp.Placeholder = placeholder
	}
}

// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/ccollicutt/logsift/pkg/analyzer"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Queries contains the result of each configured query.
	Queries []QueryReport `json:"queries"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary combines entry statistics with query totals.
type Summary struct {
	analyzer.Statistics

	// QueriesChecked is the number of queries that were run.
	QueriesChecked int `json:"queries_checked"`

	// QueriesWithMatches is the number of queries that matched at least one entry.
	QueriesWithMatches int `json:"queries_with_matches"`

	// TotalMatches is the sum of matched entries across queries.
	TotalMatches int `json:"total_matches"`
}

// QueryReport describes one query and what it matched.
type QueryReport struct {
	analyzer.Query

	// MatchCount is the number of matching entries.
	MatchCount int `json:"match_count"`

	// Matches holds the matching entries in input order.
	Matches []analyzer.Entry `json:"matches,omitempty"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// ConfigFile is the path to the configuration file used, if any.
	ConfigFile string `json:"config_file,omitempty"`

	// Sources lists the log files that were analyzed.
	Sources []string `json:"sources"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from statistics and query results.
func NewReport(stats analyzer.Statistics, results []*analyzer.QueryResult, meta Metadata) *Report {
	report := &Report{
		Summary: Summary{
			Statistics:     stats,
			QueriesChecked: len(results),
		},
		Queries:  make([]QueryReport, 0, len(results)),
		Metadata: meta,
	}

	for _, res := range results {
		report.Queries = append(report.Queries, QueryReport{
			Query:      res.Query,
			MatchCount: len(res.Matches),
			Matches:    res.Matches,
		})
		if res.HasMatches() {
			report.Summary.QueriesWithMatches++
		}
		report.Summary.TotalMatches += len(res.Matches)
	}

	return report
}

// HasMatches returns true if any query matched.
func (r *Report) HasMatches() bool {
	return r.Summary.TotalMatches > 0
}

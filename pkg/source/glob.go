// Package source resolves, reads and merges log files from several locations.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// ExpandGlobs resolves file paths and glob patterns into a sorted, deduplicated list
// of log files. Directories matched by a glob are dropped. A pattern that matches
// nothing is kept as a literal path so that reading it reports the missing file.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				continue
			}
			add(match)
		}
	}

	slices.Sort(files)
	return files, nil
}

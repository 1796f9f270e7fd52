package analyzer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const utf8BOM = "\uFEFF"

// ReadFile loads and parses a log file.
//
// Blank lines are skipped. A line that fails to parse fails the whole read; no partial
// result is returned. The file size is checked against MaxFileSize before reading.
func (a *Analyzer) ReadFile(ctx context.Context, path string) ([]Entry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, invalidArgument("path", "cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ErrTooLarge, path, info.Size(), MaxFileSize)
	}

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxFileSize+1)

	entries := make([]Entry, 0)
	lineNum := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lineNum++
		line := strings.ToValidUTF8(scanner.Text(), "\uFFFD")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, err := a.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrIO, path, err)
	}

	a.logger.Debug("read log file",
		zap.String("path", path),
		zap.Int("lines", lineNum),
		zap.Int("entries", len(entries)))

	return entries, nil
}

// WriteFile writes each entry's original line to path, replacing any existing file.
//
// Lines go to a temporary file in the same directory that is renamed over path only
// after every line is written, so a failed or canceled write leaves path untouched.
func (a *Analyzer) WriteFile(ctx context.Context, entries []Entry, path string) (err error) {
	if entries == nil {
		return nullArgument("entries")
	}
	if strings.TrimSpace(path) == "" {
		return invalidArgument("path", "cannot be empty")
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	mode := fs.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrIO, path)
		}
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIO, path, err)
	}
	tmpPath := tmp.Name()
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err = w.WriteString(e.OriginalLine); err != nil {
			return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrIO, path, err)
	}

	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIO, path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrIO, path, err)
	}

	a.logger.Debug("wrote log file",
		zap.String("path", path),
		zap.Int("entries", len(entries)))

	return nil
}

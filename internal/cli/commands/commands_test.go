package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/logsift/pkg/analyzer"
)

const sampleLog = `2024-01-15 10:00:00 INFO: Service started
2024-01-15 10:00:05 WARN: Disk usage at 85%
2024-01-15 10:00:10 ERROR: Database connection failed
2024-01-15 10:00:15 ERROR: database timeout
2024-01-15 10:00:20 DEBUG: cache warmed
`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	return path
}

// execute runs cmd with args and returns its stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	ExitCode = 0
	t.Cleanup(func() {
		ExitCode = 0
		*Globals = GlobalOptions{}
	})

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestNewCommands(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewReportCommand(), "report <config-file>", []string{"output", "quiet"}},
		{NewStatsCommand(), "stats <file>...", []string{"output"}},
		{NewFilterCommand(), "filter <file>... --level <level>", []string{"level", "output", "write"}},
		{NewSearchCommand(), "search <file>... <keyword>", []string{"case-sensitive", "output", "write"}},
		{NewWatchCommand(), "watch <file>", []string{"debounce"}},
		{NewValidateCommand(), "validate <config-file>", nil},
		{NewVersionCommand(), "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			if tt.cmd.Use != tt.use {
				t.Errorf("Unexpected Use: %s", tt.cmd.Use)
			}
			for _, flag := range tt.flags {
				if tt.cmd.Flags().Lookup(flag) == nil {
					t.Errorf("Missing flag: %s", flag)
				}
			}
		})
	}
}

func TestRunReport_Matches(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := writeTestFile(t, tmpDir, "app.log", sampleLog)
	configPath := writeTestFile(t, tmpDir, "config.yaml", `log_sources:
  - `+logPath+`
queries:
  - name: db-errors
    level: error
    keyword: database
  - name: traces
    level: DEBUG
    keyword: span
`)

	out, err := execute(t, NewReportCommand(), configPath)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", ExitCode)
	}
	for _, want := range []string{"Entries: 5", "[QUERY] db-errors", "Matched: 2 entries", "[QUERY] traces", "No matches"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q\n%s", want, out)
		}
	}
}

func TestRunReport_NoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := writeTestFile(t, tmpDir, "app.log", sampleLog)
	configPath := writeTestFile(t, tmpDir, "config.toml", `log_sources = ["`+logPath+`"]

[[queries]]
name = "panics"
keyword = "panic"
`)

	_, err := execute(t, NewReportCommand(), "--quiet", configPath)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", ExitCode)
	}
}

func TestRunReport_JSONOverride(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := writeTestFile(t, tmpDir, "app.log", sampleLog)
	configPath := writeTestFile(t, tmpDir, "config.yaml", "log_sources:\n  - "+logPath+"\n")

	out, err := execute(t, NewReportCommand(), "-o", "json", configPath)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, out)
	}
	summary := decoded["summary"].(map[string]any)
	if summary["error_count"] != float64(2) {
		t.Errorf("summary.error_count = %v, want 2", summary["error_count"])
	}
}

func TestRunReport_MissingConfig(t *testing.T) {
	_, err := execute(t, NewReportCommand(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for missing config")
	}
}

func TestRunReport_MissingLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestFile(t, tmpDir, "config.yaml",
		"log_sources:\n  - "+filepath.Join(tmpDir, "missing.log")+"\n")

	_, err := execute(t, NewReportCommand(), configPath)
	if err == nil {
		t.Fatal("Expected error for missing log file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got: %v", err)
	}
}

func TestRunReport_PlaceholderFlag(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := writeTestFile(t, tmpDir, "app.log", "ERROR: no timestamp here\n")
	configPath := writeTestFile(t, tmpDir, "config.yaml", "log_sources:\n  - "+logPath+"\n")

	Globals.Placeholder = "-"
	out, err := execute(t, NewReportCommand(), configPath)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "Time span: - .. -") {
		t.Errorf("Expected placeholder timestamps in output\n%s", out)
	}
}

func TestRunStats(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeTestFile(t, tmpDir, "a.log", "2024-01-15 10:00:00 INFO: a\n")
	b := writeTestFile(t, tmpDir, "b.log", "2024-01-14 09:00:00 ERROR: b\n")

	out, err := execute(t, NewStatsCommand(), a, b)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out, "Entries: 2 (INFO 1, WARN 0, ERROR 1, DEBUG 0, other 0)") {
		t.Errorf("Unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Time span: 2024-01-14 09:00:00 .. 2024-01-15 10:00:00") {
		t.Errorf("Expected merged time span:\n%s", out)
	}
}

func TestRunStats_Glob(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, tmpDir, "a.log", sampleLog)
	writeTestFile(t, tmpDir, "b.log", sampleLog)

	out, err := execute(t, NewStatsCommand(), "-o", "json", filepath.Join(tmpDir, "*.log"))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	var stats analyzer.Statistics
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if stats.TotalEntries != 10 {
		t.Errorf("TotalEntries = %d, want 10", stats.TotalEntries)
	}
}

func TestRunStats_InvalidFormat(t *testing.T) {
	_, err := execute(t, NewStatsCommand(), "-o", "xml", "/tmp/whatever.log")
	if err == nil {
		t.Error("Expected error for invalid output format")
	}
}

func TestRunFilter(t *testing.T) {
	logPath := writeTestFile(t, t.TempDir(), "app.log", sampleLog)

	out, err := execute(t, NewFilterCommand(), logPath, "--level", "error")
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}

	want := "2024-01-15 10:00:10 ERROR: Database connection failed\n" +
		"2024-01-15 10:00:15 ERROR: database timeout\n"
	if out != want {
		t.Errorf("filter output = %q, want %q", out, want)
	}
}

func TestRunFilter_InvalidLevel(t *testing.T) {
	logPath := writeTestFile(t, t.TempDir(), "app.log", sampleLog)

	_, err := execute(t, NewFilterCommand(), logPath, "--level", "TRACE")
	if err == nil {
		t.Fatal("Expected error for invalid level")
	}
	if !strings.Contains(err.Error(), "Valid levels") {
		t.Errorf("Expected valid levels in error, got: %v", err)
	}
}

func TestRunFilter_MissingLevelFlag(t *testing.T) {
	logPath := writeTestFile(t, t.TempDir(), "app.log", sampleLog)

	if _, err := execute(t, NewFilterCommand(), logPath); err == nil {
		t.Error("Expected error when --level is missing")
	}
}

func TestRunFilter_Write(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := writeTestFile(t, tmpDir, "app.log", sampleLog)
	outPath := filepath.Join(tmpDir, "warnings.log")

	out, err := execute(t, NewFilterCommand(), logPath, "-l", "WARN", "--write", outPath)
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if !strings.Contains(out, "Wrote 1 entries") {
		t.Errorf("Unexpected output: %q", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if string(data) != "2024-01-15 10:00:05 WARN: Disk usage at 85%\n" {
		t.Errorf("Written file = %q", data)
	}
}

func TestRunSearch(t *testing.T) {
	logPath := writeTestFile(t, t.TempDir(), "app.log", sampleLog)

	tests := []struct {
		name      string
		args      []string
		wantLines int
	}{
		{"case-insensitive", []string{logPath, "database"}, 2},
		{"case-sensitive", []string{"--case-sensitive", logPath, "database"}, 1},
		{"no matches", []string{logPath, "kernel"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewSearchCommand(), tt.args...)
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if got := strings.Count(out, "\n"); got != tt.wantLines {
				t.Errorf("search printed %d lines, want %d\n%s", got, tt.wantLines, out)
			}
		})
	}
}

func TestRunSearch_KeywordTooLong(t *testing.T) {
	logPath := writeTestFile(t, t.TempDir(), "app.log", sampleLog)

	_, err := execute(t, NewSearchCommand(), logPath, strings.Repeat("x", 101))
	if err == nil {
		t.Error("Expected error for long keyword")
	}
}

func TestRunSearch_RequiresKeyword(t *testing.T) {
	logPath := writeTestFile(t, t.TempDir(), "app.log", sampleLog)

	if _, err := execute(t, NewSearchCommand(), logPath); err == nil {
		t.Error("Expected error when keyword is missing")
	}
}

func TestRunValidate_Success(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := writeTestFile(t, tmpDir, "test.log", "INFO: test log\n")
	configPath := writeTestFile(t, tmpDir, "config.yaml", `log_sources:
  - `+logPath+`
queries:
  - name: errors
    description: Every error
    level: ERROR
`)

	out, err := execute(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	for _, want := range []string{"Configuration valid!", "1. errors", "Every error", "Log files matched: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q\n%s", want, out)
		}
	}
}

func TestRunValidate_MissingSourcesWarns(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeTestFile(t, tmpDir, "config.yaml",
		"log_sources:\n  - "+filepath.Join(tmpDir, "nope.log")+"\n")

	out, err := execute(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(out, "Warning: No files match") {
		t.Errorf("Expected warning for missing sources\n%s", out)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeTestFile(t, t.TempDir(), "invalid.yaml", "invalid: yaml: content")

	if _, err := execute(t, NewValidateCommand(), configPath); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	if _, err := execute(t, NewValidateCommand(), "/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestRunVersion(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if out != "logsift dev\n" {
		t.Errorf("version output = %q", out)
	}
}

// syncBuffer is a bytes.Buffer safe for use from the watch goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	logPath := writeTestFile(t, t.TempDir(), "app.log", sampleLog)

	cmd := NewWatchCommand()
	out := &syncBuffer{}
	cmd.SetOut(out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, cmd, logPath, 20*time.Millisecond) }()

	waitForOutput := func(count int) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for strings.Count(out.String(), "entries") < count {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %d stats lines\n%s", count, out.String())
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	waitForOutput(1)
	if !strings.Contains(out.String(), "5 entries (INFO 1, WARN 1, ERROR 2, DEBUG 1)") {
		t.Errorf("Unexpected initial stats\n%s", out.String())
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = f.WriteString("2024-01-15 10:00:25 ERROR: another failure\n")
	_ = f.Close()

	waitForOutput(2)
	if !strings.Contains(out.String(), "6 entries (INFO 1, WARN 1, ERROR 3, DEBUG 1)") {
		t.Errorf("Expected updated stats\n%s", out.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runWatch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch() did not return after cancel")
	}
}

func TestRunWatch_MissingFile(t *testing.T) {
	cmd := NewWatchCommand()
	cmd.SetOut(&bytes.Buffer{})

	err := runWatch(context.Background(), cmd, filepath.Join(t.TempDir(), "missing.log"), time.Millisecond)
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestStatsLine(t *testing.T) {
	got := statsLine(analyzer.Statistics{TotalEntries: 2, InfoCount: 2, LastEntry: "2024-01-15 10:00:00"})
	want := "2 entries (INFO 2, WARN 0, ERROR 0, DEBUG 0), last 2024-01-15 10:00:00"
	if got != want {
		t.Errorf("statsLine() = %q, want %q", got, want)
	}
}

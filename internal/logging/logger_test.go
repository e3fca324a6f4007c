package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scribe.log")
	logger, err := New(Options{Level: "info", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("transcribe start", String(FieldFile, "a b.mp3"), Int("total", 3))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "transcribe start") {
		t.Fatalf("unexpected log line %q", line)
	}
	if !strings.Contains(line, `file="a b.mp3"`) {
		t.Fatalf("expected quoted attr in %q", line)
	}
	if !strings.Contains(line, "total=3") {
		t.Fatalf("expected int attr in %q", line)
	}
}

func TestPrettyHandlerLiftsComponent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.log")
	logger, err := New(Options{Level: "debug", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	WithComponent(logger, "orchestrator").Info("done")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "orchestrator: done") {
		t.Fatalf("component not lifted into prefix: %q", string(data))
	}
	if strings.Contains(string(data), "component=") {
		t.Fatalf("component should not repeat as attr: %q", string(data))
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scribe.log")
	logger, err := New(Options{Level: "warn", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Fatal("info line should be filtered at warn level")
	}
	if !strings.Contains(string(data), "visible") {
		t.Fatal("warn line missing")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(nil, slog.LevelError) { //nolint:staticcheck
		t.Fatal("nop logger should report disabled")
	}
}

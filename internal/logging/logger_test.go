package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fenilsonani/autosorter/internal/config"
)

func TestNewWritesFileAndConsole(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "auto_sorter.log")
	var console bytes.Buffer

	logger, closer, err := New(Options{File: logPath, Level: "info", Console: &console})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("Moved", "file", "photo.png", "category", "Pictures")
	logger.Debug("hidden at info level")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	for name, out := range map[string]string{"file": string(data), "console": console.String()} {
		if !strings.Contains(out, "level=INFO") || !strings.Contains(out, "msg=Moved") {
			t.Errorf("%s output missing record: %q", name, out)
		}
		if !strings.Contains(out, "time=") {
			t.Errorf("%s output missing timestamp: %q", name, out)
		}
		if strings.Contains(out, "hidden at info level") {
			t.Errorf("%s output contains debug record", name)
		}
	}
}

func TestNewAppends(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "auto_sorter.log")

	for i := 0; i < 2; i++ {
		logger, closer, err := New(Options{File: logPath})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		logger.Info("started")
		closer.Close()
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if got := strings.Count(string(data), "msg=started"); got != 2 {
		t.Errorf("expected 2 records after reopening, got %d", got)
	}
}

func TestNewWithoutOutputs(t *testing.T) {
	logger, closer, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("dropped")
	if err := closer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.GetDefault()
	cfg.Log.File = filepath.Join(t.TempDir(), "sorter.log")
	cfg.Log.Console = false

	logger, closer, err := NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig failed: %v", err)
	}
	defer closer.Close()

	logger.Warn("disk almost full")
	data, _ := os.ReadFile(cfg.Log.File)
	if !strings.Contains(string(data), "level=WARN") {
		t.Errorf("expected warn record, got %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

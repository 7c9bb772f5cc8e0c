// Package logging builds the process logger: human-readable records with
// timestamp, severity and message, appended to a log file and echoed to
// the console.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/autosorter/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	File    string    // append-only log file, empty to disable
	Level   string    // debug, info, warn or error
	Console io.Writer // console stream, nil to disable
}

// New constructs a slog logger writing to the file and console in opts.
// The returned closer releases the log file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var (
		writers []io.Writer
		file    *os.File
	)

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		file = f
		writers = append(writers, f)
	}
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = io.MultiWriter(writers...)
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: ParseLevel(opts.Level)})
	return slog.New(handler), closerFor(file), nil
}

// NewFromConfig creates a logger from the log section of cfg.
func NewFromConfig(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	opts := Options{
		File:  cfg.Log.File,
		Level: cfg.Log.Level,
	}
	if cfg.Log.Console {
		opts.Console = os.Stderr
	}
	return New(opts)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func closerFor(f *os.File) io.Closer {
	if f == nil {
		return nopCloser{}
	}
	return f
}

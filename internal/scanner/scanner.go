// Package scanner lists the files of the watched directory that are
// eligible for sorting.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/autosorter/internal/config"
)

// Scanner lists eligible entries of a single directory
type Scanner struct {
	dir          string
	hiddenPrefix string
}

// New creates a scanner for the configured watch directory
func New(cfg *config.Config) *Scanner {
	return &Scanner{
		dir:          cfg.WatchDir,
		hiddenPrefix: cfg.HiddenPrefix,
	}
}

// Dir returns the scanned directory
func (s *Scanner) Dir() string {
	return s.dir
}

// List returns the immediate entries of the directory that are regular
// files and not hidden, ordered by name. Directories, symlinks and special
// files are skipped. Subdirectories are never descended into.
func (s *Scanner) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWatchDirMissing, s.dir)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.dir, err)
	}

	eligible := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if s.isHidden(name) {
			continue
		}
		// Type() comes from lstat, so symlinks are not followed
		if !entry.Type().IsRegular() {
			continue
		}
		eligible = append(eligible, Entry{
			Path: filepath.Join(s.dir, name),
			Name: name,
		})
	}

	return eligible, nil
}

func (s *Scanner) isHidden(name string) bool {
	return s.hiddenPrefix != "" && strings.HasPrefix(name, s.hiddenPrefix)
}

// Package mover relocates a file into its category folder next to it,
// picking a free name when the destination is already taken.
package mover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fenilsonani/autosorter/internal/classifier"
)

// Result describes a completed move
type Result struct {
	Source      string
	Destination string
	Category    string
	Name        string // final file name inside the category folder
	Size        int64
}

// Mover moves files into category folders
type Mover struct {
	classifier *classifier.Classifier
	logger     *slog.Logger

	// rename moves src to dst and must fail with an fs.ErrExist error,
	// without touching either path, when dst already exists.
	rename func(src, dst string) error
}

// New creates a new Mover
func New(cls *classifier.Classifier, logger *slog.Logger) *Mover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mover{
		classifier: cls,
		logger:     logger,
		rename:     renameNoReplace,
	}
}

// WithLogger returns a copy of the mover that logs to logger
func (m *Mover) WithLogger(logger *slog.Logger) *Mover {
	cp := *m
	cp.logger = logger
	return &cp
}

// Move relocates the file at path into <dir(path)>/<category>/. If the
// name is taken, "_1", "_2", ... is appended to the stem until a free name
// is claimed. Every outcome is logged; a failure is returned as a
// *MoveError and leaves the source where it was.
func (m *Mover) Move(path string) (*Result, *MoveError) {
	name := filepath.Base(path)

	result, err := m.move(path, name)
	if err != nil {
		moveErr := CategorizeError(path, err)
		m.logger.Error("Failed to move",
			"file", name,
			"reason", moveErr.Reason.String(),
			"error", err)
		return nil, moveErr
	}

	m.logger.Info("Moved",
		"file", name,
		"category", result.Category,
		"dest", filepath.Join(result.Category, result.Name))
	return result, nil
}

func (m *Mover) move(path, name string) (*Result, error) {
	// Lstat so a symlink swapped in after listing is not followed
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &fs.PathError{Op: "move", Path: path, Err: errNotRegular}
	}

	ext := m.classifier.Extension(name)
	category := m.classifier.Classify(ext)
	destDir := filepath.Join(filepath.Dir(path), category)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		if errors.Is(err, syscall.ENOTDIR) {
			err = fmt.Errorf("%w: %w", errCategoryBlocked, err)
		}
		return nil, fmt.Errorf("create %s: %w", category, err)
	}

	stem := strings.TrimSuffix(name, ext)
	for n := 0; ; n++ {
		candidate := CandidateName(stem, ext, n)
		target := filepath.Join(destDir, candidate)

		err := m.rename(path, target)
		if err == nil {
			return &Result{
				Source:      path,
				Destination: target,
				Category:    category,
				Name:        candidate,
				Size:        info.Size(),
			}, nil
		}
		if errors.Is(err, fs.ErrExist) {
			m.logger.Debug("Name taken, trying next", "file", name, "candidate", candidate)
			continue
		}
		return nil, err
	}
}

// CandidateName returns the n-th name tried for a file: the original name
// for n == 0, otherwise stem_n followed by the extension.
func CandidateName(stem, ext string, n int) string {
	if n == 0 {
		return stem + ext
	}
	return fmt.Sprintf("%s_%d%s", stem, n, ext)
}

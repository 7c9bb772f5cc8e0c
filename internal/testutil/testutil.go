// Package testutil provides test helpers and fixtures for autosorter tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
)

// TestFixture holds a temporary watch directory
type TestFixture struct {
	T        *testing.T
	RootDir  string // Root temp directory (auto-cleaned)
	WatchDir string // Directory being sorted, RootDir/inbox
}

// NewFixture creates a new test fixture with an empty watch directory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()

	f := &TestFixture{
		T:        t,
		RootDir:  root,
		WatchDir: filepath.Join(root, "inbox"),
	}

	if err := os.MkdirAll(f.WatchDir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", f.WatchDir, err)
	}

	return f
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file relative to the watch directory and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFiles creates each named file with its name as content
func (f *TestFixture) CreateFiles(names ...string) []string {
	f.T.Helper()

	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, f.CreateFile(name, []byte(name)))
	}
	return paths
}

// CreateDir creates a directory relative to the watch directory
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := f.Path(relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateSymlink creates a symbolic link inside the watch directory
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := f.Path(linkPath)
	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a path relative to the watch directory
func (f *TestFixture) Path(relPath string) string {
	return filepath.Join(f.WatchDir, relPath)
}

// TopLevelNames returns the sorted names of the watch directory's entries
func (f *TestFixture) TopLevelNames() []string {
	f.T.Helper()

	entries, err := os.ReadDir(f.WatchDir)
	if err != nil {
		f.T.Fatalf("failed to read %s: %v", f.WatchDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a file exists
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// AssertFileContent fails if the file content differs from want
func (f *TestFixture) AssertFileContent(path string, want []byte) {
	f.T.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		f.T.Errorf("failed to read %s: %v", path, err)
		return
	}
	if !bytes.Equal(got, want) {
		f.T.Errorf("file %s has content %q, want %q", path, got, want)
	}
}

// =============================================================================
// Logging Helpers
// =============================================================================

// LogBuffer collects log records written by a test logger
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines returns the logged records, one per line
func (b *LogBuffer) Lines() []string {
	out := strings.TrimSpace(b.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Count returns how many records were logged at level
func (b *LogBuffer) Count(level slog.Level) int {
	count := 0
	marker := "level=" + level.String()
	for _, line := range b.Lines() {
		if strings.Contains(line, marker) {
			count++
		}
	}
	return count
}

// NewLogger returns a debug-level text logger writing into a LogBuffer
func NewLogger() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), buf
}

// =============================================================================
// Environment Helpers
// =============================================================================

// IsRoot returns true if running as root/admin
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}

package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PathValidator decides whether a directory is safe to sort in place.
// Sorting creates category folders and moves every top-level file, so
// system trees must never be used as a watch directory.
type PathValidator struct {
	// protectedTrees may not be sorted, nor may anything below them.
	protectedTrees []string
	// protectedRoots may not be sorted themselves, but their children may
	// (e.g. /root/Downloads, /var/folders/... on macOS).
	protectedRoots []string
}

// NewPathValidator creates a new PathValidator with default protected paths
func NewPathValidator() *PathValidator {
	return &PathValidator{
		protectedTrees: []string{
			// Unix system directories
			"/bin",
			"/boot",
			"/dev",
			"/etc",
			"/lib",
			"/lib64",
			"/proc",
			"/sbin",
			"/sys",
			"/usr",
			// macOS system directories
			"/System",
			"/Library/System",
		},
		protectedRoots: []string{
			"/",
			"/home",
			"/root",
			"/var",
			"/opt",
			"/Users",
			"/Library",
			"/Applications",
		},
	}
}

// ValidateWatchDir checks that path can be used as the sorted directory.
func (pv *PathValidator) ValidateWatchDir(path string) error {
	if path == "" {
		return fmt.Errorf("watch directory is empty")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("watch directory must be absolute: %s", path)
	}

	cleanPath := filepath.Clean(path)
	if cleanPath != path && cleanPath+string(filepath.Separator) != path {
		return fmt.Errorf("watch directory contains suspicious elements: %s", path)
	}

	if strings.ContainsRune(cleanPath, 0) {
		return fmt.Errorf("watch directory contains a NUL byte")
	}

	return pv.checkProtectedPaths(cleanPath)
}

// checkProtectedPaths validates that a path is not a protected system directory
func (pv *PathValidator) checkProtectedPaths(cleanPath string) error {
	for _, protected := range pv.protectedRoots {
		if cleanPath == protected {
			return fmt.Errorf("refusing to sort protected directory: %s", cleanPath)
		}
	}

	for _, protected := range pv.protectedTrees {
		if cleanPath == protected || strings.HasPrefix(cleanPath, protected+"/") {
			return fmt.Errorf("refusing to sort system directory: %s", cleanPath)
		}
	}

	return nil
}

// ValidateWatchDir validates path with the default protected paths.
func ValidateWatchDir(path string) error {
	return NewPathValidator().ValidateWatchDir(path)
}

package mover

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// ErrorReason categorizes why a move failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileNotFound
	ErrorCrossDevice
	ErrorDiskFull
	ErrorIsDirectory
	ErrorFileInUse
	ErrorCategoryBlocked
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorCrossDevice:
		return "Cross-device move"
	case ErrorDiskFull:
		return "Disk full"
	case ErrorIsDirectory:
		return "Is a directory"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorCategoryBlocked:
		return "Category folder blocked"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

var (
	// errNotRegular is reported for directories, symlinks and special files
	errNotRegular = errors.New("not a regular file")
	// errCategoryBlocked is reported when a non-directory already occupies
	// the category folder's name
	errCategoryBlocked = errors.New("category path is not a directory")
)

// MoveError describes a single file that could not be moved
type MoveError struct {
	Path     string
	Reason   ErrorReason
	Original error
}

// Error implements the error interface
func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %s (%v)", e.Path, e.Reason, e.Original)
}

// Unwrap exposes the underlying filesystem error
func (e *MoveError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *MoveError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("Permission denied: %s", e.Path)
	case ErrorFileNotFound:
		return fmt.Sprintf("Vanished before it could be moved: %s", e.Path)
	case ErrorCrossDevice:
		return fmt.Sprintf("Cannot move across filesystems: %s", e.Path)
	case ErrorDiskFull:
		return fmt.Sprintf("No space left to move: %s", e.Path)
	case ErrorIsDirectory:
		return fmt.Sprintf("Not a regular file: %s", e.Path)
	case ErrorFileInUse:
		return fmt.Sprintf("File is being used: %s (it will be retried on the next pass)", e.Path)
	case ErrorCategoryBlocked:
		return fmt.Sprintf("A file is in the way of the category folder for %s (rename or remove it)", e.Path)
	default:
		return fmt.Sprintf("Error moving %s: %v", e.Path, e.Original)
	}
}

// CategorizeError analyzes an error and returns a categorized MoveError
func CategorizeError(path string, err error) *MoveError {
	if err == nil {
		return nil
	}

	moveErr := &MoveError{
		Path:     path,
		Original: err,
		Reason:   ErrorUnknown,
	}

	switch {
	case errors.Is(err, errNotRegular):
		moveErr.Reason = ErrorIsDirectory
		return moveErr
	case errors.Is(err, errCategoryBlocked):
		moveErr.Reason = ErrorCategoryBlocked
		return moveErr
	}

	// Check syscall errors first, they are the most specific
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM, syscall.EROFS:
			moveErr.Reason = ErrorPermissionDenied
		case syscall.ENOENT:
			moveErr.Reason = ErrorFileNotFound
		case syscall.EXDEV:
			moveErr.Reason = ErrorCrossDevice
		case syscall.ENOSPC, syscall.EDQUOT:
			moveErr.Reason = ErrorDiskFull
		case syscall.EISDIR:
			moveErr.Reason = ErrorIsDirectory
		case syscall.EBUSY, syscall.ETXTBSY:
			moveErr.Reason = ErrorFileInUse
		}
		return moveErr
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		moveErr.Reason = ErrorFileNotFound
	case errors.Is(err, fs.ErrPermission):
		moveErr.Reason = ErrorPermissionDenied
	}

	return moveErr
}

// GroupErrors groups move errors by reason
func GroupErrors(errs []*MoveError) map[ErrorReason][]*MoveError {
	grouped := make(map[ErrorReason][]*MoveError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*MoveError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	var summary strings.Builder
	summary.WriteString("\nIssues encountered:\n")

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		fmt.Fprintf(&summary, "   ├─ Permission denied: %d files\n", len(perms))
		summary.WriteString("   │  └─ Tip: check ownership of the watched folder\n")
	}

	if busy, ok := grouped[ErrorFileInUse]; ok {
		fmt.Fprintf(&summary, "   ├─ File in use: %d files\n", len(busy))
	}

	if notFound, ok := grouped[ErrorFileNotFound]; ok {
		fmt.Fprintf(&summary, "   ├─ Vanished: %d files\n", len(notFound))
	}

	if xdev, ok := grouped[ErrorCrossDevice]; ok {
		fmt.Fprintf(&summary, "   ├─ Cross-device: %d files\n", len(xdev))
	}

	if full, ok := grouped[ErrorDiskFull]; ok {
		fmt.Fprintf(&summary, "   ├─ Disk full: %d files\n", len(full))
		summary.WriteString("   │  └─ Tip: free some space and wait for the next pass\n")
	}

	if dirs, ok := grouped[ErrorIsDirectory]; ok {
		fmt.Fprintf(&summary, "   ├─ Not a regular file: %d items\n", len(dirs))
	}

	if blocked, ok := grouped[ErrorCategoryBlocked]; ok {
		fmt.Fprintf(&summary, "   ├─ Category folder blocked: %d files\n", len(blocked))
		summary.WriteString("   │  └─ Tip: a file is named like a category folder, rename it\n")
	}

	if unknown, ok := grouped[ErrorUnknown]; ok {
		fmt.Fprintf(&summary, "   └─ Other errors: %d files\n", len(unknown))
	}

	return summary.String()
}

package scanner

import "errors"

// ErrWatchDirMissing is returned when the watched directory does not exist
var ErrWatchDirMissing = errors.New("watch directory does not exist")

// Entry is a file observed during one scan. It has no identity beyond its
// path and is not tracked across scans.
type Entry struct {
	Path string
	Name string
}

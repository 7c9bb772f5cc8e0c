package mover

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/fenilsonani/autosorter/pkg/utils"
)

// linkRename claims dst with a hard link, which fails if dst exists, then
// drops the source name. Without hard link support (or across devices) it
// falls back to copyRename.
func linkRename(src, dst string) error {
	if err := os.Link(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) || errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if errors.Is(err, syscall.EXDEV) || errors.Is(err, syscall.EPERM) || errors.Is(err, errors.ErrUnsupported) {
			return copyRename(src, dst)
		}
		return err
	}

	if err := os.Remove(src); err != nil {
		// keep the source; the next pass will try again
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// copyRename copies src into a newly created dst (O_EXCL, so an existing dst
// is never overwritten), verifies size and SHA-256, then removes src. On
// any failure dst is removed and src is left untouched.
func copyRename(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(dst)
		}
	}()

	hasher := sha256.New()
	written, err := io.Copy(out, io.TeeReader(in, hasher))
	if err != nil {
		return err
	}
	if err = out.Sync(); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}

	if written != info.Size() {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), written)
	}

	dstHash, err := utils.HashFile(dst)
	if err != nil {
		return err
	}
	if dstHash != hex.EncodeToString(hasher.Sum(nil)) {
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())

	if err = os.Remove(src); err != nil {
		return err
	}
	return nil
}

package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"

	"romdat/internal/stage"
)

// ErrTargetExists reports that a copy or move refused to replace an existing
// file. It matches both fs.ErrExist and stage.ErrCollision.
var ErrTargetExists error = targetExistsError{}

type targetExistsError struct{}

func (targetExistsError) Error() string { return "target exists" }

func (targetExistsError) Is(target error) bool {
	return target == fs.ErrExist || target == stage.ErrCollision
}

// Exists reports whether anything is present at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CopyFile streams src to dst with default permissions (0o644). dst must not
// exist.
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst. The
// destination is created exclusively, so an existing file is never touched.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := createExclusive(dst, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}

// CopyFileVerified streams src to dst with SHA256 + size integrity verification.
// Removes dst on mismatch. dst must not exist.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := createExclusive(dst, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}

	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	return nil
}

// Move renames src to dst without replacing an existing dst. A rename that
// only changes letter case on a case-insensitive filesystem is allowed. When
// src and dst are on different devices the file is copied with verification
// and the source removed.
func Move(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if dstInfo, err := os.Lstat(dst); err == nil {
		if !os.SameFile(srcInfo, dstInfo) {
			return ErrTargetExists
		}
		return os.Rename(src, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	err = renameNoReplace(src, dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return ErrTargetExists
	case !errors.Is(err, syscall.EXDEV):
		return err
	}
	if err := CopyFileVerified(src, dst); err != nil {
		return fmt.Errorf("cross-device copy: %w", err)
	}
	return os.Remove(src)
}

func createExclusive(path string, mode os.FileMode) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, ErrTargetExists
		}
		return nil, err
	}
	return f, nil
}

func checkedRename(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return ErrTargetExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Rename(src, dst)
}

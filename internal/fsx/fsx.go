// SPDX-License-Identifier: EPL-2.0

// Package fsx holds the file system primitives the repair engine relies on:
// a rename that never replaces its target, create-if-absent directories and
// temp files that sit beside their final destination.
package fsx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// TempPrefix starts the name of every temp file created by CreateTemp.
const TempPrefix = ".chanfix-"

// Replaceable so tests can inject EXDEV and friends.
var renameFunc = renameNoReplace

// CrossDeviceError reports a rename that failed with EXDEV. Files are never
// copied and deleted instead.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cross-device move %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err carries a *CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// PathTypeConflictError reports a path that exists with the wrong type, such
// as a regular file where a directory is expected.
type PathTypeConflictError struct {
	Path string
	Want string
	Got  string
}

func (e *PathTypeConflictError) Error() string {
	return fmt.Sprintf("path type conflict: %q (want %s, got %s)", e.Path, e.Want, e.Got)
}

func IsPathTypeConflict(err error) bool {
	var e *PathTypeConflictError
	return errors.As(err, &e)
}

// Move renames src to dst and fails with an error matching fs.ErrExist when
// dst is already present. EXDEV is reported as *CrossDeviceError.
func Move(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// EnsureDir creates dir if it is absent. An existing directory is not an
// error; any other existing entry is a *PathTypeConflictError. Concurrent
// callers all succeed.
func EnsureDir(dir string) error {
	err := os.Mkdir(dir, 0o755)
	if err == nil || !errors.Is(err, fs.ErrExist) {
		return err
	}

	fi, statErr := os.Stat(dir)
	if statErr != nil {
		return statErr
	}
	if !fi.IsDir() {
		return &PathTypeConflictError{Path: dir, Want: "dir", Got: fi.Mode().Type().String()}
	}
	return nil
}

// Exists reports whether anything is present at path, without following a
// final symlink.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CreateTemp creates a hidden temp file in dir whose name ends in ext, so
// callers that dispatch on the extension see the final one.
func CreateTemp(dir, ext string) (*os.File, error) {
	return os.CreateTemp(dir, TempPrefix+"*"+ext)
}

// IsTemp reports whether name was produced by CreateTemp.
func IsTemp(name string) bool {
	base := filepath.Base(name)
	return len(base) > len(TempPrefix) && base[:len(TempPrefix)] == TempPrefix
}

// SyncDir flushes directory metadata. Failures are ignored on platforms where
// directories cannot be synced.
func SyncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

func existsError(src, dst string) error {
	return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
}

// renameChecked is the portable no-replace rename: a check then a plain
// rename. It is racy against other writers of dst.
func renameChecked(src, dst string) error {
	if Exists(dst) {
		return existsError(src, dst)
	}
	return os.Rename(src, dst)
}

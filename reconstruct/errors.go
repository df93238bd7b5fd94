// SPDX-License-Identifier: EPL-2.0

package reconstruct

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyMono    = errors.New("file is already mono")
	ErrNotDualmono    = errors.New("file is not dualmono")
	ErrNotMono        = errors.New("input is true stereo and cannot be merged")
	ErrArchived       = errors.New("path is inside the obsolete archive")
	ErrAlreadyLabeled = errors.New("file already carries a label tag")
	ErrNoTag          = errors.New("layout has no label tag")
	ErrNoStem         = errors.New("no usable output name")
	ErrSameFile       = errors.New("left and right are the same file")
)

// RenameCollisionError reports an output name that is already taken. Nothing
// was written and nothing was moved.
type RenameCollisionError struct {
	Path string
}

func (e *RenameCollisionError) Error() string {
	return fmt.Sprintf("output already exists: %s", e.Path)
}

// ArchiveMoveError reports an original that could not be moved into the
// archive. The output written before the move has been removed again.
type ArchiveMoveError struct {
	Src string
	Dst string
	Err error
}

func (e *ArchiveMoveError) Error() string {
	return fmt.Sprintf("archive %q -> %q: %v", e.Src, e.Dst, e.Err)
}

func (e *ArchiveMoveError) Unwrap() error { return e.Err }

// IsRenameCollision reports whether err carries a *RenameCollisionError.
func IsRenameCollision(err error) bool {
	var e *RenameCollisionError
	return errors.As(err, &e)
}

// IsArchiveMove reports whether err carries an *ArchiveMoveError.
func IsArchiveMove(err error) bool {
	var e *ArchiveMoveError
	return errors.As(err, &e)
}

// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrRootLocked  = errors.New("another run holds the root folder")
	ErrNotDir      = errors.New("root is not a directory")
	ErrNoConfirmer = errors.New("no confirmer configured")
	ErrNoCodec     = errors.New("no codec configured")
)

// FileError records a per-file failure. It never stops the stage.
type FileError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

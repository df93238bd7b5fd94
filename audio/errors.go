// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyBuffer   = errors.New("empty sample buffer")
	ErrNonFinite     = errors.New("non-finite sample value")
	ErrChannelLength = errors.New("channels differ in length")
	ErrChannelIndex  = errors.New("channel index out of range")
	ErrChannelCount  = errors.New("unsupported channel count")
	ErrNoDecoder     = errors.New("no decoder registered for format")
	ErrNoEncoder     = errors.New("format is decode-only")
)

// FormatError reports a file that could not be decoded or analysed:
// unreadable, corrupt, empty, non-finite, or of an unsupported layout.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("format error: %v", e.Err)
	}
	return fmt.Sprintf("format error: %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsFormatError reports whether err carries a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

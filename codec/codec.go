// SPDX-License-Identifier: EPL-2.0

// Package codec reads and writes sample buffers by path, choosing the format
// from the file extension through an audio.Registry.
package codec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/chanfix/audio"
)

// Codec is the sample codec contract: Write must reproduce the format tag that
// Read returned.
type Codec interface {
	Read(path string) (*audio.Buffer, error)
	Write(path string, b *audio.Buffer) error
}

// FileCodec implements Codec on top of a registry.
type FileCodec struct {
	registry *audio.Registry
}

func New(registry *audio.Registry) *FileCodec {
	return &FileCodec{registry: registry}
}

// CanRead reports whether a decoder is registered for path's extension.
func (c *FileCodec) CanRead(path string) bool {
	_, ok := c.registry.Decoder(filepath.Ext(path))
	return ok
}

// CanWrite reports whether an encoder is registered for path's extension.
func (c *FileCodec) CanWrite(path string) bool {
	_, ok := c.registry.Encoder(filepath.Ext(path))
	return ok
}

// Read decodes the file at path. Every failure is a *audio.FormatError.
func (c *FileCodec) Read(path string) (*audio.Buffer, error) {
	dec, ok := c.registry.Decoder(filepath.Ext(path))
	if !ok {
		return nil, &audio.FormatError{Path: path, Err: audio.ErrNoDecoder}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &audio.FormatError{Path: path, Err: err}
	}
	defer f.Close()

	b, err := dec.Decode(f)
	if err != nil {
		return nil, &audio.FormatError{Path: path, Err: err}
	}

	return b, nil
}

// Write encodes b into a new file at path, truncating any file already there.
// Callers that must not overwrite write to a temporary name first.
func (c *FileCodec) Write(path string, b *audio.Buffer) error {
	enc, ok := c.registry.Encoder(filepath.Ext(path))
	if !ok {
		return &audio.FormatError{Path: path, Err: audio.ErrNoEncoder}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := enc.Encode(f, b); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}

// IsDecodeOnly reports whether err says the format has no encoder.
func IsDecodeOnly(err error) bool {
	return errors.Is(err, audio.ErrNoEncoder)
}

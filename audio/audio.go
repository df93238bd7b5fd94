// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Encodings known to the format tag.
const (
	EncodingPCM    = "pcm"
	EncodingMP3    = "mp3"
	EncodingVorbis = "vorbis"
)

// Format is the format tag of a decoded file: its sample encoding and bit depth.
// A write must reproduce the same tag that was read.
type Format struct {
	Encoding string
	// BitDepth is 0 for lossy encodings.
	BitDepth int
}

// PCM returns the integer PCM format tag with the given bit depth.
func PCM(bitDepth int) Format {
	return Format{Encoding: EncodingPCM, BitDepth: bitDepth}
}

// String renders the tag the way sound file libraries name subtypes, e.g. PCM_24.
func (f Format) String() string {
	if f.Encoding == "" {
		return "UNKNOWN"
	}
	if f.BitDepth == 0 {
		return strings.ToUpper(f.Encoding)
	}
	return fmt.Sprintf("%s_%d", strings.ToUpper(f.Encoding), f.BitDepth)
}

// Buffer holds fully decoded audio in planar layout.
// Samples are float64 normalized to [-1, 1]; Data[ch][frame].
type Buffer struct {
	SampleRate int
	Format     Format
	Data       [][]float64
}

// NewBuffer builds a buffer from planar channel slices. The slices are not copied.
func NewBuffer(sampleRate int, format Format, channels ...[]float64) *Buffer {
	return &Buffer{
		SampleRate: sampleRate,
		Format:     format,
		Data:       channels,
	}
}

// Channels count (e.g., 1=mono, 2=stereo).
func (b *Buffer) Channels() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// Frames is the number of samples per channel.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Validate checks the planar invariant: every channel holds the same number of frames.
func (b *Buffer) Validate() error {
	if b.Channels() == 0 {
		return ErrEmptyBuffer
	}
	frames := len(b.Data[0])
	for ch := 1; ch < len(b.Data); ch++ {
		if len(b.Data[ch]) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrChannelLength, ch, len(b.Data[ch]), frames)
		}
	}
	return nil
}

// Decoder constructs a Buffer from an input stream.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Buffer, error)
}

// Encoder writes a Buffer, reproducing its sample rate and format tag.
type Encoder interface {
	Encode(w io.WriteSeeker, b *Buffer) error
}

type codecs struct {
	dec Decoder
	enc Encoder
}

// Registry for codecs by file extension (e.g., "wav", "aiff", "mp3").
// A format registered without an Encoder is decode-only.
type Registry struct {
	codecs map[string]codecs

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]codecs),
		mtx:    &sync.Mutex{},
	}
}

// Register binds a decoder and an optional encoder to ext. Leading dots and case are ignored.
func (r *Registry) Register(ext string, d Decoder, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeExt(ext)] = codecs{dec: d, enc: e}
}

func (r *Registry) Decoder(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[normalizeExt(ext)]
	if !ok || c.dec == nil {
		return nil, false
	}
	return c.dec, true
}

func (r *Registry) Encoder(ext string) (Encoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.codecs[normalizeExt(ext)]
	if !ok || c.enc == nil {
		return nil, false
	}
	return c.enc, true
}

// Extensions lists registered extensions in lexical order, without dots.
func (r *Registry) Extensions() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

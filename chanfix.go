// SPDX-License-Identifier: EPL-2.0

package chanfix

import (
	"fmt"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/classify"
	"github.com/ik5/chanfix/codec"
	"github.com/ik5/chanfix/formats/aiff"
	"github.com/ik5/chanfix/formats/mp3"
	"github.com/ik5/chanfix/formats/vorbis"
	"github.com/ik5/chanfix/formats/wav"
	"github.com/ik5/chanfix/label"
)

// DefaultRegistry registers every bundled format: wav, aif and aiff read-write,
// mp3 and ogg decode-only.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{}, wav.Encoder{})
	reg.Register("aif", aiff.Decoder{}, aiff.Encoder{})
	reg.Register("aiff", aiff.Decoder{}, aiff.Encoder{})
	reg.Register("mp3", mp3.Decoder{}, nil)
	reg.Register("ogg", vorbis.Decoder{}, nil)
	return reg
}

// NewCodec returns a codec over DefaultRegistry.
func NewCodec() *codec.FileCodec {
	return codec.New(DefaultRegistry())
}

// Inspection is what InspectFile learned about one file.
type Inspection struct {
	Path       string
	SampleRate int
	Format     audio.Format
	Channels   int
	Frames     int
	Verdict    classify.Verdict
	// Named is the layout the file name claims, if it carries a tag.
	Named   classify.Layout
	Labeled bool
	// Writable is false for decode-only formats.
	Writable bool
}

// Mislabeled reports whether the name claims a layout the samples contradict.
// A dualmono tag matches both dualmono and silent-channel content.
func (i Inspection) Mislabeled() bool {
	if !i.Labeled {
		return false
	}
	got := i.Verdict.Layout
	if got == classify.SilentChannel {
		got = classify.DualMono
	}
	return got != i.Named
}

// InspectFile reads and classifies the file at path with the default codec.
// Nothing on disk changes.
func InspectFile(path string) (Inspection, error) {
	return Inspect(NewCodec(), path)
}

// Inspect is InspectFile with a caller supplied codec.
func Inspect(c *codec.FileCodec, path string) (Inspection, error) {
	buf, err := c.Read(path)
	if err != nil {
		return Inspection{}, err
	}

	verdict, err := classify.Classify(buf)
	if err != nil {
		return Inspection{}, fmt.Errorf("classify %s: %w", path, err)
	}

	named, labeled := label.Parse(path)

	return Inspection{
		Path:       path,
		SampleRate: buf.SampleRate,
		Format:     buf.Format,
		Channels:   buf.Channels(),
		Frames:     buf.Frames(),
		Verdict:    verdict,
		Named:      named,
		Labeled:    labeled,
		Writable:   c.CanWrite(path),
	}, nil
}

// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/chanfix/audio"
)

var (
	ErrNoSamples       = errors.New("vorbis stream holds no samples")
	ErrInvalidChannels = errors.New("vorbis stream reports no channels")
)

type Decoder struct{}

// Decode fully decodes an Ogg Vorbis stream. Vorbis is decode-only: the buffer
// carries the lossy "vorbis" format tag and no encoder accepts it.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return fromInterleaved(samples, format.Channels, format.SampleRate)
}

// fromInterleaved splits decoder output ([L0, R0, L1, R1, ...]) into planar channels.
func fromInterleaved(samples []float32, channels, sampleRate int) (*audio.Buffer, error) {
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	frames := len(samples) / channels
	if frames == 0 {
		return nil, ErrNoSamples
	}

	planar := make([][]float64, channels)
	for ch := range channels {
		planar[ch] = make([]float64, frames)
	}
	for f := range frames {
		base := f * channels
		for ch := range channels {
			planar[ch][f] = float64(samples[base+ch])
		}
	}

	return audio.NewBuffer(sampleRate, audio.Format{Encoding: audio.EncodingVorbis}, planar...), nil
}

// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/chanfix/audio"
)

// go-mp3 always emits 16-bit little-endian stereo
const channels = 2

var ErrNoSamples = errors.New("mp3 stream holds no samples")

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type Decoder struct{}

// Decode fully decodes an MP3 stream. MP3 is decode-only: the buffer carries the
// lossy "mp3" format tag and no encoder accepts it.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decode(dec)
}

func decode(dec mp3Reader) (*audio.Buffer, error) {
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	frames := len(raw) / (2 * channels)
	if frames == 0 {
		return nil, ErrNoSamples
	}

	left := make([]float64, frames)
	right := make([]float64, frames)
	for f := range frames {
		idx := f * 2 * channels
		left[f] = float64(int16(binary.LittleEndian.Uint16(raw[idx:]))) / 32768.0
		right[f] = float64(int16(binary.LittleEndian.Uint16(raw[idx+2:]))) / 32768.0
	}

	return audio.NewBuffer(dec.SampleRate(), audio.Format{Encoding: audio.EncodingMP3}, left, right), nil
}

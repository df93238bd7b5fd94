// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/utils"
)

const readChunk = 8192

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

func supportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 16, 24, 32:
		return true
	}
	return false
}

// AIFC compression types whose samples are plain integer PCM. A zero
// value means the file is an uncompressed AIFF.
var (
	compressionNone = [4]byte{'N', 'O', 'N', 'E'}
	compressionSowt = [4]byte{'s', 'o', 'w', 't'}
)

func checkCompression(id [4]byte) error {
	switch id {
	case [4]byte{}, compressionNone, compressionSowt:
		return nil
	}
	return fmt.Errorf("%w: AIFC compression %q", ErrUnsupportedEncoding, string(id[:]))
}

type Decoder struct{}

// Decode reads a whole AIFF stream into a planar buffer.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, error) {
	dec := aiff.NewDecoder(r)
	dec.ReadInfo()
	if dec.Err() == nil {
		if err := checkCompression(dec.Encoding); err != nil {
			return nil, err
		}
	}

	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	bitDepth := int(dec.BitDepth)
	if !supportedBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d bit", ErrUnsupportedBitDepth, bitDepth)
	}

	return decode(dec, bitDepth)
}

func decode(dec aiffReader, bitDepth int) (*audio.Buffer, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	buf := &goaudio.IntBuffer{
		Data:   make([]int, readChunk),
		Format: format,
	}

	var data []int
	for {
		buf.Data = buf.Data[:cap(buf.Data)]
		n, err := dec.PCMBuffer(buf)
		if n > 0 {
			data = append(data, buf.Data[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return audio.NewBuffer(format.SampleRate, audio.PCM(bitDepth),
		utils.Deinterleave(data, format.NumChannels, bitDepth)...), nil
}

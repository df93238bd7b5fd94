// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// size of a WAVE_FORMAT_EXTENSIBLE fmt chunk, SubFormat GUID included
	extensibleFmtSize = 40

	readChunk = 8192
)

// ksDataFormat is the tail shared by every KSDATAFORMAT_SUBTYPE GUID; the
// first two bytes carry the plain format code.
var ksDataFormat = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// pcmReader is an interface for wav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// SupportedBitDepth reports whether bitDepth can be read and written losslessly.
func SupportedBitDepth(bitDepth int) bool {
	switch bitDepth {
	case 16, 24, 32:
		return true
	}
	return false
}

type Decoder struct{}

// Decode reads a whole PCM WAV stream into a planar buffer.
// The returned format tag records the file's bit depth.
func (Decoder) Decode(r io.ReadSeeker) (*audio.Buffer, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	code := dec.WavAudioFormat
	if code == formatExtensible {
		sub, err := extensibleSubFormat(r)
		if err != nil {
			return nil, err
		}
		code = sub
	}
	if code != formatPCM {
		return nil, fmt.Errorf("%w: format code %#x", ErrUnsupportedEncoding, code)
	}

	bitDepth := int(dec.BitDepth)
	if !SupportedBitDepth(bitDepth) {
		return nil, fmt.Errorf("%w: %d bit", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, ErrUnsupportedChannels
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrNotWavFile
	}

	data, err := readAll(dec, format)
	if err != nil {
		return nil, err
	}

	return audio.NewBuffer(int(dec.SampleRate), audio.PCM(bitDepth),
		utils.Deinterleave(data, channels, bitDepth)...), nil
}

func readAll(r pcmReader, format *goaudio.Format) ([]int, error) {
	buf := &goaudio.IntBuffer{
		Data:   make([]int, readChunk),
		Format: format,
	}

	var out []int
	for {
		buf.Data = buf.Data[:cap(buf.Data)]
		n, err := r.PCMBuffer(buf)
		if n > 0 {
			out = append(out, buf.Data[:n]...)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}

	return out, nil
}

// extensibleSubFormat returns the format code carried by the SubFormat GUID
// of a WAVE_FORMAT_EXTENSIBLE fmt chunk. The read position of r is restored.
func extensibleSubFormat(r io.ReadSeeker) (code uint16, err error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer func() {
		if _, serr := r.Seek(pos, io.SeekStart); serr != nil && err == nil {
			err = serr
		}
	}()

	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(r)
	if err = p.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotWavFile, err)
	}

	for {
		ch, cerr := p.NextChunk()
		if cerr != nil {
			return 0, fmt.Errorf("%w: no fmt chunk", ErrNotWavFile)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		if ch.Size < extensibleFmtSize {
			return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrUnsupportedEncoding, ch.Size)
		}
		body := make([]byte, extensibleFmtSize)
		if _, err = io.ReadFull(ch, body); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNotWavFile, err)
		}

		guid := body[24:40]
		if !bytes.Equal(guid[2:], ksDataFormat) {
			return 0, fmt.Errorf("%w: extensible subformat %x", ErrUnsupportedEncoding, guid)
		}
		return binary.LittleEndian.Uint16(guid[:2]), nil
	}
}

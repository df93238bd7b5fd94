// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds fixture helpers shared by tests: sample generators that
// land exactly on the PCM grid, and writers for on-disk fixtures.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/utils"
)

// Waveform generates the value of one sample.
type Waveform func(frame int) float64

// Generate renders frames samples of w, quantized to bitDepth so that the values
// survive a write/read round trip unchanged.
func Generate(frames, bitDepth int, w Waveform) []float64 {
	out := make([]float64, frames)
	for i := range frames {
		out[i] = Quantize(w(i), bitDepth)
	}
	return out
}

// Quantize snaps x to the nearest value representable at bitDepth.
func Quantize(x float64, bitDepth int) float64 {
	return utils.PCMToFloat(utils.FloatToPCM(x, bitDepth), bitDepth)
}

// Sine returns a sine waveform at frequency Hz for the given sample rate.
func Sine(sampleRate int, frequency, amplitude float64) Waveform {
	return func(frame int) float64 {
		t := float64(frame) / float64(sampleRate)
		return amplitude * math.Sin(2*math.Pi*frequency*t)
	}
}

// Ramp returns a sawtooth that climbs by step per frame and wraps at 1.
func Ramp(step float64) Waveform {
	return func(frame int) float64 {
		return math.Mod(float64(frame)*step, 2) - 1
	}
}

// Constant returns the same value for every frame.
func Constant(value float64) Waveform {
	return func(int) float64 { return value }
}

// Silence returns zeros.
func Silence() Waveform {
	return Constant(0)
}

// PCM16 builds a 16-bit PCM buffer from planar channels.
func PCM16(sampleRate int, channels ...[]float64) *audio.Buffer {
	return audio.NewBuffer(sampleRate, audio.PCM(16), channels...)
}

// FloatWav renders planar channels as a 32-bit IEEE float WAVE_FORMAT_EXTENSIBLE
// stream, a layout the codec layer must refuse rather than misread.
func FloatWav(sampleRate int, channels ...[]float64) []byte {
	frames := 0
	if len(channels) > 0 {
		frames = len(channels[0])
	}
	blockAlign := 4 * len(channels)

	var data bytes.Buffer
	for i := range frames {
		for _, ch := range channels {
			_ = binary.Write(&data, binary.LittleEndian, math.Float32bits(float32(ch[i])))
		}
	}

	var fmtChunk bytes.Buffer
	for _, v := range []any{
		uint16(0xFFFE),
		uint16(len(channels)),
		uint32(sampleRate),
		uint32(sampleRate * blockAlign),
		uint16(blockAlign),
		uint16(32),
		uint16(22),
		uint16(32),
		uint32(0),
		[]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71},
	} {
		_ = binary.Write(&fmtChunk, binary.LittleEndian, v)
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	_ = binary.Write(&out, binary.LittleEndian, uint32(4+8+fmtChunk.Len()+8+data.Len()))
	out.WriteString("WAVE")
	out.WriteString("fmt ")
	_ = binary.Write(&out, binary.LittleEndian, uint32(fmtChunk.Len()))
	out.Write(fmtChunk.Bytes())
	out.WriteString("data")
	_ = binary.Write(&out, binary.LittleEndian, uint32(data.Len()))
	out.Write(data.Bytes())
	return out.Bytes()
}

// WriteFile encodes b with enc into dir/name and returns the full path.
func WriteFile(tb testing.TB, enc audio.Encoder, dir, name string, b *audio.Buffer) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := enc.Encode(f, b); err != nil {
		tb.Fatalf("encode %s: %v", path, err)
	}

	return path
}

// ReadFile decodes the file at path with dec.
func ReadFile(tb testing.TB, dec audio.Decoder, path string) *audio.Buffer {
	tb.Helper()

	f, err := os.Open(path)
	if err != nil {
		tb.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	b, err := dec.Decode(f)
	if err != nil {
		tb.Fatalf("decode %s: %v", path, err)
	}

	return b
}

// Touch creates an empty file, creating parent directories as needed.
func Touch(tb testing.TB, path string) {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		tb.Fatalf("touch %s: %v", path, err)
	}
}

// Equal reports whether two sample slices are identical.
func Equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

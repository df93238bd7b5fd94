// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate   int
	channels     int
	samples      []int
	offset       int
	returnErrors bool
	noFormat     bool
}

func (m *mockAiffReader) Format() *goaudio.Format {
	if m.noFormat {
		return nil
	}
	return &goaudio.Format{
		SampleRate:  m.sampleRate,
		NumChannels: m.channels,
	}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	samplesToRead := min(len(buf.Data), len(m.samples)-m.offset)

	copy(buf.Data, m.samples[m.offset:m.offset+samplesToRead])
	m.offset += samplesToRead

	if m.offset >= len(m.samples) {
		return samplesToRead, io.EOF
	}

	return samplesToRead, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("This is not AIFF data")))

	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte{}))

	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecode_Stereo(t *testing.T) {
	t.Parallel()

	// interleaved L/R at 16 bit
	samples := []int{0, 16384, -16384, 32767, -32768, 0}

	buf, err := decode(&mockAiffReader{sampleRate: 44100, channels: 2, samples: samples}, 16)
	if err != nil {
		t.Fatalf("decode() error = %v", err)
	}

	if buf.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", buf.SampleRate)
	}
	if buf.Format.String() != "PCM_16" {
		t.Errorf("Format = %s, want PCM_16", buf.Format)
	}
	if buf.Channels() != 2 || buf.Frames() != 3 {
		t.Fatalf("layout = %d ch x %d frames, want 2 x 3", buf.Channels(), buf.Frames())
	}

	wantLeft := []float64{0, -0.5, -1}
	wantRight := []float64{0.5, 32767.0 / 32768.0, 0}
	for i := range 3 {
		if buf.Data[0][i] != wantLeft[i] {
			t.Errorf("left[%d] = %v, want %v", i, buf.Data[0][i], wantLeft[i])
		}
		if buf.Data[1][i] != wantRight[i] {
			t.Errorf("right[%d] = %v, want %v", i, buf.Data[1][i], wantRight[i])
		}
	}
}

func TestDecode_BitDepthNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		sample   int
		want     float64
	}{
		{16, -32768, -1},
		{24, 4194304, 0.5},
		{32, -1073741824, -0.5},
	}

	for _, tt := range tests {
		buf, err := decode(&mockAiffReader{sampleRate: 48000, channels: 1, samples: []int{tt.sample}}, tt.bitDepth)
		if err != nil {
			t.Fatalf("decode(%d bit) error = %v", tt.bitDepth, err)
		}
		if got := buf.Data[0][0]; got != tt.want {
			t.Errorf("decode(%d bit) sample = %v, want %v", tt.bitDepth, got, tt.want)
		}
	}
}

func TestDecode_Error(t *testing.T) {
	t.Parallel()

	_, err := decode(&mockAiffReader{sampleRate: 44100, channels: 1, returnErrors: true}, 16)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("decode() error = %v, want %v", err, io.ErrUnexpectedEOF)
	}
}

func TestDecode_NoFormat(t *testing.T) {
	t.Parallel()

	_, err := decode(&mockAiffReader{noFormat: true}, 16)
	if !errors.Is(err, ErrUnsupportedAiffLayout) {
		t.Errorf("decode() error = %v, want %v", err, ErrUnsupportedAiffLayout)
	}
}

func TestErrors_Uniqueness(t *testing.T) {
	t.Parallel()

	all := []error{ErrNotAiffFile, ErrUnsupportedBitDepth, ErrUnsupportedEncoding, ErrUnsupportedAiffLayout}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// aifcFile builds a mono 16 bit 44.1kHz AIFC stream with the given
// compression type.
func aifcFile(compression string, samples ...int16) []byte {
	var comm bytes.Buffer
	_ = binary.Write(&comm, binary.BigEndian, uint16(1))
	_ = binary.Write(&comm, binary.BigEndian, uint32(len(samples)))
	_ = binary.Write(&comm, binary.BigEndian, uint16(16))
	comm.Write([]byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0})
	comm.WriteString(compression)
	comm.Write([]byte{0, 0}) // empty pascal name plus pad

	var ssnd bytes.Buffer
	_ = binary.Write(&ssnd, binary.BigEndian, uint32(0))
	_ = binary.Write(&ssnd, binary.BigEndian, uint32(0))
	_ = binary.Write(&ssnd, binary.BigEndian, samples)

	var body bytes.Buffer
	body.WriteString("AIFC")
	body.WriteString("COMM")
	_ = binary.Write(&body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	_ = binary.Write(&body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())

	var out bytes.Buffer
	out.WriteString("FORM")
	_ = binary.Write(&out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestDecoder_RejectsCompressedAifc(t *testing.T) {
	t.Parallel()

	for _, compression := range []string{"fl32", "fl64", "ulaw", "ima4"} {
		_, err := Decoder{}.Decode(bytes.NewReader(aifcFile(compression, 0, 1000, -1000, 0)))
		if !errors.Is(err, ErrUnsupportedEncoding) {
			t.Errorf("Decode(%s) error = %v, want %v", compression, err, ErrUnsupportedEncoding)
		}
	}
}

func TestCheckCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   [4]byte
		want error
	}{
		{[4]byte{}, nil},
		{[4]byte{'N', 'O', 'N', 'E'}, nil},
		{[4]byte{'s', 'o', 'w', 't'}, nil},
		{[4]byte{'f', 'l', '3', '2'}, ErrUnsupportedEncoding},
		{[4]byte{'a', 'l', 'a', 'w'}, ErrUnsupportedEncoding},
	}

	for _, tt := range tests {
		if got := checkCompression(tt.id); !errors.Is(got, tt.want) {
			t.Errorf("checkCompression(%q) = %v, want %v", string(tt.id[:]), got, tt.want)
		}
	}
}

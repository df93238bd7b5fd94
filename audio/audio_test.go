// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
)

// mockDecoder is a test decoder implementation
type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(io.ReadSeeker) (*Buffer, error) {
	return NewBuffer(44100, PCM(16), make([]float64, 100), make([]float64, 100)), nil
}

type mockEncoder struct{}

func (mockEncoder) Encode(io.WriteSeeker, *Buffer) error { return nil }

// failingDecoder always returns an error
type failingDecoder struct{}

func (d *failingDecoder) Decode(io.ReadSeeker) (*Buffer, error) {
	return nil, errors.New("decode failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "wav"}

	registry.Register("wav", decoder, mockEncoder{})

	got, ok := registry.Decoder("wav")
	if !ok {
		t.Fatal("Registry.Decoder() failed to retrieve registered decoder")
	}
	if got != decoder {
		t.Error("Registry.Decoder() returned different decoder instance")
	}
	if _, ok := registry.Encoder("wav"); !ok {
		t.Error("Registry.Encoder() failed to retrieve registered encoder")
	}
}

func TestRegistry_NormalizesExtension(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register(".AIFF", &mockDecoder{}, nil)

	for _, ext := range []string{"aiff", ".aiff", "AIFF", " .Aiff "} {
		if _, ok := registry.Decoder(ext); !ok {
			t.Errorf("Registry.Decoder(%q) ok = false, want true", ext)
		}
	}
}

func TestRegistry_DecodeOnly(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("mp3", &mockDecoder{}, nil)

	if _, ok := registry.Decoder("mp3"); !ok {
		t.Error("Registry.Decoder(mp3) ok = false, want true")
	}
	if _, ok := registry.Encoder("mp3"); ok {
		t.Error("Registry.Encoder(mp3) ok = true for a decode-only format")
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if _, ok := registry.Decoder("nonexistent"); ok {
		t.Error("Registry.Decoder() returned ok=true for non-existent format")
	}
	if _, ok := registry.Encoder("nonexistent"); ok {
		t.Error("Registry.Encoder() returned ok=true for non-existent format")
	}
}

func TestRegistry_MultipleFormats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wavDecoder := &mockDecoder{name: "wav"}
	mp3Decoder := &mockDecoder{name: "mp3"}
	oggDecoder := &failingDecoder{}

	registry.Register("wav", wavDecoder, mockEncoder{})
	registry.Register("mp3", mp3Decoder, nil)
	registry.Register("ogg", oggDecoder, nil)

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wavDecoder, true},
		{"mp3", mp3Decoder, true},
		{"ogg", oggDecoder, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, ok := registry.Decoder(tt.format)
			if ok != tt.wantOK {
				t.Errorf("Registry.Decoder(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Registry.Decoder(%q) returned wrong decoder", tt.format)
			}
		})
	}

	if got := registry.Extensions(); !slices.Equal(got, []string{"mp3", "ogg", "wav"}) {
		t.Errorf("Registry.Extensions() = %v, want [mp3 ogg wav]", got)
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder1 := &mockDecoder{name: "first"}
	decoder2 := &mockDecoder{name: "second"}

	registry.Register("wav", decoder1, mockEncoder{})
	registry.Register("wav", decoder2, nil)

	got, ok := registry.Decoder("wav")
	if !ok {
		t.Fatal("Registry.Decoder() failed after overwrite")
	}
	if got != decoder2 {
		t.Error("Registry.Decoder() did not return the overwritten decoder")
	}
	if _, ok := registry.Encoder("wav"); ok {
		t.Error("Registry.Encoder() kept the encoder of the first registration")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() { registry.Register("format", decoder, nil) })
		wg.Go(func() { _, _ = registry.Decoder("format") })
	}
	wg.Wait()

	got, ok := registry.Decoder("format")
	if !ok {
		t.Error("Registry.Decoder() failed after concurrent operations")
	}
	if got != decoder {
		t.Error("Registry returned wrong decoder after concurrent operations")
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if registry == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if registry.codecs == nil {
		t.Error("NewRegistry() did not initialize codecs map")
	}
	if registry.mtx == nil {
		t.Error("NewRegistry() did not initialize mutex")
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		want   string
	}{
		{PCM(16), "PCM_16"},
		{PCM(24), "PCM_24"},
		{Format{Encoding: EncodingMP3}, "MP3"},
		{Format{}, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format%+v.String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestBuffer_Shape(t *testing.T) {
	t.Parallel()

	var nilBuf *Buffer
	if nilBuf.Channels() != 0 || nilBuf.Frames() != 0 {
		t.Error("nil Buffer reports channels or frames")
	}

	b := NewBuffer(8000, PCM(16), make([]float64, 10), make([]float64, 10))
	if b.Channels() != 2 || b.Frames() != 10 {
		t.Errorf("Buffer = %d x %d, want 2 x 10", b.Channels(), b.Frames())
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestBuffer_Validate(t *testing.T) {
	t.Parallel()

	if err := NewBuffer(8000, PCM(16)).Validate(); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("Validate(no channels) = %v, want ErrEmptyBuffer", err)
	}

	uneven := NewBuffer(8000, PCM(16), make([]float64, 10), make([]float64, 9))
	if err := uneven.Validate(); !errors.Is(err, ErrChannelLength) {
		t.Errorf("Validate(uneven) = %v, want ErrChannelLength", err)
	}
}

// BenchmarkRegistry_Register benchmarks registering decoders
func BenchmarkRegistry_Register(b *testing.B) {
	registry := NewRegistry()
	decoder := &mockDecoder{}

	b.ReportAllocs()

	for b.Loop() {
		registry.Register("wav", decoder, nil)
	}
}

// BenchmarkRegistry_Decoder benchmarks retrieving decoders
func BenchmarkRegistry_Decoder(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", &mockDecoder{}, nil)

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Decoder("wav")
	}
}

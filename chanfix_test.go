// SPDX-License-Identifier: EPL-2.0

package chanfix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/classify"
	"github.com/ik5/chanfix/formats/aiff"
	"github.com/ik5/chanfix/formats/wav"
	"github.com/ik5/chanfix/internal/audiotest"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	for _, ext := range []string{"wav", ".WAV", "aif", "aiff"} {
		if _, ok := reg.Decoder(ext); !ok {
			t.Errorf("Decoder(%q) missing", ext)
		}
		if _, ok := reg.Encoder(ext); !ok {
			t.Errorf("Encoder(%q) missing", ext)
		}
	}
	for _, ext := range []string{"mp3", "ogg"} {
		if _, ok := reg.Decoder(ext); !ok {
			t.Errorf("Decoder(%q) missing", ext)
		}
		if _, ok := reg.Encoder(ext); ok {
			t.Errorf("Encoder(%q) present, want decode-only", ext)
		}
	}
}

func TestInspectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sig := audiotest.Generate(512, 16, audiotest.Sine(44100, 440, 0.5))
	other := audiotest.Generate(512, 16, audiotest.Sine(44100, 660, 0.5))

	tests := []struct {
		name       string
		enc        audio.Encoder
		channels   [][]float64
		want       classify.Layout
		mislabeled bool
	}{
		{name: "Guitar (stereo).wav", enc: wav.Encoder{}, channels: [][]float64{sig, sig}, want: classify.DualMono, mislabeled: true},
		{name: "Pad (stereo).wav", enc: wav.Encoder{}, channels: [][]float64{sig, other}, want: classify.Stereo},
		{name: "Kick.aif", enc: aiff.Encoder{}, channels: [][]float64{sig}, want: classify.Mono},
		{name: "Bass (dualmono).aiff", enc: aiff.Encoder{}, channels: [][]float64{make([]float64, 512), sig}, want: classify.SilentChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := audiotest.WriteFile(t, tt.enc, dir, tt.name, audiotest.PCM16(44100, tt.channels...))

			got, err := InspectFile(path)
			if err != nil {
				t.Fatalf("InspectFile() error = %v", err)
			}
			if got.Verdict.Layout != tt.want {
				t.Errorf("InspectFile() verdict = %v, want %v", got.Verdict, tt.want)
			}
			if got.Mislabeled() != tt.mislabeled {
				t.Errorf("Mislabeled() = %v, want %v", got.Mislabeled(), tt.mislabeled)
			}
			if got.Channels != len(tt.channels) || got.Frames != 512 || got.SampleRate != 44100 {
				t.Errorf("InspectFile() = %d ch, %d frames, %d Hz", got.Channels, got.Frames, got.SampleRate)
			}
			if got.Format != audio.PCM(16) {
				t.Errorf("InspectFile() format = %v, want PCM_16", got.Format)
			}
			if !got.Writable {
				t.Error("InspectFile() Writable = false")
			}
		})
	}
}

func TestInspectFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := InspectFile(filepath.Join(dir, "missing.wav")); !audio.IsFormatError(err) {
		t.Errorf("InspectFile(missing) error = %v, want FormatError", err)
	}

	junk := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(junk, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := InspectFile(junk); !audio.IsFormatError(err) {
		t.Errorf("InspectFile(junk) error = %v, want FormatError", err)
	}

	if _, err := InspectFile(filepath.Join(dir, "notes.txt")); !audio.IsFormatError(err) {
		t.Errorf("InspectFile(txt) error = %v, want FormatError", err)
	}
}

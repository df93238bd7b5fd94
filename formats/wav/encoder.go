// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/utils"
)

type Encoder struct{}

// Encode writes b as an integer PCM WAV with b's sample rate, channel count and bit depth.
func (Encoder) Encode(w io.WriteSeeker, b *audio.Buffer) error {
	if b.Format.Encoding != audio.EncodingPCM {
		return fmt.Errorf("%w: %s", ErrUnsupportedEncoding, b.Format)
	}
	if !SupportedBitDepth(b.Format.BitDepth) {
		return fmt.Errorf("%w: %d bit", ErrUnsupportedBitDepth, b.Format.BitDepth)
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w", err)
	}

	channels := b.Channels()
	enc := gowav.NewEncoder(w, b.SampleRate, b.Format.BitDepth, channels, formatPCM)

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  b.SampleRate,
		},
		Data:           utils.Interleave(b.Data, b.Format.BitDepth),
		SourceBitDepth: b.Format.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("%w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

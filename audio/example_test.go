// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/formats/mp3"
	"github.com/ik5/chanfix/formats/wav"
)

// Example_mergeStereo builds a stereo buffer from two mono takes of different
// length.
func Example_mergeStereo() {
	left := audio.NewBuffer(44100, audio.PCM(16), []float64{0.1, 0.2, 0.3, 0.4})
	right := audio.NewBuffer(44100, audio.PCM(16), []float64{-0.1, -0.2, -0.3})

	stereo, err := audio.MergeStereo(left, right)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%d channels, %d frames, %s\n", stereo.Channels(), stereo.Frames(), stereo.Format)
	// Output: 2 channels, 3 frames, PCM_16
}

// Example_registry shows a decode-only format next to a read-write one.
func Example_registry() {
	registry := audio.NewRegistry()
	registry.Register("wav", wav.Decoder{}, wav.Encoder{})
	registry.Register("mp3", mp3.Decoder{}, nil)

	for _, ext := range registry.Extensions() {
		_, ok := registry.Encoder(ext)
		fmt.Printf("%s writable: %v\n", ext, ok)
	}
	// Output:
	// mp3 writable: false
	// wav writable: true
}

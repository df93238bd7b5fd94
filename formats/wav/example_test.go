// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"os"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/formats/wav"
)

// Example_roundTrip shows encoding a 24-bit stereo buffer and decoding it again.
func Example_roundTrip() {
	f, err := os.CreateTemp("", "example-*.wav")
	if err != nil {
		fmt.Printf("CreateTemp error: %v\n", err)
		return
	}
	defer os.Remove(f.Name())
	defer f.Close()

	left := []float64{0, 0.5, -0.5, 0.25}
	right := []float64{0, -0.5, 0.5, -0.25}
	in := audio.NewBuffer(48000, audio.PCM(24), left, right)

	if err := (wav.Encoder{}).Encode(f, in); err != nil {
		fmt.Printf("Encode error: %v\n", err)
		return
	}

	if _, err := f.Seek(0, 0); err != nil {
		fmt.Printf("Seek error: %v\n", err)
		return
	}

	out, err := wav.Decoder{}.Decode(f)
	if err != nil {
		fmt.Printf("Decode error: %v\n", err)
		return
	}

	fmt.Printf("Format: %s\n", out.Format)
	fmt.Printf("Sample rate: %d Hz\n", out.SampleRate)
	fmt.Printf("Channels: %d, frames: %d\n", out.Channels(), out.Frames())
	fmt.Printf("Right[1]: %v\n", out.Data[1][1])
	// Output:
	// Format: PCM_24
	// Sample rate: 48000 Hz
	// Channels: 2, frames: 4
	// Right[1]: -0.5
}

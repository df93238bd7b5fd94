// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// It uses github.com/go-audio/wav for the RIFF container and converts between
// the container's interleaved integer samples and the planar, normalized
// audio.Buffer used by the rest of the module.
//
// # Supported Formats
//
// Currently supported:
//   - Integer PCM at 16, 24 and 32 bits (including WAVE_FORMAT_EXTENSIBLE headers)
//   - Any channel count on read; the encoder writes whatever the buffer holds
//   - Any sample rate
//
// # Format Fidelity
//
// Decode records the bit depth in the buffer's format tag and Encode writes the
// same bit depth back. Samples are quantized with utils.FloatToPCM, which is the
// exact inverse of the normalization applied on read, so a decode/encode round
// trip reproduces every sample bit for bit.
//
// # Decoding WAV Files
//
//	f, _ := os.Open("Kick.wav")
//	buf, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(buf.Format, buf.SampleRate, buf.Channels())
//
// # Writing WAV Files
//
// The encoder needs an io.WriteSeeker because the RIFF sizes are patched in
// after the samples are written:
//
//	out, _ := os.Create("Kick (mono).wav")
//	err := wav.Encoder{}.Encode(out, mono)
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE stream
//   - ErrUnsupportedEncoding: IEEE float or compressed WAV, including
//     WAVE_FORMAT_EXTENSIBLE files whose SubFormat is not PCM
//   - ErrUnsupportedBitDepth: anything but 16, 24 or 32 bit
package wav

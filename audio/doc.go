// SPDX-License-Identifier: EPL-2.0

// Package audio holds the in-memory representation of decoded audio files.
//
// A Buffer keeps a whole file in planar layout, one float64 slice per channel,
// normalized to [-1, 1]:
//
//	b := audio.NewBuffer(48000, audio.PCM(24), left, right)
//	b.Channels() // 2
//	b.Frames()   // len(left)
//
// Files are read whole because the classifier compares entire channels.
//
// # Format Tag
//
// Format records the encoding and bit depth a file was stored with. Encoders
// write exactly the tag they are given, so a file that is read, reduced and
// written back keeps its sample rate and bit depth.
//
// # Format Registry
//
// The registry binds decoders and encoders to file extensions. A format
// registered without an encoder is decode-only:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, wav.Encoder{})
//	registry.Register("mp3", mp3.Decoder{}, nil)
//	dec, _ := registry.Decoder(".WAV")
//
// Extensions are matched without the leading dot and case-insensitively.
//
// # Channel Helpers
//
// ExtractChannel copies one channel into a mono buffer; MergeStereo builds a
// stereo buffer from two mono ones, trimming to the shorter input.
//
// # Errors
//
// Anything that keeps a file from being analysed is reported as a
// *FormatError wrapping one of the sentinel errors of this package or the
// decoder's own error.
package audio

// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding and encoding.
//
// This package uses github.com/go-audio/aiff for the IFF container. Like the
// wav package it produces planar audio.Buffer values whose format tag records
// the source bit depth, and writes the same bit depth back.
//
// # Supported Formats
//
//   - AIFF integer PCM at 16, 24 and 32 bits
//   - Any channel count and sample rate
//
// AIFF-C compressed variants are rejected by the underlying decoder.
//
// # Usage
//
//	f, _ := os.Open("Snare.aif")
//	buf, err := aiff.Decoder{}.Decode(f)
//
//	out, _ := os.Create("Snare (mono).aif")
//	err = aiff.Encoder{}.Encode(out, mono)
//
// # Error Handling
//
//   - ErrNotAiffFile: the input is not an AIFF file
//   - ErrUnsupportedBitDepth: only 16, 24 and 32 bit PCM is handled
//   - ErrUnsupportedEncoding: an AIFC compression other than NONE or sowt,
//     or a buffer to encode that is not integer PCM
//   - ErrUnsupportedAiffLayout: the file reports no usable channel layout
package aiff

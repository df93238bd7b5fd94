// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding for channel analysis.
//
// This package uses github.com/jfreymuth/oggvorbis to decode the whole stream
// into a planar audio.Buffer tagged with the "vorbis" encoding.
//
// # Limitations
//
//   - Vorbis encoding is not supported (decoding only), so Vorbis files are
//     labeled but never reconstructed
//   - Lossy coding rarely keeps two channels bit-identical; expect dualmono
//     verdicts only for streams that were encoded from identical channels
//     with joint stereo coupling
package vorbis

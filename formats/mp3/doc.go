// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding for channel analysis.
//
// This package uses github.com/hajimehoshi/go-mp3. The whole stream is decoded
// into a planar audio.Buffer tagged with the "mp3" encoding.
//
// # Channel Layout
//
// go-mp3 always produces two channels. A mono MP3 therefore decodes as two
// identical channels and is classified as dualmono; that is an accurate
// description of the decoded signal, but such files can only be labeled, never
// converted, because MP3 is decode-only here.
//
// # Limitations
//
//   - No encoder: reconstruction of MP3 files fails with audio.ErrNoEncoder
//   - Samples are normalized from 16-bit output, so silence and equality tests
//     operate at 16-bit resolution
package mp3

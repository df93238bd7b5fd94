// SPDX-License-Identifier: EPL-2.0

// Package chanfix finds out what the channels of an audio file really hold and
// repairs files whose name or layout lies about it.
//
// Multitrack sessions often carry "stereo" files that are one signal copied to
// both channels, stereo files with one channel silent, and stereo sources
// exported as two mono files named with L and R. chanfix classifies each file,
// labels its name with the layout it found, rewrites degenerate files as mono
// and merges split pairs into one stereo file. Originals are never deleted:
// they move into an "-- OBSOLETE FILES" folder beside them.
//
// # Packages
//
//   - audio: planar sample buffers and the codec registry
//   - codec: read and write buffers by path
//   - classify: the layout classifier
//   - label: the " (mono)", " (stereo)" and " (dualmono)" name tags
//   - pairing: L/R name normalization and pair grouping
//   - reconstruct: dualmono to mono, L/R to stereo, archive moves
//   - pipeline: the staged run over a folder tree
//
// # Quick Start
//
// Inspect one file:
//
//	info, err := chanfix.InspectFile("Guitar.wav")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(info.Verdict) // dualmono
//
// Repair a whole session:
//
//	sum, err := pipeline.Run(ctx, pipeline.Options{
//		Root:      "/sessions/2024-05-01",
//		Codec:     chanfix.NewCodec(),
//		Confirmer: pipeline.AlwaysYes{},
//	})
//
// # Formats
//
// WAV and AIFF with 16, 24 or 32 bit integer PCM are read and written. MP3 and
// Ogg Vorbis are decoded for analysis only; such files get labeled but are
// never rewritten.
package chanfix

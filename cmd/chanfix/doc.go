// SPDX-License-Identifier: EPL-2.0

// Command chanfix classifies and repairs the channel layout of the audio files
// in a session folder.
//
//	chanfix run ~/sessions/gig      # interactive, asks before every stage
//	chanfix run --yes ~/sessions/gig
//	chanfix inspect Guitar.wav
//	chanfix pairs ~/sessions/gig
//	chanfix history
//	chanfix config init
package main

// SPDX-License-Identifier: EPL-2.0

// Package label implements the file naming convention that records a file's
// channel layout.
//
// A label is a parenthetical suffix placed before the extension:
// "Guitar (dualmono).wav", "Guitar (mono).wav", "Pad (stereo).wav".
// Merged left/right pairs get "(stereo)" directly after the common stem, as in
// "Vox(stereo).wav". The suffix is both the output of a run and the marker that
// makes later runs skip the file, so the exact text is part of the format.
package label

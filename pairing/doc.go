// SPDX-License-Identifier: EPL-2.0

// Package pairing finds split left/right mono recordings that belong together.
//
// File names such as "Kick L.wav", "Kick_right.wav" or "Vox-lft (mono).wav" are
// reduced to a case-folded key ("kick", "vox") and the side they claim. Files
// of one directory sharing a key form a group, and a group is a pair only when
// it holds exactly one file per side. Anything else is reported, never merged.
package pairing

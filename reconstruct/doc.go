// SPDX-License-Identifier: EPL-2.0

// Package reconstruct repairs channel layouts on disk.
//
// An Engine turns dualmono or silent-channel files into mono files, merges
// split left/right mono files into a stereo file and applies label tags. It
// works strictly forward: outputs are written to a temp file and moved into a
// name that must not exist yet, and the originals are then moved into the
// "-- OBSOLETE FILES" folder next to them. When that move fails the new output
// is removed, so a failed operation leaves the directory as it was.
package reconstruct

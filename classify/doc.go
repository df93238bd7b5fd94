// SPDX-License-Identifier: EPL-2.0

// Package classify decides the true channel layout of a decoded buffer.
//
// Classify is pure: it never touches the file system and returns the same
// verdict for the same samples. The policy is an exact elementwise comparison
// with an absolute tolerance of 1e-10, not a correlation coefficient, so two
// channels that merely sound alike stay Stereo.
//
//	v, err := classify.Classify(buf)
//	switch v.Layout {
//	case classify.SilentChannel:
//	    // v.Side is the silent channel, v.ActiveChannel() the one to keep
//	case classify.DualMono:
//	    // both channels carry the same signal
//	}
package classify

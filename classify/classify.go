// SPDX-License-Identifier: EPL-2.0

package classify

import (
	"math"

	"github.com/ik5/chanfix/audio"
)

// Tolerance is the absolute amplitude under which a sample counts as silent and
// two samples count as equal.
const Tolerance = 1e-10

// Layout is the channel classification label of an asset.
type Layout int

const (
	Unlabeled Layout = iota
	Mono
	Stereo
	DualMono
	SilentChannel
	Unknown
)

func (l Layout) String() string {
	switch l {
	case Unlabeled:
		return "unlabeled"
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	case DualMono:
		return "dualmono"
	case SilentChannel:
		return "silent channel"
	case Unknown:
		return "unknown"
	}
	return "invalid"
}

// Side names a channel of a 2-channel buffer.
type Side int

const (
	NoSide Side = iota
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return ""
}

// Channel is the buffer index of the side.
func (s Side) Channel() int {
	if s == Right {
		return 1
	}
	return 0
}

// Verdict is the classification outcome for one buffer. Side is set only for
// SilentChannel and names the silent channel.
type Verdict struct {
	Layout Layout
	Side   Side
}

func (v Verdict) String() string {
	if v.Layout == SilentChannel {
		return v.Layout.String() + " (" + v.Side.String() + ")"
	}
	return v.Layout.String()
}

// ActiveChannel is the channel that carries the signal when the verdict is
// reduced to mono: the non-silent one for SilentChannel, channel 0 otherwise.
func (v Verdict) ActiveChannel() int {
	if v.Layout == SilentChannel && v.Side == Left {
		return 1
	}
	return 0
}

// Reducible reports whether the buffer is a degenerate stereo that loses nothing
// when reduced to one channel.
func (v Verdict) Reducible() bool {
	return v.Layout == DualMono || v.Layout == SilentChannel
}

// Classify determines the channel layout of b. It does not modify b.
//
// Two channels are compared sample by sample: exactly one all-silent channel
// gives SilentChannel, channels equal within Tolerance give DualMono, anything
// else is Stereo. More than two channels are Unknown.
func Classify(b *audio.Buffer) (Verdict, error) {
	if b.Channels() == 0 || b.Frames() == 0 {
		return Verdict{}, &audio.FormatError{Err: audio.ErrEmptyBuffer}
	}
	if err := b.Validate(); err != nil {
		return Verdict{}, &audio.FormatError{Err: err}
	}
	if !finite(b) {
		return Verdict{}, &audio.FormatError{Err: audio.ErrNonFinite}
	}

	switch b.Channels() {
	case 1:
		return Verdict{Layout: Mono}, nil
	case 2:
		return classifyPair(b.Data[0], b.Data[1]), nil
	default:
		return Verdict{Layout: Unknown}, nil
	}
}

func classifyPair(left, right []float64) Verdict {
	leftSilent := silent(left)
	rightSilent := silent(right)

	switch {
	case leftSilent && !rightSilent:
		return Verdict{Layout: SilentChannel, Side: Left}
	case rightSilent && !leftSilent:
		return Verdict{Layout: SilentChannel, Side: Right}
	}

	if equal(left, right) {
		return Verdict{Layout: DualMono}
	}
	return Verdict{Layout: Stereo}
}

func silent(samples []float64) bool {
	for _, x := range samples {
		if math.Abs(x) >= Tolerance {
			return false
		}
	}
	return true
}

func equal(a, b []float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) >= Tolerance {
			return false
		}
	}
	return true
}

func finite(b *audio.Buffer) bool {
	for _, ch := range b.Data {
		for _, x := range ch {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return false
			}
		}
	}
	return true
}

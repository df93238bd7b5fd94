// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Channel returns the samples of channel ch without copying.
func (b *Buffer) Channel(ch int) ([]float64, error) {
	if ch < 0 || ch >= b.Channels() {
		return nil, fmt.Errorf("%w: %d of %d", ErrChannelIndex, ch, b.Channels())
	}
	return b.Data[ch], nil
}

// ExtractChannel copies one channel of b into a new mono buffer that keeps
// b's sample rate and format tag.
func ExtractChannel(b *Buffer, ch int) (*Buffer, error) {
	src, err := b.Channel(ch)
	if err != nil {
		return nil, err
	}

	mono := make([]float64, len(src))
	copy(mono, src)

	return NewBuffer(b.SampleRate, b.Format, mono), nil
}

// MergeStereo builds a 2-channel buffer from two mono buffers: channel 0 is
// left, channel 1 is right. Both streams are trimmed to the shorter one; nothing
// is padded. Sample rate and format tag come from left.
func MergeStereo(left, right *Buffer) (*Buffer, error) {
	if left.Channels() != 1 {
		return nil, fmt.Errorf("%w: left has %d channels, want 1", ErrChannelCount, left.Channels())
	}
	if right.Channels() != 1 {
		return nil, fmt.Errorf("%w: right has %d channels, want 1", ErrChannelCount, right.Channels())
	}

	frames := min(left.Frames(), right.Frames())

	l := make([]float64, frames)
	r := make([]float64, frames)
	copy(l, left.Data[0][:frames])
	copy(r, right.Data[0][:frames])

	return NewBuffer(left.SampleRate, left.Format, l, r), nil
}

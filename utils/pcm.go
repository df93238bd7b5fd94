// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// fullScale is the magnitude of the most negative sample at bitDepth.
func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// PCMToFloat normalizes a signed integer sample of the given bit depth to [-1, 1).
// The conversion is exact for bit depths up to 32.
func PCMToFloat(v int, bitDepth int) float64 {
	return float64(v) / fullScale(bitDepth)
}

// FloatToPCM quantizes x to a signed integer sample of the given bit depth.
// It is the exact inverse of PCMToFloat for values produced by it.
func FloatToPCM(x float64, bitDepth int) int {
	scale := fullScale(bitDepth)

	// Clamp and scale
	v := math.Round(x * scale)
	if v > scale-1 {
		v = scale - 1
	} else if v < -scale {
		v = -scale
	}

	return int(v)
}

// Deinterleave splits interleaved integer PCM into normalized planar channels.
// Trailing values that do not fill a whole frame are dropped.
func Deinterleave(data []int, channels, bitDepth int) [][]float64 {
	if channels <= 0 {
		return nil
	}

	frames := len(data) / channels
	out := make([][]float64, channels)
	for ch := range channels {
		out[ch] = make([]float64, frames)
	}

	for f := range frames {
		base := f * channels
		for ch := range channels {
			out[ch][f] = PCMToFloat(data[base+ch], bitDepth)
		}
	}

	return out
}

// Interleave quantizes planar channels into interleaved integer PCM.
// All channels must hold the same number of frames.
func Interleave(planar [][]float64, bitDepth int) []int {
	channels := len(planar)
	if channels == 0 {
		return nil
	}

	frames := len(planar[0])
	out := make([]int, frames*channels)

	// Unrolled loop for common cases
	switch channels {
	case 1:
		for f, x := range planar[0] {
			out[f] = FloatToPCM(x, bitDepth)
		}
	case 2:
		l, r := planar[0], planar[1]
		for f := range frames {
			idx := f << 1 // f * 2
			out[idx] = FloatToPCM(l[f], bitDepth)
			out[idx+1] = FloatToPCM(r[f], bitDepth)
		}
	default:
		for f := range frames {
			base := f * channels
			for ch := range channels {
				out[base+ch] = FloatToPCM(planar[ch][f], bitDepth)
			}
		}
	}

	return out
}

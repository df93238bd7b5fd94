// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    float64
		bitDepth int
		want     int
	}{
		{name: "zero", input: 0.0, bitDepth: 16, want: 0},
		{name: "max positive clamps", input: 1.0, bitDepth: 16, want: math.MaxInt16},
		{name: "max negative", input: -1.0, bitDepth: 16, want: math.MinInt16},
		{name: "half positive", input: 0.5, bitDepth: 16, want: 16384},
		{name: "half negative", input: -0.5, bitDepth: 16, want: -16384},
		{name: "clamp over max", input: 1.5, bitDepth: 16, want: math.MaxInt16},
		{name: "clamp under min", input: -1.5, bitDepth: 16, want: math.MinInt16},
		{name: "24 bit max negative", input: -1.0, bitDepth: 24, want: -8388608},
		{name: "24 bit max positive", input: 1.0, bitDepth: 24, want: 8388607},
		{name: "32 bit max negative", input: -1.0, bitDepth: 32, want: math.MinInt32},
		{name: "32 bit max positive", input: 1.0, bitDepth: 32, want: math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FloatToPCM(tt.input, tt.bitDepth)
			if got != tt.want {
				t.Errorf("FloatToPCM(%v, %d) = %d, want %d", tt.input, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestPCMRoundTrip_Exact(t *testing.T) {
	t.Parallel()

	for _, bitDepth := range []int{16, 24, 32} {
		hi := int(int64(1)<<(bitDepth-1)) - 1
		lo := -hi - 1
		values := []int{lo, lo + 1, -12345, -1, 0, 1, 12345, hi - 1, hi}

		for _, v := range values {
			got := FloatToPCM(PCMToFloat(v, bitDepth), bitDepth)
			if got != v {
				t.Errorf("bitDepth %d: FloatToPCM(PCMToFloat(%d)) = %d, want %d", bitDepth, v, got, v)
			}
		}
	}
}

func TestPCMToFloat_Range(t *testing.T) {
	t.Parallel()

	if got := PCMToFloat(math.MinInt16, 16); got != -1.0 {
		t.Errorf("PCMToFloat(MinInt16) = %v, want -1", got)
	}
	if got := PCMToFloat(math.MaxInt16, 16); got >= 1.0 {
		t.Errorf("PCMToFloat(MaxInt16) = %v, want < 1", got)
	}
}

func TestDeinterleave(t *testing.T) {
	t.Parallel()

	data := []int{100, -100, 200, -200, 300, -300, 7}
	got := Deinterleave(data, 2, 16)

	if len(got) != 2 {
		t.Fatalf("Deinterleave() channels = %d, want 2", len(got))
	}
	if len(got[0]) != 3 || len(got[1]) != 3 {
		t.Fatalf("Deinterleave() frames = %d/%d, want 3/3 (partial frame dropped)", len(got[0]), len(got[1]))
	}

	for f := range 3 {
		wantL := PCMToFloat(100*(f+1), 16)
		wantR := PCMToFloat(-100*(f+1), 16)
		if got[0][f] != wantL {
			t.Errorf("left[%d] = %v, want %v", f, got[0][f], wantL)
		}
		if got[1][f] != wantR {
			t.Errorf("right[%d] = %v, want %v", f, got[1][f], wantR)
		}
	}
}

func TestDeinterleave_ZeroChannels(t *testing.T) {
	t.Parallel()

	if got := Deinterleave([]int{1, 2, 3}, 0, 16); got != nil {
		t.Errorf("Deinterleave(channels=0) = %v, want nil", got)
	}
}

func TestInterleave_InverseOfDeinterleave(t *testing.T) {
	t.Parallel()

	for _, channels := range []int{1, 2, 3} {
		data := make([]int, channels*50)
		for i := range data {
			data[i] = (i*7919)%65536 - 32768
		}

		got := Interleave(Deinterleave(data, channels, 16), 16)
		if len(got) != len(data) {
			t.Fatalf("channels %d: len = %d, want %d", channels, len(got), len(data))
		}
		for i := range data {
			if got[i] != data[i] {
				t.Fatalf("channels %d: got[%d] = %d, want %d", channels, i, got[i], data[i])
			}
		}
	}
}

func TestInterleave_Empty(t *testing.T) {
	t.Parallel()

	if got := Interleave(nil, 16); got != nil {
		t.Errorf("Interleave(nil) = %v, want nil", got)
	}
}

// SPDX-License-Identifier: EPL-2.0

package chanfix_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/chanfix"
	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/codec"
)

// Example_inspect writes a stereo file holding the same signal twice and asks
// what it really is.
func Example_inspect() {
	dir, err := os.MkdirTemp("", "chanfix-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	signal := []float64{0, 0.25, 0.5, 0.25, 0, -0.25, -0.5, -0.25}
	path := filepath.Join(dir, "Guitar (stereo).wav")

	c := codec.New(chanfix.DefaultRegistry())
	if err := c.Write(path, audio.NewBuffer(48000, audio.PCM(24), signal, signal)); err != nil {
		fmt.Println(err)
		return
	}

	info, err := chanfix.Inspect(c, path)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(info.Verdict, info.Format, info.SampleRate)
	fmt.Println("mislabeled:", info.Mislabeled())
	// Output:
	// dualmono PCM_24 48000
	// mislabeled: true
}

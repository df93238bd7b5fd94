// SPDX-License-Identifier: EPL-2.0

package pairing

import "fmt"

// AmbiguousPairError reports a group that does not hold exactly one left and
// one right candidate.
type AmbiguousPairError struct {
	Dir   string
	Key   string
	Left  []string
	Right []string
}

func (e *AmbiguousPairError) Error() string {
	return fmt.Sprintf("ambiguous pair %q in %s: %d left, %d right candidates",
		e.Key, e.Dir, len(e.Left), len(e.Right))
}

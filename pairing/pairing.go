// SPDX-License-Identifier: EPL-2.0

package pairing

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Side is the channel a file name claims to carry.
type Side int

const (
	None Side = iota
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
	return "none"
}

const separators = " _-."

var (
	leftTokens  = []string{"l", "left", "lft"}
	rightTokens = []string{"r", "right", "rigth", "rigt", "righ", "rght"}
)

// Pair is a resolved left/right candidate pair.
type Pair struct {
	Dir   string
	Key   string
	Left  string
	Right string
}

// Group gathers every side-tagged file of one directory that normalizes to the
// same key.
type Group struct {
	Dir   string
	Key   string
	Left  []string
	Right []string
}

// Resolved reports whether the group holds exactly one file per side.
func (g Group) Resolved() bool {
	return len(g.Left) == 1 && len(g.Right) == 1
}

// Unresolved is a group that cannot be merged automatically.
type Unresolved struct {
	Group
	Err *AmbiguousPairError
}

// Result of FindPairs. All slices are in lexical order.
type Result struct {
	Pairs      []Pair
	Unresolved []Unresolved
	// Unpaired holds files whose names carry no side token.
	Unpaired []string
}

// Normalize reduces a file name to its pairing key and the side its name
// claims. Only the base name of filename is considered.
//
// The extension, trailing parenthetical tags and a trailing left/right token
// that follows a separator are removed, then the rest is case-folded.
func Normalize(filename string) (string, Side) {
	stem, side := split(filename)
	return fold(stem), side
}

// Stem is Normalize without the case folding: the display form of the key.
func Stem(filename string) string {
	stem, _ := split(filename)
	return stem
}

func split(filename string) (string, Side) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = stripParentheticals(stem)
	stem = strings.TrimRight(stem, separators)

	side := None
	if i := strings.LastIndexAny(stem, separators); i > 0 {
		if side = sideOf(stem[i+1:]); side != None {
			stem = strings.TrimRight(stem[:i], separators)
		}
	}

	return stem, side
}

func stripParentheticals(stem string) string {
	for {
		trimmed := strings.TrimRight(stem, " ")
		if !strings.HasSuffix(trimmed, ")") {
			return trimmed
		}
		open := strings.LastIndex(trimmed, "(")
		if open < 0 {
			return trimmed
		}
		stem = trimmed[:open]
	}
}

func sideOf(token string) Side {
	token = strings.ToLower(token)
	for _, t := range leftTokens {
		if token == t {
			return Left
		}
	}
	for _, t := range rightTokens {
		if token == t {
			return Right
		}
	}
	return None
}

func fold(s string) string {
	return cases.Fold().String(s)
}

type groupKey struct {
	dir string
	key string
}

// FindPairs groups side-tagged paths by directory and normalized key. A group
// with exactly one left and one right file becomes a Pair; every other group is
// returned as Unresolved and is never merged.
func FindPairs(paths []string) Result {
	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.Strings(sorted)

	var (
		res    Result
		order  []groupKey
		groups = make(map[groupKey]*Group)
	)

	for _, path := range sorted {
		key, side := Normalize(path)
		if side == None {
			res.Unpaired = append(res.Unpaired, path)
			continue
		}

		gk := groupKey{dir: filepath.Dir(path), key: key}
		g, ok := groups[gk]
		if !ok {
			g = &Group{Dir: gk.dir, Key: key}
			groups[gk] = g
			order = append(order, gk)
		}

		if side == Left {
			g.Left = append(g.Left, path)
		} else {
			g.Right = append(g.Right, path)
		}
	}

	for _, gk := range order {
		g := groups[gk]
		if g.Resolved() {
			res.Pairs = append(res.Pairs, Pair{Dir: g.Dir, Key: g.Key, Left: g.Left[0], Right: g.Right[0]})
			continue
		}
		res.Unresolved = append(res.Unresolved, Unresolved{
			Group: *g,
			Err:   &AmbiguousPairError{Dir: g.Dir, Key: g.Key, Left: g.Left, Right: g.Right},
		})
	}

	return res
}

// CommonStem returns the longest common prefix of two stems, compared rune by
// rune after case folding. The characters come from a. Trailing separators are
// trimmed from the result.
func CommonStem(a, b string) string {
	ra := []rune(a)
	rb := []rune(b)

	n := 0
	for n < len(ra) && n < len(rb) {
		if ra[n] != rb[n] && fold(string(ra[n])) != fold(string(rb[n])) {
			break
		}
		n++
	}

	return strings.TrimRight(string(ra[:n]), separators)
}

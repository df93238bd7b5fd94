// SPDX-License-Identifier: EPL-2.0

package label

import (
	"path/filepath"
	"strings"

	"github.com/ik5/chanfix/classify"
)

// ArchiveDir is the name of the per-directory folder that receives superseded
// originals.
const ArchiveDir = "-- OBSOLETE FILES"

// Tags appended to a stem before the extension.
const (
	MonoTag     = " (mono)"
	StereoTag   = " (stereo)"
	DualMonoTag = " (dualmono)"

	// PairTag follows the common stem of a merged left/right pair directly.
	PairTag = "(stereo)"
)

// parentheticals in match order; "(dualmono)" goes first so "(mono)" never eats
// a part of it.
var parentheticals = []struct {
	text   string
	layout classify.Layout
}{
	{"(dualmono)", classify.DualMono},
	{"(stereo)", classify.Stereo},
	{"(mono)", classify.Mono},
}

// Tag returns the suffix recorded for layout. Only Mono, Stereo and DualMono
// have a tag.
func Tag(layout classify.Layout) (string, bool) {
	switch layout {
	case classify.Mono:
		return MonoTag, true
	case classify.Stereo:
		return StereoTag, true
	case classify.DualMono:
		return DualMonoTag, true
	}
	return "", false
}

// SplitExt splits the base name of path into stem and extension, the extension
// keeping its dot.
func SplitExt(path string) (stem, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

// Parse reports the layout recorded in the file name at path, if any. The tag
// is matched case-insensitively, with or without the leading space.
func Parse(path string) (classify.Layout, bool) {
	stem, _ := SplitExt(path)
	return parseStem(stem)
}

// IsLabeled reports whether the file name at path carries a label tag.
func IsLabeled(path string) bool {
	_, ok := Parse(path)
	return ok
}

func parseStem(stem string) (classify.Layout, bool) {
	lower := strings.ToLower(stem)
	for _, p := range parentheticals {
		if strings.HasSuffix(lower, p.text) {
			return p.layout, true
		}
	}
	return classify.Unlabeled, false
}

// Strip removes every trailing label tag from stem, along with the spaces
// before it.
func Strip(stem string) string {
	for {
		lower := strings.ToLower(stem)
		stripped := false
		for _, p := range parentheticals {
			if strings.HasSuffix(lower, p.text) {
				stem = strings.TrimRight(stem[:len(stem)-len(p.text)], " ")
				stripped = true
				break
			}
		}
		if !stripped {
			return stem
		}
	}
}

// Apply returns the base name of path retagged for layout: existing tags are
// removed and the layout's tag goes before the extension.
// A layout without a tag leaves the base name untouched.
func Apply(path string, layout classify.Layout) string {
	stem, ext := SplitExt(path)
	tag, ok := Tag(layout)
	if !ok {
		return stem + ext
	}
	return Strip(stem) + tag + ext
}

// PairName builds the output base name of a merged pair from its common stem.
func PairName(stem, ext string) string {
	return stem + PairTag + ext
}

// InArchive reports whether path lies inside an archive directory.
func InArchive(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if part == ArchiveDir {
			return true
		}
	}
	return false
}

// ArchivePath is the destination of path inside the archive directory beside it.
func ArchivePath(path string) string {
	return filepath.Join(filepath.Dir(path), ArchiveDir, filepath.Base(path))
}

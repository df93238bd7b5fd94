// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ik5/chanfix/internal/fsx"
	"github.com/ik5/chanfix/label"
)

type listing struct {
	audio  []string
	hidden []string
}

// list walks the root in lexical order. The archive folder and hidden
// directories are never entered. Unreadable subdirectories are reported and
// skipped.
func (r *run) list(stage Stage) (listing, error) {
	var l listing

	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == r.root {
				return err
			}
			r.fail(stage, path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == r.root {
				return nil
			}
			if name == label.ArchiveDir || isHidden(name) {
				return fs.SkipDir
			}
			return nil
		}

		if isHidden(name) {
			if !r.internalFile(path) {
				l.hidden = append(l.hidden, path)
			}
			return nil
		}

		if d.Type().IsRegular() && r.wanted(name) {
			l.audio = append(l.audio, path)
		}
		return nil
	})

	return l, err
}

// internalFile reports files chanfix itself creates.
func (r *run) internalFile(path string) bool {
	if fsx.IsTemp(path) {
		return true
	}
	return filepath.Dir(path) == r.root && filepath.Base(path) == LockFile
}

func (r *run) wanted(name string) bool {
	_, ok := r.exts[normalizeExt(filepath.Ext(name))]
	return ok
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/chanfix/label"
)

// audioFiles expands args into the audio files they name. Directories are
// walked; archive folders and hidden entries are left out.
func audioFiles(args []string, exts []string) ([]string, error) {
	want := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		want[strings.ToLower(ext)] = struct{}{}
	}
	wanted := func(name string) bool {
		_, ok := want[strings.ToLower(filepath.Ext(name))]
		return ok
	}

	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path != arg && (name == label.ArchiveDir || strings.HasPrefix(name, ".")) {
					return fs.SkipDir
				}
				return nil
			}
			if !strings.HasPrefix(name, ".") && d.Type().IsRegular() && wanted(name) {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

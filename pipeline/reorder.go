// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/ik5/chanfix/internal/config"
	"github.com/ik5/chanfix/internal/fsx"
	"github.com/ik5/chanfix/internal/logging"
)

var numbered = regexp.MustCompile(`^\d{2,} - `)

// Categorize returns the first category with a keyword matching a word of
// name. A word matches a keyword when it equals it, optionally followed by a
// plural "s" or a number: "toms" and "kick2" match "tom" and "kick".
func Categorize(name string, categories []config.Category) (config.Category, bool) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	words := strings.FieldsFunc(cases.Fold().String(stem), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, cat := range categories {
		for _, kw := range cat.Keywords {
			for _, w := range words {
				if keywordMatch(w, kw) {
					return cat, true
				}
			}
		}
	}
	return config.Category{}, false
}

func keywordMatch(word, keyword string) bool {
	rest, ok := strings.CutPrefix(word, keyword)
	if !ok {
		return false
	}
	if rest == "" || rest == "s" {
		return true
	}
	for _, r := range rest {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsNumbered reports whether name already starts with a "NN - " prefix.
func IsNumbered(name string) bool {
	return numbered.MatchString(filepath.Base(name))
}

func (r *run) reorder(ctx context.Context) error {
	if !r.opts.Reorder {
		return nil
	}

	files, err := r.topLevel()
	if err != nil {
		return fmt.Errorf("list %s: %w", r.root, err)
	}
	if len(files) == 0 {
		return nil
	}
	if !r.confirm(StageReorder, PromptReorder) {
		return nil
	}

	categories := r.opts.Categories
	if len(categories) == 0 {
		categories = config.DefaultCategories()
	}

	var uncategorized []string
	for i, name := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.sink.Progress("reordering", i+1, len(files))

		cat, ok := Categorize(name, categories)
		if !ok {
			uncategorized = append(uncategorized, name)
			continue
		}

		dir := filepath.Join(r.root, cat.Name)
		if err := fsx.EnsureDir(dir); err != nil {
			r.fail(StageReorder, filepath.Join(r.root, name), err)
			continue
		}
		n, err := countVisible(dir)
		if err != nil {
			r.fail(StageReorder, filepath.Join(r.root, name), err)
			continue
		}
		r.renumber(filepath.Join(r.root, name), filepath.Join(dir, fmt.Sprintf("%02d - %s", n+1, name)))
	}

	for i, name := range uncategorized {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.renumber(filepath.Join(r.root, name), filepath.Join(r.root, fmt.Sprintf("%02d - %s", i+1, name)))
	}
	return nil
}

func (r *run) renumber(src, dst string) {
	if err := fsx.Move(src, dst); err != nil {
		r.fail(StageReorder, src, err)
		return
	}
	r.summary.Reordered++
	r.sink.Log(fmt.Sprintf("reordered %s -> %s", r.rel(src), r.rel(dst)))
	r.log.Debug("reordered", logging.FieldStage, StageReorder.String(), logging.FieldPath, src, logging.FieldTarget, dst)
}

// topLevel lists the scanned audio files directly in the root that carry no
// number yet, in lexical order.
func (r *run) topLevel() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || isHidden(name) || !r.wanted(name) || IsNumbered(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func countVisible(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !isHidden(e.Name()) {
			n++
		}
	}
	return n, nil
}

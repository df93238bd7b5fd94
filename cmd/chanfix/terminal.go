// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/ik5/chanfix/pairing"
	"github.com/ik5/chanfix/reconstruct"
)

func isTerminal(w any) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// prompter asks on out and reads the answers from in. It confirms stages and
// narrows their candidates. For yes/no questions anything but y or yes, end of
// input included, is a refusal.
type prompter struct {
	in   *bufio.Reader
	out  io.Writer
	root string
}

func newPrompter(in io.Reader, out io.Writer, root string) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, root: root}
}

func (p *prompter) Ask(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", prompt)

	line, ok := p.readLine()
	if !ok {
		return false
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *prompter) SelectDualmono(paths []string) []string {
	items := make([]string, len(paths))
	for i, path := range paths {
		items[i] = rel(p.root, path)
	}

	var out []string
	for _, i := range p.choose("Dualmono files to convert:", items) {
		out = append(out, paths[i])
	}
	return out
}

func (p *prompter) SelectPairs(pairs []pairing.Pair) []pairing.Pair {
	items := make([]string, len(pairs))
	for i, pair := range pairs {
		items[i] = fmt.Sprintf("%s + %s", rel(p.root, pair.Left), filepath.Base(pair.Right))
		if name, err := reconstruct.PairOutputName(pair.Left, pair.Right); err == nil {
			items[i] += " -> " + name
		}
	}

	var out []pairing.Pair
	for _, i := range p.choose("Pairs to merge:", items) {
		out = append(out, pairs[i])
	}
	return out
}

// choose lists items and asks until the answer parses. End of input selects
// nothing.
func (p *prompter) choose(title string, items []string) []int {
	fmt.Fprintln(p.out, title)
	for i, item := range items {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, item)
	}

	for {
		fmt.Fprint(p.out, "select (all, none, or e.g. 1-3,5) [all]: ")
		line, ok := p.readLine()
		if !ok {
			return nil
		}

		picked, err := parseSelection(line, len(items))
		if err == nil {
			return picked
		}
		fmt.Fprintf(p.out, "%v\n", err)
	}
}

// readLine returns the next trimmed line; ok is false once input is exhausted.
func (p *prompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(line), true
}

// parseSelection turns an answer into ascending zero-based indices below n.
// An empty answer or "all" picks everything; "none" picks nothing. Otherwise
// the answer is a list of one-based numbers and ranges separated by commas or
// spaces.
func parseSelection(answer string, n int) ([]int, error) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	switch answer {
	case "", "a", "all":
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all, nil
	case "none", "n":
		return nil, nil
	}

	picked := make([]bool, n)
	fields := strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	for _, field := range fields {
		lo, hi, isRange := strings.Cut(field, "-")
		if !isRange {
			hi = lo
		}

		from, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", field)
		}
		to, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid selection %q", field)
		}
		if from < 1 || to > n || from > to {
			return nil, fmt.Errorf("selection %q is outside 1-%d", field, n)
		}

		for i := from; i <= to; i++ {
			picked[i-1] = true
		}
	}

	var out []int
	for i, ok := range picked {
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// lineSink prints log lines, and a progress line when a stage finishes.
type lineSink struct {
	out io.Writer
}

func (s lineSink) Progress(desc string, n, total int) {
	if n == total {
		fmt.Fprintf(s.out, "%s: %d / %d\n", desc, n, total)
	}
}

func (s lineSink) Log(line string) {
	fmt.Fprintln(s.out, line)
}

// barSink draws one mpb bar per stage. Lines logged while a bar is on screen
// are held back until it completes.
type barSink struct {
	out io.Writer

	progress *mpb.Progress
	bar      *mpb.Bar
	desc     string
	held     []string
}

func newBarSink(out io.Writer) *barSink {
	return &barSink{out: out}
}

func (s *barSink) Progress(desc string, n, total int) {
	if s.bar != nil && desc != s.desc {
		s.finish()
	}
	if s.bar == nil {
		s.progress = mpb.New(mpb.WithOutput(s.out), mpb.WithWidth(64))
		s.bar = s.progress.AddBar(int64(total),
			mpb.PrependDecorators(
				decor.Name(desc+": "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(
				decor.Percentage(),
			),
		)
		s.desc = desc
	}

	s.bar.SetCurrent(int64(n))
	if n >= total {
		s.finish()
	}
}

func (s *barSink) Log(line string) {
	if s.bar != nil {
		s.held = append(s.held, line)
		return
	}
	fmt.Fprintln(s.out, line)
}

// finish waits for the current bar, aborting it if the stage stopped early,
// and prints the held lines.
func (s *barSink) finish() {
	if s.bar == nil {
		return
	}
	if !s.bar.Completed() {
		s.bar.Abort(false)
	}
	s.progress.Wait()
	s.progress, s.bar, s.desc = nil, nil, ""

	for _, line := range s.held {
		fmt.Fprintln(s.out, line)
	}
	s.held = nil
}

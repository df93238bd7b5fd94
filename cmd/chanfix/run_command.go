// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/chanfix"
	"github.com/ik5/chanfix/internal/config"
	"github.com/ik5/chanfix/internal/ledger"
	"github.com/ik5/chanfix/pipeline"
)

type runOptions struct {
	yes      bool
	reorder  bool
	noLedger bool
	hidden   string
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run <folder>",
		Short: "Classify, label and repair every audio file under a folder",
		Long: `Run walks the folder and asks before each stage:

  identify?           classify unlabeled files and tag their names
  convert dualmono?   rewrite dualmono files as mono
  merge L/R?          merge left/right mono files into stereo
  reorder?            number and sort top-level files (with --reorder)

Originals are moved into "-- OBSOLETE FILES" folders, never deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, ctx, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Answer yes to every prompt")
	cmd.Flags().BoolVar(&opts.reorder, "reorder", false, "Number and sort top-level files into category folders")
	cmd.Flags().BoolVar(&opts.noLedger, "no-ledger", false, "Do not journal archive moves")
	cmd.Flags().StringVar(&opts.hidden, "hidden", "", "Hidden file policy: skip or archive (default from config)")
	return cmd
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, root string, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	hidden := cfg.Scan.HiddenFiles
	if opts.hidden != "" {
		hidden = strings.ToLower(strings.TrimSpace(opts.hidden))
		if hidden != config.HiddenSkip && hidden != config.HiddenArchive {
			return fmt.Errorf("--hidden: unsupported value %q (use skip or archive)", opts.hidden)
		}
	}

	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var store *ledger.Store
	if cfg.Ledger.Enabled && !opts.noLedger {
		store, err = ledger.Open(runCtx, cfg.Ledger.Path)
		if err != nil {
			return fmt.Errorf("open ledger: %w", err)
		}
		defer store.Close()
	}

	out := cmd.OutOrStdout()

	var confirmer pipeline.Confirmer = pipeline.AlwaysYes{}
	var selector pipeline.Selector = pipeline.SelectAll{}
	if !opts.yes {
		base, err := filepath.Abs(root)
		if err != nil {
			base = root
		}
		p := newPrompter(cmd.InOrStdin(), out, base)
		confirmer, selector = p, p
	}

	var sink pipeline.Sink = lineSink{out: out}
	var bars *barSink
	if isTerminal(out) {
		bars = newBarSink(out)
		sink = bars
	}

	summary, err := pipeline.Run(runCtx, pipeline.Options{
		Root:        root,
		Codec:       chanfix.NewCodec(),
		Extensions:  cfg.AllExtensions(),
		HiddenFiles: hidden,
		Reorder:     opts.reorder || cfg.Reorder.Enabled,
		Categories:  cfg.Reorder.Categories,
		Ledger:      store,
		Confirmer:   confirmer,
		Selector:    selector,
		Sink:        sink,
		Logger:      logger,
	})
	if bars != nil {
		bars.finish()
	}
	if err != nil {
		return err
	}

	printSummary(out, summary)
	if len(summary.Errors) > 0 {
		return fmt.Errorf("%d files failed", len(summary.Errors))
	}
	return nil
}

func printSummary(out io.Writer, s pipeline.Summary) {
	rows := [][]string{
		{"Scanned", strconv.Itoa(s.Scanned)},
		{"Already labeled", strconv.Itoa(s.AlreadyLabeled)},
		{"Labeled", strconv.Itoa(s.Labeled)},
		{"Unknown layout", strconv.Itoa(s.Unknown)},
		{"Converted to mono", strconv.Itoa(s.Converted)},
		{"Merged to stereo", strconv.Itoa(s.Merged)},
		{"Archived", strconv.Itoa(s.Archived)},
		{"Hidden archived", strconv.Itoa(s.HiddenArchived)},
		{"Reordered", strconv.Itoa(s.Reordered)},
		{"Errors", strconv.Itoa(len(s.Errors))},
	}

	fmt.Fprintf(out, "\nRun %s on %s\n", s.RunID, s.Root)
	fmt.Fprintln(out, renderTable([]string{"Result", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))

	if len(s.Skipped) > 0 {
		names := make([]string, 0, len(s.Skipped))
		for _, st := range s.Skipped {
			names = append(names, st.String())
		}
		fmt.Fprintf(out, "Skipped stages: %s\n", strings.Join(names, ", "))
	}

	if len(s.Unresolved) > 0 {
		fmt.Fprintln(out, "Unresolved pairs:")
		for _, u := range s.Unresolved {
			fmt.Fprintf(out, "  %v\n", u.Err)
		}
	}

	if len(s.Errors) > 0 {
		fmt.Fprintln(out, "Errors:")
		for _, e := range s.Errors {
			fmt.Fprintf(out, "  %v\n", e)
		}
	}
}

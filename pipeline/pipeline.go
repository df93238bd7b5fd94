// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/ik5/chanfix/classify"
	"github.com/ik5/chanfix/codec"
	"github.com/ik5/chanfix/internal/config"
	"github.com/ik5/chanfix/internal/ledger"
	"github.com/ik5/chanfix/internal/logging"
	"github.com/ik5/chanfix/pairing"
	"github.com/ik5/chanfix/reconstruct"
)

// LockFile is created in the root and locked for the duration of a run. It is
// removed again when the run ends.
const LockFile = ".chanfix.lock"

const lockAttempts = 3

// Stage of a run. Stages only move forward.
type Stage int

const (
	StageHidden Stage = iota
	StageScan
	StageClassify
	StageReconcileDualmono
	StageReconcileLR
	StageReorder
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageHidden:
		return "hidden"
	case StageScan:
		return "scan"
	case StageClassify:
		return "classify"
	case StageReconcileDualmono:
		return "reconcile_dualmono"
	case StageReconcileLR:
		return "reconcile_lr"
	case StageReorder:
		return "reorder"
	case StageDone:
		return "done"
	}
	return "unknown"
}

// Codec is the sample codec plus the capability checks the scan needs.
type Codec interface {
	codec.Codec
	CanRead(path string) bool
	CanWrite(path string) bool
}

// Options of a run. Root, Codec and Confirmer are required.
type Options struct {
	Root  string
	Codec Codec
	// Extensions scanned, with dots. Empty selects the config defaults.
	Extensions []string
	// HiddenFiles is config.HiddenSkip or config.HiddenArchive.
	HiddenFiles string

	Reorder    bool
	Categories []config.Category

	// Ledger journals archive moves when set.
	Ledger *ledger.Store

	Confirmer Confirmer
	// Selector defaults to SelectAll.
	Selector Selector
	Sink     Sink
	Logger   *slog.Logger

	// RunID defaults to a random UUID.
	RunID string
}

// Asset is an audio file seen by the scan.
type Asset struct {
	Path string
	// Layout is the label read from the name, or the classification verdict
	// for files classified in this run.
	Layout classify.Layout
	// Labeled is true when the name carried a tag at scan time.
	Labeled bool
	// Writable is false for analysis-only formats.
	Writable bool
}

// Summary totals a run.
type Summary struct {
	RunID string
	Root  string

	Assets         []Asset
	Scanned        int
	AlreadyLabeled int
	Labeled        int
	Unknown        int
	Converted      int
	Merged         int
	Archived       int
	HiddenArchived int
	Reordered      int

	Unresolved []pairing.Unresolved
	// Skipped lists the stages the confirmer refused.
	Skipped []Stage
	Errors  []*FileError
}

type run struct {
	opts    Options
	root    string
	engine  *reconstruct.Engine
	sink    Sink
	sel     Selector
	log     *slog.Logger
	summary Summary
	exts    map[string]struct{}

	// dualmono files awaiting conversion
	pending []string
}

// Run walks Root through the stages HIDDEN, SCAN, CLASSIFY,
// RECONCILE_DUALMONO, RECONCILE_LR, REORDER and DONE.
//
// A stage the confirmer refuses is skipped; later stages still run. Per-file
// failures are collected in the summary and never stop a stage. Cancelling
// ctx stops the run before the next file and returns ctx.Err(). A second run
// on the same root fails with ErrRootLocked while the first holds it.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Codec == nil {
		return Summary{}, ErrNoCodec
	}
	if opts.Confirmer == nil {
		return Summary{}, ErrNoConfirmer
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Summary{}, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return Summary{}, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("%s: %w", root, ErrNotDir)
	}

	release, err := lockRoot(root)
	if err != nil {
		return Summary{}, err
	}
	defer release()

	r := newRun(ctx, root, opts)
	r.log.Info("run started", "root", root)

	stages := []func(context.Context) error{
		r.hidden,
		r.scan,
		r.classify,
		r.reconcileDualmono,
		r.reconcileLR,
		r.reorder,
	}
	for _, stage := range stages {
		if err := stage(ctx); err != nil {
			return r.summary, err
		}
	}

	r.done()
	return r.summary, nil
}

func newRun(ctx context.Context, root string, opts Options) *run {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	sink := opts.Sink
	if sink == nil {
		sink = nopSink{}
	}
	sel := opts.Selector
	if sel == nil {
		sel = SelectAll{}
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = config.DefaultExtensions()
	}
	extSet := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		extSet[normalizeExt(ext)] = struct{}{}
	}

	base := logging.OrNop(opts.Logger)
	log := base.With(logging.FieldRunID, runID)

	engine := &reconstruct.Engine{
		Codec: opts.Codec,
		Sink:  sink,
		Log:   base,
		RunID: runID,
	}
	if opts.Ledger != nil {
		engine.Ledger = ledgerJournal{ctx: context.WithoutCancel(ctx), store: opts.Ledger}
	}

	return &run{
		opts:    opts,
		root:    root,
		engine:  engine,
		sink:    sink,
		sel:     sel,
		log:     log,
		exts:    extSet,
		summary: Summary{RunID: runID, Root: root},
	}
}

// confirm asks before a stage and records a refusal.
func (r *run) confirm(stage Stage, prompt string) bool {
	if r.opts.Confirmer.Ask(prompt) {
		return true
	}
	r.summary.Skipped = append(r.summary.Skipped, stage)
	r.sink.Log(fmt.Sprintf("skipped %s", stage))
	r.log.Info("stage refused", logging.FieldStage, stage.String())
	return false
}

func (r *run) fail(stage Stage, path string, err error) {
	fe := &FileError{Stage: stage, Path: path, Err: err}
	r.summary.Errors = append(r.summary.Errors, fe)
	r.sink.Log(fmt.Sprintf("error: %s: %v", r.rel(path), err))
	r.log.Warn("file failed", logging.FieldStage, stage.String(), logging.FieldPath, path, logging.Error(err))
}

func (r *run) rel(path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil {
		return rel
	}
	return path
}

func (r *run) done() {
	s := &r.summary
	r.sink.Log(fmt.Sprintf("done: %d scanned, %d labeled, %d converted, %d merged, %d archived, %d errors",
		s.Scanned, s.Labeled, s.Converted, s.Merged, s.Archived, len(s.Errors)))
	r.log.Info("run finished",
		logging.FieldStage, StageDone.String(),
		"scanned", s.Scanned,
		"labeled", s.Labeled,
		"converted", s.Converted,
		"merged", s.Merged,
		"archived", s.Archived,
		"errors", len(s.Errors),
	)
}

type ledgerJournal struct {
	ctx   context.Context
	store *ledger.Store
}

func (j ledgerJournal) Append(rec reconstruct.ArchiveRecord) error {
	_, err := j.store.Append(j.ctx, ledger.Record{
		RunID:  rec.RunID,
		Src:    rec.Src,
		Dst:    rec.Dst,
		Reason: rec.Reason,
		Time:   rec.Time,
	})
	return err
}

// lockRoot takes the lock file of root and returns the function that removes
// and releases it. The file is unlinked while still held, so a run that locked
// the old file in the meantime sees it is stale and tries again.
func lockRoot(root string) (func(), error) {
	path := filepath.Join(root, LockFile)

	for range lockAttempts {
		lock := flock.New(path)
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: %w", root, ErrRootLocked)
		}

		if holdsPath(lock, path) {
			return func() {
				_ = os.Remove(path)
				_ = lock.Unlock()
			}, nil
		}
		_ = lock.Unlock()
	}

	return nil, fmt.Errorf("%s: %w", root, ErrRootLocked)
}

// holdsPath reports whether the locked file is still the one linked at path.
func holdsPath(lock *flock.Flock, path string) bool {
	held, err := lock.Stat()
	if err != nil {
		return false
	}
	linked, err := os.Stat(path)
	return err == nil && os.SameFile(held, linked)
}

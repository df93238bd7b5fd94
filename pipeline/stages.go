// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"context"
	"fmt"

	"github.com/ik5/chanfix/classify"
	"github.com/ik5/chanfix/internal/config"
	"github.com/ik5/chanfix/internal/logging"
	"github.com/ik5/chanfix/label"
	"github.com/ik5/chanfix/pairing"
	"github.com/ik5/chanfix/reconstruct"
)

func (r *run) hidden(ctx context.Context) error {
	if r.opts.HiddenFiles != config.HiddenArchive {
		return nil
	}

	l, err := r.list(StageHidden)
	if err != nil {
		return fmt.Errorf("list hidden files: %w", err)
	}
	if len(l.hidden) == 0 {
		return nil
	}
	if !r.confirm(StageHidden, PromptHidden) {
		return nil
	}

	for i, path := range l.hidden {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.sink.Progress("archiving hidden files", i+1, len(l.hidden))

		if _, err := r.engine.Archive(path, reconstruct.ReasonHidden); err != nil {
			r.fail(StageHidden, path, err)
			continue
		}
		r.summary.HiddenArchived++
		r.summary.Archived++
	}
	return nil
}

func (r *run) scan(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l, err := r.list(StageScan)
	if err != nil {
		return fmt.Errorf("scan %s: %w", r.root, err)
	}

	for _, path := range l.audio {
		layout, labeled := label.Parse(path)
		asset := Asset{
			Path:     path,
			Layout:   layout,
			Labeled:  labeled,
			Writable: r.opts.Codec.CanWrite(path),
		}
		r.summary.Assets = append(r.summary.Assets, asset)
		r.summary.Scanned++

		if !labeled {
			continue
		}
		r.summary.AlreadyLabeled++
		if layout == classify.DualMono && asset.Writable {
			r.pending = append(r.pending, path)
		}
	}

	r.sink.Log(fmt.Sprintf("scanned %d files, %d already labeled", r.summary.Scanned, r.summary.AlreadyLabeled))
	r.log.Info("scan finished",
		logging.FieldStage, StageScan.String(),
		"files", r.summary.Scanned,
		"labeled", r.summary.AlreadyLabeled,
		"pending_dualmono", len(r.pending),
	)
	return nil
}

func (r *run) classify(ctx context.Context) error {
	var todo []int
	for i, a := range r.summary.Assets {
		if !a.Labeled {
			todo = append(todo, i)
		}
	}
	if len(todo) == 0 {
		return nil
	}
	if !r.confirm(StageClassify, PromptIdentify) {
		return nil
	}

	for n, i := range todo {
		if err := ctx.Err(); err != nil {
			return err
		}
		asset := &r.summary.Assets[i]
		r.sink.Progress("identifying", n+1, len(todo))
		r.classifyAsset(asset)
	}
	return nil
}

func (r *run) classifyAsset(asset *Asset) {
	buf, err := r.opts.Codec.Read(asset.Path)
	if err != nil {
		r.fail(StageClassify, asset.Path, err)
		return
	}

	verdict, err := classify.Classify(buf)
	if err != nil {
		r.fail(StageClassify, asset.Path, err)
		return
	}
	asset.Layout = verdict.Layout

	r.log.Debug("classified",
		logging.FieldStage, StageClassify.String(),
		logging.FieldPath, asset.Path,
		logging.FieldLayout, verdict.String(),
	)

	switch verdict.Layout {
	case classify.Unknown:
		r.summary.Unknown++
		r.sink.Log(fmt.Sprintf("skipped %s: %d channels", r.rel(asset.Path), buf.Channels()))
		return

	case classify.SilentChannel:
		if asset.Writable {
			res, err := r.engine.DualmonoToMono(asset.Path)
			if err != nil {
				r.fail(StageClassify, asset.Path, err)
				return
			}
			r.summary.Converted++
			r.summary.Archived += len(res.Archived)
			asset.Path = res.Output
			asset.Layout = classify.Mono
			return
		}
		// a decode-only file cannot be rewritten; record it as degenerate
		verdict.Layout = classify.DualMono
	}

	target, err := r.engine.Label(asset.Path, verdict.Layout)
	if err != nil {
		r.fail(StageClassify, asset.Path, err)
		return
	}
	r.summary.Labeled++
	asset.Path = target

	if verdict.Layout == classify.DualMono && asset.Writable {
		r.pending = append(r.pending, target)
	}
}

func (r *run) reconcileDualmono(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}
	if !r.confirm(StageReconcileDualmono, PromptConvert) {
		return nil
	}

	selected := r.sel.SelectDualmono(r.pending)
	for i, path := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.sink.Progress("converting dualmono", i+1, len(selected))

		res, err := r.engine.DualmonoToMono(path)
		if err != nil {
			r.fail(StageReconcileDualmono, path, err)
			continue
		}
		r.summary.Converted++
		r.summary.Archived += len(res.Archived)
	}
	return nil
}

// PairCandidates narrows paths to the files the L/R stage may merge: those c
// can write back that are not already labeled stereo.
func PairCandidates(c Codec, paths []string) []string {
	var out []string
	for _, path := range paths {
		if !c.CanWrite(path) {
			continue
		}
		if layout, ok := label.Parse(path); ok && layout == classify.Stereo {
			continue
		}
		out = append(out, path)
	}
	return out
}

func (r *run) reconcileLR(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l, err := r.list(StageReconcileLR)
	if err != nil {
		return fmt.Errorf("rescan %s: %w", r.root, err)
	}

	found := pairing.FindPairs(PairCandidates(r.opts.Codec, l.audio))
	r.summary.Unresolved = found.Unresolved
	for _, u := range found.Unresolved {
		r.sink.Log(fmt.Sprintf("unresolved: %v", u.Err))
		r.log.Info("unresolved pair group",
			logging.FieldStage, StageReconcileLR.String(),
			logging.FieldPath, u.Dir,
			"key", u.Key,
			"left", len(u.Left),
			"right", len(u.Right),
		)
	}

	if len(found.Pairs) == 0 {
		return nil
	}
	if !r.confirm(StageReconcileLR, PromptMerge) {
		return nil
	}

	selected := r.sel.SelectPairs(found.Pairs)
	for i, p := range selected {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.sink.Progress("merging L/R", i+1, len(selected))

		res, err := r.engine.LRToStereo(p.Left, p.Right)
		if err != nil {
			r.fail(StageReconcileLR, p.Left, err)
			continue
		}
		r.summary.Merged++
		r.summary.Archived += len(res.Archived)
	}
	return nil
}

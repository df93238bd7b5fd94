// SPDX-License-Identifier: EPL-2.0

package reconstruct

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/chanfix/audio"
	"github.com/ik5/chanfix/classify"
	"github.com/ik5/chanfix/codec"
	"github.com/ik5/chanfix/internal/fsx"
	"github.com/ik5/chanfix/internal/logging"
	"github.com/ik5/chanfix/label"
	"github.com/ik5/chanfix/pairing"
)

// Archive reasons.
const (
	ReasonDualmono      = "dualmono"
	ReasonSilentChannel = "silent channel"
	ReasonPair          = "stereo pair"
	ReasonHidden        = "hidden"
)

// ArchiveRecord describes one original moved into the archive.
type ArchiveRecord struct {
	RunID  string
	Src    string
	Dst    string
	Reason string
	Time   time.Time
}

// Ledger persists archive records.
type Ledger interface {
	Append(rec ArchiveRecord) error
}

// LineSink receives human readable progress lines.
type LineSink interface {
	Log(line string)
}

// Result of a conversion.
type Result struct {
	Output   string
	Archived []ArchiveRecord
	// Verdict of the converted file; for a pair, of the left input.
	Verdict classify.Verdict
}

// Engine converts files in place. Every output is new: an existing file is
// never overwritten and every superseded original goes to the archive folder
// beside it. Ledger, Sink and Log may be nil.
type Engine struct {
	Codec  codec.Codec
	Ledger Ledger
	Sink   LineSink
	Log    *slog.Logger
	RunID  string
}

// DualmonoToMono rewrites a dualmono or silent-channel file as mono.
//
// The output sits next to path with its label tags replaced by " (mono)" and
// keeps sample rate and format tag. The original is archived afterwards; if
// that fails the output is removed and an *ArchiveMoveError returned.
func (e *Engine) DualmonoToMono(path string) (Result, error) {
	if err := checkSource(path); err != nil {
		return Result{}, err
	}

	buf, err := e.Codec.Read(path)
	if err != nil {
		return Result{}, err
	}

	verdict, err := classify.Classify(buf)
	if err != nil {
		return Result{}, withPath(err, path)
	}

	switch verdict.Layout {
	case classify.DualMono, classify.SilentChannel:
	case classify.Mono:
		return Result{}, fmt.Errorf("%s: %w", path, ErrAlreadyMono)
	default:
		return Result{}, fmt.Errorf("%s: %w (%v)", path, ErrNotDualmono, verdict)
	}

	mono, err := audio.ExtractChannel(buf, verdict.ActiveChannel())
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	out := filepath.Join(filepath.Dir(path), label.Apply(path, classify.Mono))
	if err := e.writeNew(out, mono); err != nil {
		return Result{}, err
	}

	reason := ReasonDualmono
	if verdict.Layout == classify.SilentChannel {
		reason = ReasonSilentChannel
	}

	records, err := e.archive(reason, path)
	if err != nil {
		e.discard(out)
		return Result{}, err
	}

	e.report("converted %s -> %s (%v)", filepath.Base(path), filepath.Base(out), verdict)
	e.logger().Info("converted to mono",
		logging.FieldPath, path,
		logging.FieldTarget, out,
		logging.FieldLayout, verdict.String(),
	)

	return Result{Output: out, Archived: records, Verdict: verdict}, nil
}

// LRToStereo merges two mono recordings into one stereo file: left becomes
// channel 0, right channel 1.
//
// A 2-channel input that is dualmono or has a silent channel is reduced to
// mono first; a true stereo input fails with ErrNotMono. The longer input is
// truncated to the shorter one. Sample rate and format come from left. The
// output is named after the common stem of both names followed by "(stereo)".
// Both inputs are archived afterwards, all or nothing.
func (e *Engine) LRToStereo(left, right string) (Result, error) {
	if err := checkSource(left); err != nil {
		return Result{}, err
	}
	if err := checkSource(right); err != nil {
		return Result{}, err
	}
	if filepath.Clean(left) == filepath.Clean(right) {
		return Result{}, fmt.Errorf("%s: %w", left, ErrSameFile)
	}

	lbuf, lverdict, err := e.readMono(left)
	if err != nil {
		return Result{}, err
	}
	rbuf, _, err := e.readMono(right)
	if err != nil {
		return Result{}, err
	}

	if lbuf.SampleRate != rbuf.SampleRate {
		e.report("warning: sample rates differ (%d vs %d), using %d from %s",
			lbuf.SampleRate, rbuf.SampleRate, lbuf.SampleRate, filepath.Base(left))
		e.logger().Warn("sample rate mismatch",
			logging.FieldPath, left,
			"left_rate", lbuf.SampleRate,
			"right_rate", rbuf.SampleRate,
		)
	}
	if lbuf.Format != rbuf.Format {
		e.report("warning: formats differ (%s vs %s), using %s from %s",
			lbuf.Format, rbuf.Format, lbuf.Format, filepath.Base(left))
	}
	if lbuf.Frames() != rbuf.Frames() {
		e.logger().Debug("truncating to shorter input",
			logging.FieldPath, left,
			"left_frames", lbuf.Frames(),
			"right_frames", rbuf.Frames(),
		)
	}

	stereo, err := audio.MergeStereo(lbuf, rbuf)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", left, err)
	}

	name, err := PairOutputName(left, right)
	if err != nil {
		return Result{}, err
	}
	out := filepath.Join(filepath.Dir(left), name)

	if err := e.writeNew(out, stereo); err != nil {
		return Result{}, err
	}

	records, err := e.archive(ReasonPair, left, right)
	if err != nil {
		e.discard(out)
		return Result{}, err
	}

	e.report("merged %s + %s -> %s", filepath.Base(left), filepath.Base(right), filepath.Base(out))
	e.logger().Info("merged stereo pair",
		logging.FieldPath, left,
		"right", right,
		logging.FieldTarget, out,
		"frames", stereo.Frames(),
	)

	return Result{Output: out, Archived: records, Verdict: lverdict}, nil
}

// PairOutputName derives the base name of a merged pair: the common stem of
// both names, label tags removed, followed by "(stereo)" and left's extension.
// Without a common stem the left name's pairing stem is used instead.
func PairOutputName(left, right string) (string, error) {
	lstem, ext := label.SplitExt(left)
	rstem, _ := label.SplitExt(right)

	stem := pairing.CommonStem(label.Strip(lstem), label.Strip(rstem))
	if stem == "" {
		stem = pairing.Stem(left)
	}
	if stem == "" {
		return "", fmt.Errorf("%s + %s: %w", left, right, ErrNoStem)
	}

	return label.PairName(stem, ext), nil
}

// Label renames path in place so its name carries layout's tag and returns
// the new path. It never replaces an existing file and never relabels.
func (e *Engine) Label(path string, layout classify.Layout) (string, error) {
	if err := checkSource(path); err != nil {
		return "", err
	}
	if label.IsLabeled(path) {
		return "", fmt.Errorf("%s: %w", path, ErrAlreadyLabeled)
	}
	if _, ok := label.Tag(layout); !ok {
		return "", fmt.Errorf("%s: %w (%v)", path, ErrNoTag, layout)
	}

	target := filepath.Join(filepath.Dir(path), label.Apply(path, layout))
	if err := fsx.Move(path, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", &RenameCollisionError{Path: target}
		}
		return "", fmt.Errorf("label %s: %w", path, err)
	}

	e.report("labeled %s -> %s", filepath.Base(path), filepath.Base(target))
	e.logger().Debug("labeled", logging.FieldPath, path, logging.FieldTarget, target, logging.FieldLayout, layout.String())

	return target, nil
}

// Archive moves a single file into the archive folder beside it.
func (e *Engine) Archive(path, reason string) (ArchiveRecord, error) {
	if err := checkSource(path); err != nil {
		return ArchiveRecord{}, err
	}
	records, err := e.archive(reason, path)
	if err != nil {
		return ArchiveRecord{}, err
	}
	e.report("archived %s (%s)", filepath.Base(path), reason)
	return records[0], nil
}

func (e *Engine) readMono(path string) (*audio.Buffer, classify.Verdict, error) {
	buf, err := e.Codec.Read(path)
	if err != nil {
		return nil, classify.Verdict{}, err
	}

	verdict, err := classify.Classify(buf)
	if err != nil {
		return nil, classify.Verdict{}, withPath(err, path)
	}

	switch {
	case verdict.Layout == classify.Mono:
		return buf, verdict, nil
	case verdict.Reducible():
		mono, err := audio.ExtractChannel(buf, verdict.ActiveChannel())
		if err != nil {
			return nil, verdict, fmt.Errorf("%s: %w", path, err)
		}
		e.logger().Debug("reduced pair input to mono", logging.FieldPath, path, logging.FieldLayout, verdict.String())
		return mono, verdict, nil
	}

	return nil, verdict, fmt.Errorf("%s: %w (%v)", path, ErrNotMono, verdict)
}

// writeNew writes b to a temp file beside target and moves it into place
// without replacing anything.
func (e *Engine) writeNew(target string, b *audio.Buffer) error {
	if fsx.Exists(target) {
		return &RenameCollisionError{Path: target}
	}

	tmp, err := fsx.CreateTemp(filepath.Dir(target), filepath.Ext(target))
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", target, err)
	}
	tmpName := tmp.Name()
	_ = tmp.Close()

	if err := e.Codec.Write(tmpName, b); err != nil {
		_ = os.Remove(tmpName)
		var fe *audio.FormatError
		if errors.As(err, &fe) {
			return &audio.FormatError{Path: target, Err: fe.Err}
		}
		return err
	}

	if err := fsx.Move(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		if errors.Is(err, fs.ErrExist) {
			return &RenameCollisionError{Path: target}
		}
		return fmt.Errorf("place %s: %w", target, err)
	}

	_ = fsx.SyncDir(filepath.Dir(target))
	return nil
}

// archive moves every src into its archive folder. On failure the files
// moved so far are put back.
func (e *Engine) archive(reason string, srcs ...string) ([]ArchiveRecord, error) {
	records := make([]ArchiveRecord, 0, len(srcs))

	for _, src := range srcs {
		dst, err := moveToArchive(src)
		if err != nil {
			e.restore(records)
			return nil, err
		}
		records = append(records, ArchiveRecord{
			RunID:  e.RunID,
			Src:    src,
			Dst:    dst,
			Reason: reason,
			Time:   time.Now(),
		})
	}

	for _, rec := range records {
		e.logger().Info("archived original", logging.FieldPath, rec.Src, logging.FieldTarget, rec.Dst, "reason", rec.Reason)
		if e.Ledger == nil {
			continue
		}
		if err := e.Ledger.Append(rec); err != nil {
			e.logger().Warn("ledger append failed", logging.FieldPath, rec.Src, logging.Error(err))
		}
	}

	return records, nil
}

// maxArchiveSlots bounds the numbered names tried when the archive already
// holds a file of the same name.
const maxArchiveSlots = 1000

func moveToArchive(src string) (string, error) {
	dst := label.ArchivePath(src)
	if err := fsx.EnsureDir(filepath.Dir(dst)); err != nil {
		return "", &ArchiveMoveError{Src: src, Dst: dst, Err: err}
	}

	stem, ext := label.SplitExt(dst)
	candidate := dst
	for n := 2; ; n++ {
		err := fsx.Move(src, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) || n > maxArchiveSlots {
			return "", &ArchiveMoveError{Src: src, Dst: candidate, Err: err}
		}
		candidate = filepath.Join(filepath.Dir(dst), fmt.Sprintf("%s.%d%s", stem, n, ext))
	}
}

func (e *Engine) restore(records []ArchiveRecord) {
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if err := fsx.Move(rec.Dst, rec.Src); err != nil {
			e.logger().Error("restore from archive failed", logging.FieldPath, rec.Dst, logging.FieldTarget, rec.Src, logging.Error(err))
		}
	}
}

func (e *Engine) discard(out string) {
	if err := os.Remove(out); err != nil {
		e.logger().Error("remove output failed", logging.FieldPath, out, logging.Error(err))
	}
}

func (e *Engine) report(format string, args ...any) {
	if e.Sink != nil {
		e.Sink.Log(fmt.Sprintf(format, args...))
	}
}

func (e *Engine) logger() *slog.Logger {
	return logging.OrNop(e.Log).With(logging.FieldRunID, e.RunID)
}

func checkSource(path string) error {
	if label.InArchive(path) {
		return fmt.Errorf("%s: %w", path, ErrArchived)
	}
	if _, err := os.Lstat(path); err != nil {
		return &audio.FormatError{Path: path, Err: err}
	}
	return nil
}

func withPath(err error, path string) error {
	var fe *audio.FormatError
	if errors.As(err, &fe) && fe.Path == "" {
		return &audio.FormatError{Path: path, Err: fe.Err}
	}
	return err
}

// SPDX-License-Identifier: EPL-2.0

package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "ledger.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndByRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)

	moved := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	recs := []Record{
		{RunID: "run-a", Src: "/s/Guitar (dualmono).wav", Dst: "/s/-- OBSOLETE FILES/Guitar (dualmono).wav", Reason: "dualmono", Time: moved},
		{RunID: "run-b", Src: "/s/Vox_left.wav", Dst: "/s/-- OBSOLETE FILES/Vox_left.wav", Reason: "pair", Time: moved.Add(time.Minute)},
		{RunID: "run-a", Src: "/s/Bass.wav", Dst: "/s/-- OBSOLETE FILES/Bass.wav", Reason: "silent channel", Time: moved.Add(time.Second)},
	}
	for _, rec := range recs {
		got, err := s.Append(ctx, rec)
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if got.ID == 0 {
			t.Error("Append() did not assign an id")
		}
	}

	got, err := s.ByRun(ctx, "run-a")
	if err != nil {
		t.Fatalf("ByRun() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ByRun() = %d records, want 2", len(got))
	}
	if got[0].Src != recs[0].Src || got[1].Src != recs[2].Src {
		t.Errorf("ByRun() order = %q, %q", got[0].Src, got[1].Src)
	}
	if !got[0].Time.Equal(moved) {
		t.Errorf("ByRun() time = %v, want %v", got[0].Time, moved)
	}
	if got[0].Reason != "dualmono" || got[0].Dst != recs[0].Dst {
		t.Errorf("ByRun() record = %+v", got[0])
	}
}

func TestAppend_DefaultsTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)

	before := time.Now().Add(-time.Second)
	got, err := s.Append(ctx, Record{RunID: "r", Src: "a", Dst: "b", Reason: "x"})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if got.Time.Before(before) {
		t.Errorf("Append() time = %v, want now", got.Time)
	}
}

func TestRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, runID := range []string{"old", "old", "new"} {
		rec := Record{RunID: runID, Src: "src", Dst: "dst", Reason: "r", Time: base.Add(time.Duration(i) * time.Hour)}
		if _, err := s.Append(ctx, rec); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Runs() = %d, want 2", len(runs))
	}
	if runs[0].ID != "new" || runs[0].Moves != 1 {
		t.Errorf("Runs()[0] = %+v, want new with 1 move", runs[0])
	}
	if runs[1].ID != "old" || runs[1].Moves != 2 || !runs[1].Started.Equal(base) {
		t.Errorf("Runs()[1] = %+v, want old with 2 moves started %v", runs[1], base)
	}

	limited, err := s.Runs(ctx, 1)
	if err != nil {
		t.Fatalf("Runs(1) error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Runs(1) = %d, want 1", len(limited))
	}
}

func TestBySource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t)

	for _, src := range []string{"a.wav", "b.wav", "a.wav"} {
		if _, err := s.Append(ctx, Record{RunID: "r", Src: src, Dst: "x", Reason: "r"}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := s.BySource(ctx, "a.wav")
	if err != nil {
		t.Fatalf("BySource() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("BySource() = %d, want 2", len(got))
	}
}

func TestOpen_Reopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.Append(ctx, Record{RunID: "r", Src: "a", Dst: "b", Reason: "x"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	got, err := s.ByRun(ctx, "r")
	if err != nil || len(got) != 1 {
		t.Errorf("ByRun() after reopen = %v, %v, want 1 record", got, err)
	}
}

func TestOpen_SchemaMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := s.db.ExecContext(ctx, "UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	_ = s.Close()

	if _, err := Open(ctx, path); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("Open() error = %v, want ErrSchemaMismatch", err)
	}
}

func TestClose_Nil(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil store = %v, want nil", err)
	}
}

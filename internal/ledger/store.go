// SPDX-License-Identifier: EPL-2.0

package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Fixed width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record is one archive move.
type Record struct {
	ID     int64
	RunID  string
	Src    string
	Dst    string
	Reason string
	Time   time.Time
}

// Run summarizes the records of one run.
type Run struct {
	ID      string
	Started time.Time
	Moves   int
}

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path, creating its
// parent directory.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path of the database file.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append stores rec. A zero Time is replaced with the current time.
func (s *Store) Append(ctx context.Context, rec Record) (Record, error) {
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	rec.Time = rec.Time.UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO archive_records (run_id, src, dst, reason, moved_at) VALUES (?, ?, ?, ?, ?)`,
		rec.RunID, rec.Src, rec.Dst, rec.Reason, rec.Time.Format(timeLayout),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Record{}, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id

	return rec, nil
}

// ByRun lists the records of one run in insertion order.
func (s *Store) ByRun(ctx context.Context, runID string) ([]Record, error) {
	return s.query(ctx,
		`SELECT id, run_id, src, dst, reason, moved_at FROM archive_records WHERE run_id = ? ORDER BY id`,
		runID)
}

// BySource lists every move of the file that used to live at src.
func (s *Store) BySource(ctx context.Context, src string) ([]Record, error) {
	return s.query(ctx,
		`SELECT id, run_id, src, dst, reason, moved_at FROM archive_records WHERE src = ? ORDER BY id`,
		src)
}

// Runs lists the most recent runs first, at most limit of them. A limit of
// zero or less lists all runs.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, MIN(moved_at), COUNT(1) FROM archive_records
         GROUP BY run_id ORDER BY MIN(moved_at) DESC, MIN(id) DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			started string
		)
		if err := rows.Scan(&run.ID, &started, &run.Moves); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.Started, err = parseTime(started); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec   Record
			moved string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Src, &rec.Dst, &rec.Reason, &moved); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if rec.Time, err = parseTime(moved); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

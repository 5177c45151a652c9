// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history persists a log of completed transform runs in SQLite.
//
// Each encipher/decipher run is recorded with its resolved options, the
// reduced shifts actually applied, and the character count, so past runs can
// be listed and inspected (`shiftciph history`). The store is best-effort:
// a failure to record never fails the transform itself.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a run id does not exist in the store.
var ErrNotFound = errors.New("run not found")

// ErrAmbiguous is returned when an id prefix matches more than one run.
var ErrAmbiguous = errors.New("run id prefix is ambiguous")

// =============================================================================
// TYPES
// =============================================================================

// Run is one recorded transform run.
type Run struct {
	ID             string    `json:"id"`
	Mode           string    `json:"mode"`
	InputPath      string    `json:"input_path"`
	OutputPath     string    `json:"output_path"`
	ShiftAmount    int       `json:"shift_amount"`
	LetterShift    int       `json:"letter_shift"`
	DigitShift     int       `json:"digit_shift"`
	PunctShift     int       `json:"punct_shift"`
	IncludeDigits  bool      `json:"include_digits"`
	IncludePuncts  bool      `json:"include_puncts"`
	CharsProcessed int64     `json:"chars_processed"`
	DurationMs     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}

// Stats summarizes the store contents.
type Stats struct {
	TotalRuns      int       `json:"total_runs"`
	EncipherRuns   int       `json:"encipher_runs"`
	DecipherRuns   int       `json:"decipher_runs"`
	CharsProcessed int64     `json:"chars_processed"`
	FirstRun       time.Time `json:"first_run,omitempty"`
	LastRun        time.Time `json:"last_run,omitempty"`
}

// Store is the SQLite-backed run log.
type Store struct {
	db         *sql.DB
	maxEntries int
}

// =============================================================================
// OPEN / CLOSE
// =============================================================================

// Open opens (creating if needed) the run log at path. maxEntries bounds the
// number of retained runs; older runs are pruned on insert.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("maxEntries must be at least 1, got %d", maxEntries)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite supports one writer at a time; keep the pool at a single conn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &Store{db: db, maxEntries: maxEntries}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id              TEXT PRIMARY KEY,
			mode            TEXT NOT NULL,
			input_path      TEXT NOT NULL,
			output_path     TEXT NOT NULL,
			shift_amount    INTEGER NOT NULL,
			letter_shift    INTEGER NOT NULL,
			digit_shift     INTEGER NOT NULL,
			punct_shift     INTEGER NOT NULL,
			include_digits  INTEGER NOT NULL,
			include_puncts  INTEGER NOT NULL,
			chars_processed INTEGER NOT NULL,
			duration_ms     INTEGER NOT NULL,
			created_at      TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`)
	return err
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Record inserts a run, assigning an id and timestamp if absent, then prunes
// runs beyond the retention limit.
func (s *Store) Record(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (
			id, mode, input_path, output_path,
			shift_amount, letter_shift, digit_shift, punct_shift,
			include_digits, include_puncts, chars_processed, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.InputPath, run.OutputPath,
		run.ShiftAmount, run.LetterShift, run.DigitShift, run.PunctShift,
		run.IncludeDigits, run.IncludePuncts, run.CharsProcessed, run.DurationMs, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	// Retention: drop everything but the newest maxEntries rows.
	_, err = s.db.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, id LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]Run, error) {
	if limit < 1 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, mode, input_path, output_path,
		       shift_amount, letter_shift, digit_shift, punct_shift,
		       include_digits, include_puncts, chars_processed, duration_ms, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.Mode, &r.InputPath, &r.OutputPath,
			&r.ShiftAmount, &r.LetterShift, &r.DigitShift, &r.PunctShift,
			&r.IncludeDigits, &r.IncludePuncts, &r.CharsProcessed, &r.DurationMs, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns a single run by id. The id may be abbreviated to a unique
// prefix; a prefix matching more than one run returns ErrAmbiguous.
func (s *Store) Get(id string) (*Run, error) {
	rows, err := s.db.Query(`
		SELECT id, mode, input_path, output_path,
		       shift_amount, letter_shift, digit_shift, punct_shift,
		       include_digits, include_puncts, chars_processed, duration_ms, created_at
		FROM runs WHERE id = ? OR id LIKE ? || '%'
		LIMIT 2`, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.Mode, &r.InputPath, &r.OutputPath,
			&r.ShiftAmount, &r.LetterShift, &r.DigitShift, &r.PunctShift,
			&r.IncludeDigits, &r.IncludePuncts, &r.CharsProcessed, &r.DurationMs, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to get run: %w", err)
		}
		matches = append(matches, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &matches[0], nil
	default:
		// An exact id that is also a prefix of another id still wins.
		for i := range matches {
			if matches[i].ID == id {
				return &matches[i], nil
			}
		}
		return nil, ErrAmbiguous
	}
}

// Stats summarizes all recorded runs.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}

	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN mode = 'encipher' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN mode = 'decipher' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(chars_processed), 0)
		FROM runs`)
	if err := row.Scan(&st.TotalRuns, &st.EncipherRuns, &st.DecipherRuns, &st.CharsProcessed); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if st.TotalRuns > 0 {
		// Select the raw column so the driver keeps the TIMESTAMP decltype;
		// MIN()/MAX() expressions come back untyped.
		row = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at ASC LIMIT 1`)
		if err := row.Scan(&st.FirstRun); err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
		row = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`)
		if err := row.Scan(&st.LastRun); err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}
	return st, nil
}

// Clear removes all recorded runs.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM runs`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bernie-sg/riley-cycles-watch/scan"
)

// SQLite persists runs and peaks to a SQLite database.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLite opens (or creates) the database and runs migrations.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while a scan is being recorded.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set WAL mode: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at  INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			window      INTEGER,
			min_period  INTEGER,
			max_period  INTEGER,
			step_days   INTEGER,
			max_offsets INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS peaks (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id   INTEGER NOT NULL REFERENCES runs(id),
			offset   INTEGER NOT NULL,
			rank     INTEGER NOT NULL,
			period   INTEGER NOT NULL,
			power    REAL NOT NULL,
			tier     TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_peaks_run ON peaks(run_id, offset)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

// RecordRun implements Recorder.
func (s *SQLite) RecordRun(symbol string, cfg scan.Config, results []scan.WindowResult) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (created_at, symbol, window, min_period, max_period, step_days, max_offsets)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		time.Now().Unix(), symbol, cfg.Window, cfg.MinPeriod, cfg.MaxPeriod, cfg.StepDays, cfg.MaxOffsets,
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO peaks (run_id, offset, rank, period, power, tier) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for _, wr := range results {
		for rank, p := range wr.Peaks {
			if _, err := stmt.Exec(runID, wr.Offset, rank+1, p.Period, p.Power, p.Tier.String()); err != nil {
				return 0, fmt.Errorf("store: insert peak: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}

	return runID, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }

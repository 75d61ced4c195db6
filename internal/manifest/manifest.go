// Package manifest persists one record per conversion run in a SQLite
// database: identifiers, direction, the config snapshot, timings, and
// the outcome. The HTTP and CLI front ends record runs here and read
// them back for listing.
package manifest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dgallion1/slidegest/internal/config"
)

// Run statuses.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Directions.
const (
	DirectionConvert = "convert"
	DirectionReverse = "reverse"
)

// ErrNotFound is returned when no run exists with the requested id.
var ErrNotFound = errors.New("run not found")

// Run is one conversion run's manifest record.
type Run struct {
	RunID     string        `json:"run_id"`
	SessionID string        `json:"session_id"`
	Direction string        `json:"direction"`
	Input     string        `json:"input,omitempty"`
	Config    config.Config `json:"config"`

	Status     string    `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`

	Slides   int    `json:"slides,omitempty"`
	Warnings int    `json:"warnings,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Store manages the run manifest SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the manifest database at path, creating the
// schema if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating manifest schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	stmt := `CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		direction TEXT NOT NULL,
		input TEXT,
		config TEXT NOT NULL,
		status TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		slides INTEGER DEFAULT 0,
		warnings INTEGER DEFAULT 0,
		error TEXT
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session_id)`); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Begin records a new run in the running state.
func (s *Store) Begin(run Run) error {
	cfgJSON, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("encoding run config: %w", err)
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (run_id, session_id, direction, input, config, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.SessionID, run.Direction, run.Input,
		string(cfgJSON), StatusRunning, run.StartedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.RunID, err)
	}
	return nil
}

// Complete marks a run successful with its output counts.
func (s *Store) Complete(runID string, slides, warnings int) error {
	return s.finish(runID, StatusSuccess, slides, warnings, "")
}

// Fail marks a run failed with the terminal error.
func (s *Store) Fail(runID string, runErr error) error {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	return s.finish(runID, StatusFailed, 0, 0, msg)
}

func (s *Store) finish(runID, status string, slides, warnings int, errMsg string) error {
	res, err := s.db.Exec(
		`UPDATE runs SET status = ?, finished_at = ?, slides = ?, warnings = ?, error = ?
		 WHERE run_id = ?`,
		status, time.Now().UTC().Format(time.RFC3339Nano), slides, warnings, errMsg, runID,
	)
	if err != nil {
		return fmt.Errorf("updating run %s: %w", runID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT run_id, session_id, direction, input, config, status,
		        started_at, finished_at, slides, warnings, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                   Run
			cfgJSON             string
			started             string
			finished, errMsg    sql.NullString
		)
		if err := rows.Scan(&r.RunID, &r.SessionID, &r.Direction, &r.Input, &cfgJSON,
			&r.Status, &started, &finished, &r.Slides, &r.Warnings, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal([]byte(cfgJSON), &r.Config); err != nil {
			return nil, fmt.Errorf("decoding config for run %s: %w", r.RunID, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
			r.StartedAt = t
		}
		if finished.Valid && finished.String != "" {
			if t, err := time.Parse(time.RFC3339Nano, finished.String); err == nil {
				r.FinishedAt = t
			}
		}
		r.Error = errMsg.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns a single run by id.
func (s *Store) Get(runID string) (Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, session_id, direction, input, config, status,
		        started_at, finished_at, slides, warnings, error
		 FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return Run{}, fmt.Errorf("querying run %s: %w", runID, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return Run{}, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}

	var (
		r                Run
		cfgJSON, started string
		finished, errMsg sql.NullString
	)
	if err := rows.Scan(&r.RunID, &r.SessionID, &r.Direction, &r.Input, &cfgJSON,
		&r.Status, &started, &finished, &r.Slides, &r.Warnings, &errMsg); err != nil {
		return Run{}, fmt.Errorf("scanning run %s: %w", runID, err)
	}
	if err := json.Unmarshal([]byte(cfgJSON), &r.Config); err != nil {
		return Run{}, fmt.Errorf("decoding config for run %s: %w", runID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, started); err == nil {
		r.StartedAt = t
	}
	if finished.Valid && finished.String != "" {
		if t, err := time.Parse(time.RFC3339Nano, finished.String); err == nil {
			r.FinishedAt = t
		}
	}
	r.Error = errMsg.String
	return r, rows.Err()
}

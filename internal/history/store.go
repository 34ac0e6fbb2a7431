// Package history persists completed search runs in a DuckDB database
// for the history command and the web UI index.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"deepsearch/internal/event"

	_ "github.com/duckdb/duckdb-go/v2"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL used for initializing databases.
func SchemaDDL() string {
	return schemaDDL
}

// Run is one completed search run.
type Run struct {
	SessionID   string
	Subject     string
	Model       string
	ReportFile  string
	ReportFound bool
	Answer      string
	StartedAt   time.Time
	FinishedAt  time.Time
	EventCount  int
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history: db path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// EnsureSchema applies the schema DDL to the provided connection.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("history: db is nil")
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run and its ordered event log.
func (s *Store) RecordRun(ctx context.Context, run Run, events []event.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (session_id, subject, model, report_file, report_found, answer, started_at, finished_at, event_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.SessionID, run.Subject, run.Model, run.ReportFile, run.ReportFound,
		run.Answer, run.StartedAt, run.FinishedAt, len(events),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for seq, ev := range events {
		payload, err := PayloadJSON(ev.Data)
		if err != nil {
			return fmt.Errorf("encode event %d payload: %w", seq, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_events (session_id, seq, name, payload, emitted_at) VALUES (?, ?, ?, ?, ?)`,
			run.SessionID, seq, ev.Name, payload, ev.At,
		); err != nil {
			return fmt.Errorf("insert event %d: %w", seq, err)
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, subject, model, report_file, report_found, answer, started_at, finished_at, event_count
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.SessionID, &run.Subject, &run.Model, &run.ReportFile, &run.ReportFound,
			&run.Answer, &run.StartedAt, &run.FinishedAt, &run.EventCount,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"romdat/internal/stage"
)

// Store persists journal entries backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one applied operation.
type Entry struct {
	ID         int64     `json:"id"`
	RunID      string    `json:"run_id"`
	Console    string    `json:"console"`
	Stage      string    `json:"stage"`
	From       string    `json:"from"`
	To         string    `json:"to,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
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
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// RecordReport appends every applied entry of report in one transaction.
func (s *Store) RecordReport(ctx context.Context, runID, console string, report *stage.Report) (int, error) {
	if report == nil || len(report.Applied) == 0 {
		return 0, nil
	}
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin journal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO operations (run_id, console, stage, from_path, to_path, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare journal insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range report.Applied {
		if _, err := stmt.ExecContext(ctx, runID, console, report.Stage, entry.From, nullableString(entry.To), timestamp); err != nil {
			return 0, fmt.Errorf("insert journal entry: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit journal: %w", err)
	}
	return len(report.Applied), nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, console, stage, from_path, to_path, recorded_at
         FROM operations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			to       sql.NullString
			recorded string
		)
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.Console, &entry.Stage, &entry.From, &to, &recorded); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.To = to.String
		if ts, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
			entry.RecordedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

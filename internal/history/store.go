package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Statuses recorded for one processed source.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Record is the outcome of one source file within one run.
type Record struct {
	ID           int64
	RunID        string
	Source       string
	Ladder       string
	TrackCount   int
	ManifestPath string
	Status       string
	ErrorDetail  string
	CreatedAt    time.Time
}

// Store persists run outcomes in SQLite. Append-only: the pipeline inserts,
// the history command reads, nothing ever updates a row.
type Store struct {
	db   *sql.DB
	path string
}

// DBName is the history database file name inside the log directory.
const DBName = "history.db"

// Open initializes or connects to the history database inside logDir.
func Open(logDir string) (*Store, error) {
	dbPath := filepath.Join(logDir, DBName)
	db, err := sql.Open("sqlite", dbPath)
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

	store := &Store{db: db, path: dbPath}
	if err := store.ensureSchema(context.Background()); err != nil {
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

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS run_results (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id        TEXT NOT NULL,
    source        TEXT NOT NULL,
    ladder        TEXT NOT NULL,
    track_count   INTEGER NOT NULL,
    manifest_path TEXT,
    status        TEXT NOT NULL,
    error_detail  TEXT,
    created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_run_results_created_at ON run_results(created_at);
`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Append records the outcome of one source.
func (s *Store) Append(ctx context.Context, record Record) error {
	timestamp := record.CreatedAt
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_results (run_id, source, ladder, track_count, manifest_path, status, error_detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID,
		record.Source,
		record.Ladder,
		record.TrackCount,
		record.ManifestPath,
		record.Status,
		record.ErrorDetail,
		timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run result: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, source, ladder, track_count, manifest_path, status, error_detail, created_at
         FROM run_results ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query run results: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var createdAt string
		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.Source,
			&record.Ladder,
			&record.TrackCount,
			&record.ManifestPath,
			&record.Status,
			&record.ErrorDetail,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan run result: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(createdAt)); err == nil {
			record.CreatedAt = parsed
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run results: %w", err)
	}
	return records, nil
}

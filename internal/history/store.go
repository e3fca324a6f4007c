package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// FileStatus is the recorded outcome for one file within a run.
type FileStatus string

const (
	StatusSucceeded FileStatus = "succeeded"
	StatusFailed    FileStatus = "failed"
)

// FileResult is one file's outcome within a run.
type FileResult struct {
	Path    string
	Status  FileStatus
	Error   string
	Elapsed time.Duration
}

// Run is one complete driver invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	InputPath  string
	Model      string
	Language   string
	Files      []FileResult
}

// Succeeded counts files that completed.
func (r Run) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == StatusSucceeded {
			n++
		}
	}
	return n
}

// Failed counts files that did not complete.
func (r Run) Failed() int {
	return len(r.Files) - r.Succeeded()
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    input_path TEXT NOT NULL,
    model TEXT NOT NULL,
    language TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS run_files (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    path TEXT NOT NULL,
    status TEXT NOT NULL,
    error TEXT NOT NULL DEFAULT '',
    elapsed_ms INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the history database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:   db,
		lock: flock.New(path + ".lock"),
		path: path,
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun persists a completed run and its per-file results. A missing run
// ID is assigned. The sidecar lock serializes concurrent writers.
func (s *Store) RecordRun(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	if err := s.lock.Lock(); err != nil {
		return "", fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() {
		_ = s.lock.Unlock()
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin history tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, finished_at, input_path, model, language)
         VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.InputPath,
		run.Model,
		run.Language,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, file := range run.Files {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO run_files (run_id, position, path, status, error, elapsed_ms)
             VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID,
			i,
			file.Path,
			string(file.Status),
			file.Error,
			file.Elapsed.Milliseconds(),
		)
		if err != nil {
			return "", fmt.Errorf("insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit history tx: %w", err)
	}
	return run.ID, nil
}

// Recent returns up to limit runs, newest first, with their file results.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, input_path, model, language
         FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.InputPath, &run.Model, &run.Language); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	for i := range runs {
		files, err := s.runFiles(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

func (s *Store) runFiles(ctx context.Context, runID string) ([]FileResult, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT path, status, error, elapsed_ms
         FROM run_files WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []FileResult
	for rows.Next() {
		var file FileResult
		var status string
		var elapsedMS int64
		if err := rows.Scan(&file.Path, &status, &file.Error, &elapsedMS); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		file.Status = FileStatus(status)
		file.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		files = append(files, file)
	}
	return files, rows.Err()
}

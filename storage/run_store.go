package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// RunStore records ingest runs in a local SQLite database. It is an audit
// trail only: the aggregation engine always reads the CSVs fresh and never
// consults this store.
type RunStore struct {
	db *sql.DB
}

// Run is one completed ingest: which export was merged and with what effect.
type Run struct {
	ID         int64
	StartedAt  time.Time
	SourceFile string
	RowsRead   int
	RowsAdded  int
	RowsUpdate int
}

func OpenRunStore(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &RunStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

func (s *RunStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS ingest_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	source_file TEXT NOT NULL,
	rows_read INTEGER NOT NULL,
	rows_added INTEGER NOT NULL,
	rows_updated INTEGER NOT NULL
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// RecordRun appends one run to the audit trail and returns its id.
func (s *RunStore) RecordRun(run Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO ingest_runs (started_at, source_file, rows_read, rows_added, rows_updated) VALUES (?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339),
		run.SourceFile,
		run.RowsRead,
		run.RowsAdded,
		run.RowsUpdate,
	)
	if err != nil {
		return 0, fmt.Errorf("insert ingest run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read ingest run id: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, source_file, rows_read, rows_added, rows_updated
		 FROM ingest_runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query ingest runs: %w", err)
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		var (
			run     Run
			started string
		)
		if err := rows.Scan(&run.ID, &started, &run.SourceFile, &run.RowsRead, &run.RowsAdded, &run.RowsUpdate); err != nil {
			return nil, fmt.Errorf("scan ingest run: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, started)
		if err != nil {
			return nil, fmt.Errorf("parse ingest run timestamp: %w", err)
		}
		run.StartedAt = parsed
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingest runs: %w", err)
	}
	return out, nil
}

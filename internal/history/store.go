// Copyright 2025 Reposnap, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package history persists a record of past fetch runs. Each run notes the
// username, how many records and requests it took, whether it succeeded,
// and where the output went. The store exists for auditing and for the
// history command; fetches never depend on it, so callers treat failures
// here as warnings.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one recorded fetch, successful or not.
type Run struct {
	ID         string
	Username   string
	Records    int
	Requests   int
	Status     string
	Error      string
	OutputPath string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store persists runs to SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the given path, creating
// parent directories as needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	// Set pragmas via DSN so every connection in the pool gets them.
	// database/sql pools connections; a PRAGMA run via db.Exec only
	// applies to one connection.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// SQLite supports only one writer at a time. Limit the pool so
	// goroutines queue at the Go level instead of fighting over the lock.
	db.SetMaxOpenConns(4)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			username    TEXT NOT NULL,
			records     INTEGER NOT NULL DEFAULT 0,
			requests    INTEGER NOT NULL DEFAULT 0,
			status      TEXT NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			output_path TEXT NOT NULL DEFAULT '',
			started_at  TEXT NOT NULL,
			finished_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`)
	return err
}

// RecordRun inserts one run. A missing ID gets a fresh UUID; timestamps are
// stored as RFC3339 UTC text so lexicographic order is chronological order.
func (s *Store) RecordRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, username, records, requests, status, error, output_path, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Username, run.Records, run.Requests,
		run.Status, run.Error, run.OutputPath,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// selects 20.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, username, records, requests, status, error, output_path, started_at, finished_at
		FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	var startedAt, finishedAt string

	err := rows.Scan(&run.ID, &run.Username, &run.Records, &run.Requests,
		&run.Status, &run.Error, &run.OutputPath, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	run.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	run.FinishedAt, _ = time.Parse(time.RFC3339, finishedAt)
	return &run, nil
}

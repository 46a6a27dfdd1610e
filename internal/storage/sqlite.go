package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS results (
			path TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL,
			issue_count INTEGER NOT NULL,
			patch TEXT,
			updated_at TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_results_hash ON results(content_hash);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the cached result for path if it was produced from the same
// content hash, nil otherwise.
func (s *SQLiteStore) Get(ctx context.Context, path, contentHash string) (*FileResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, content_hash, issue_count, patch, updated_at
		FROM results WHERE path = ? AND content_hash = ?
	`, path, contentHash)

	var res FileResult
	var updatedAt sql.NullTime
	err := row.Scan(&res.Path, &res.ContentHash, &res.IssueCount, &res.Patch, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query result for %s: %w", path, err)
	}
	if updatedAt.Valid {
		res.UpdatedAt = updatedAt.Time
	}
	return &res, nil
}

// Put upserts the result for a file, stamping it with the current time.
func (s *SQLiteStore) Put(ctx context.Context, res *FileResult) error {
	if res.UpdatedAt.IsZero() {
		res.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (path, content_hash, issue_count, patch, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			content_hash=excluded.content_hash,
			issue_count=excluded.issue_count,
			patch=excluded.patch,
			updated_at=excluded.updated_at
	`, res.Path, res.ContentHash, res.IssueCount, res.Patch, res.UpdatedAt)
	return err
}

// Forget drops any cached result for a path.
func (s *SQLiteStore) Forget(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE path = ?`, path)
	return err
}

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// FileResult is the cached outcome of mending one file.
type FileResult struct {
	Path        string
	ContentHash string
	IssueCount  int
	Patch       string
	UpdatedAt   time.Time
}

// ResultStore persists per-file mend results so unchanged files can be
// skipped on re-runs.
type ResultStore interface {
	// Get returns the cached result for the file at its current content
	// hash, or nil on a cache miss.
	Get(ctx context.Context, path, contentHash string) (*FileResult, error)

	// Put upserts the result for a file.
	Put(ctx context.Context, res *FileResult) error

	// Forget drops any cached result for a path.
	Forget(ctx context.Context, path string) error

	Close() error
}

// HashContent produces the content hash used as a cache key.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

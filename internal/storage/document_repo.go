// Package storage persists the document registry: which files have been
// synced and indexed, with their content hash and chunk count. The registry
// is bookkeeping for operators; the vector collection remains the source of
// truth for search.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// DocumentRecord is one indexed document in the registry.
type DocumentRecord struct {
	ID         string
	Filename   string
	Source     string
	Hash       string // SHA256 hex of the raw content
	ChunkCount int
	IndexedAt  time.Time
}

// DocumentStore defines the registry operations used by the indexing
// orchestrator and the listing endpoint.
type DocumentStore interface {
	// Upsert inserts or replaces the record identified by (filename, source).
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// DeleteAll clears the registry. Used by overwrite reindexing.
	DeleteAll(ctx context.Context) error
	// ListAll returns every record, most recently indexed first.
	ListAll(ctx context.Context) ([]DocumentRecord, error)
}

// DocumentRepo implements DocumentStore on SQLite.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Upsert inserts or replaces the record identified by (filename, source).
// The doc.ID must be set before calling.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, source, hash, chunk_count, indexed_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (filename, source) DO UPDATE SET
		   hash = excluded.hash,
		   chunk_count = excluded.chunk_count,
		   indexed_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.Filename, doc.Source, doc.Hash, doc.ChunkCount,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// DeleteAll clears the registry.
func (r *DocumentRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	return nil
}

// ListAll returns every record, most recently indexed first.
func (r *DocumentRepo) ListAll(ctx context.Context) ([]DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, filename, source, hash, chunk_count, indexed_at FROM documents ORDER BY indexed_at DESC, filename",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []DocumentRecord
	for rows.Next() {
		var doc DocumentRecord
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Source, &doc.Hash, &doc.ChunkCount, &doc.IndexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

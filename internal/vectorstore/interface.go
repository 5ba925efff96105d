package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_store.go -package=mocks dealbrief-ai/internal/vectorstore Store

import "context"

// Collection is the one named collection this subsystem owns. There is no
// per-tenant partitioning; isolation, if needed, is layered on by callers.
const Collection = "drive_docs"

// Row is one stored unit: a chunk of document text, its provenance, and its
// embedding vector.
type Row struct {
	Text     string
	Filename string
	Source   string
	Vector   []float32
}

// Hit is a search result, most similar first.
type Hit struct {
	Text     string
	Filename string
	Source   string
	Score    float32
}

// Store defines the vector storage operations over the single collection.
type Store interface {
	// Open prepares the collection for use. With overwrite set, an existing
	// collection is dropped and recreated empty; either way the collection
	// exists afterwards.
	Open(ctx context.Context, overwrite bool) error

	// Append inserts rows without touching existing data. It never
	// deduplicates.
	Append(ctx context.Context, rows []Row) error

	// Search returns up to topK rows ordered by decreasing similarity to
	// the query vector.
	Search(ctx context.Context, query []float32, topK int) ([]Hit, error)

	// Exists reports whether the collection has been created.
	Exists(ctx context.Context) (bool, error)

	// Count returns the number of stored rows.
	Count(ctx context.Context) (int, error)
}

// Package docindex turns raw document text into searchable chunks and
// answers semantic queries over them. It is the retrieval core behind the
// document sync and search endpoints.
//
// The public surface never returns an error: every internal failure is
// logged and mapped to the documented empty or zero result, so retrieval
// stays a best-effort enhancement for its callers.
package docindex

import (
	"context"
	"errors"
	"log/slog"

	"dealbrief-ai/internal/storage"
	"dealbrief-ai/internal/vectorstore"
)

// DefaultTopK is the number of passages returned by Search when the caller
// does not ask for a specific count.
const DefaultTopK = 6

// Internal failure kinds. They never cross the package boundary; the
// exported methods map them to empty/zero results. Tests assert on them via
// the unexported entry points.
var (
	ErrMissingAPIKey = errors.New("missing api key")
	ErrEmptyQuery    = errors.New("empty query")
	ErrNoEmbedding   = errors.New("no embedding returned for query")
)

// Document is one ingested file: its display name, its origin label, and
// its raw extracted text (not yet segmented).
type Document struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Content  string `json:"content"`
}

// Result reports what an indexing run did: how many documents were
// processed and how many chunk rows were stored.
type Result struct {
	Indexed int `json:"indexed"`
	Chunks  int `json:"chunks"`
}

// Passage is one ranked search result with its provenance. The similarity
// score is deliberately dropped; callers get ranked order only.
type Passage struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
	Source   string `json:"source"`
}

// Embedder converts batches of texts into fixed-length vectors, one per
// input, in input order.
type Embedder interface {
	EmbedTexts(ctx context.Context, apiKey string, texts []string) ([][]float32, error)
}

// Service drives chunking, embedding, vector storage, and search.
type Service struct {
	embedder   Embedder
	store      vectorstore.Store
	registry   storage.DocumentStore
	vectorSize int
	logger     *slog.Logger
}

// New creates a Service. registry may be nil; the document registry is
// bookkeeping only and the vector collection stays the source of truth.
func New(embedder Embedder, store vectorstore.Store, registry storage.DocumentStore, vectorSize int) *Service {
	return &Service{
		embedder:   embedder,
		store:      store,
		registry:   registry,
		vectorSize: vectorSize,
		logger:     slog.Default(),
	}
}

package docindex

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"

	"dealbrief-ai/internal/chunker"
	"dealbrief-ai/internal/storage"
	"dealbrief-ai/internal/vectorstore"
)

// IndexDocuments chunks, embeds, and stores the given documents. With
// overwrite set, the whole collection is replaced; otherwise rows are
// appended to whatever is already indexed (repeated appends of the same
// document duplicate its rows).
//
// Indexing is best-effort: any failure is logged and reported as a zero
// Result, never raised. Callers inspect the counts to detect a no-op run.
func (s *Service) IndexDocuments(ctx context.Context, docs []Document, apiKey string, overwrite bool) Result {
	result, err := s.indexDocuments(ctx, docs, apiKey, overwrite)
	if err != nil {
		s.logger.ErrorContext(ctx, "indexing failed", "documents", len(docs), "error", err)
		return Result{}
	}
	return result
}

func (s *Service) indexDocuments(ctx context.Context, docs []Document, apiKey string, overwrite bool) (Result, error) {
	if apiKey == "" {
		return Result{}, ErrMissingAPIKey
	}
	if len(docs) == 0 {
		return Result{}, nil
	}

	// Flatten every document into chunk-row candidates, carrying the
	// owning document's provenance onto each row.
	var candidates []vectorstore.Row
	chunksPerDoc := make([]int, len(docs))
	for i, doc := range docs {
		pieces := chunker.Chunk(doc.Content, chunker.DefaultChunkSize, chunker.DefaultOverlap)
		chunksPerDoc[i] = len(pieces)
		for _, text := range pieces {
			candidates = append(candidates, vectorstore.Row{
				Text:     text,
				Filename: doc.Filename,
				Source:   doc.Source,
			})
		}
	}

	// All documents chunked to nothing: they are processed, but there is
	// nothing to store. Distinct from failure.
	if len(candidates) == 0 {
		return Result{Indexed: len(docs), Chunks: 0}, nil
	}

	texts := make([]string, len(candidates))
	for i, row := range candidates {
		texts[i] = row.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, apiKey, texts)
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed chunks: %w", err)
	}

	// The embedding contract is one vector per text; a short response is
	// degraded with zero vectors rather than failing the whole run.
	if len(vectors) < len(candidates) {
		s.logger.WarnContext(ctx, "embedding returned fewer vectors than texts",
			"texts", len(candidates), "vectors", len(vectors))
	}
	for i := range candidates {
		if i < len(vectors) && len(vectors[i]) > 0 {
			candidates[i].Vector = vectors[i]
		} else {
			candidates[i].Vector = make([]float32, s.vectorSize)
		}
	}

	if err := s.store.Open(ctx, overwrite); err != nil {
		return Result{}, fmt.Errorf("failed to open collection: %w", err)
	}
	if err := s.store.Append(ctx, candidates); err != nil {
		return Result{}, fmt.Errorf("failed to append rows: %w", err)
	}

	s.recordDocuments(ctx, docs, chunksPerDoc, overwrite)

	s.logger.InfoContext(ctx, "indexed documents", "documents", len(docs), "chunks", len(candidates), "overwrite", overwrite)
	return Result{Indexed: len(docs), Chunks: len(candidates)}, nil
}

// recordDocuments updates the registry. Registry failures are logged and
// swallowed; the vector collection already holds the rows.
func (s *Service) recordDocuments(ctx context.Context, docs []Document, chunksPerDoc []int, overwrite bool) {
	if s.registry == nil {
		return
	}

	if overwrite {
		if err := s.registry.DeleteAll(ctx); err != nil {
			s.logger.WarnContext(ctx, "failed to clear document registry", "error", err)
			return
		}
	}

	for i, doc := range docs {
		hash := sha256.Sum256([]byte(doc.Content))
		record := &storage.DocumentRecord{
			ID:         uuid.New().String(),
			Filename:   doc.Filename,
			Source:     doc.Source,
			Hash:       fmt.Sprintf("%x", hash),
			ChunkCount: chunksPerDoc[i],
		}
		if err := s.registry.Upsert(ctx, record); err != nil {
			s.logger.WarnContext(ctx, "failed to record document", "filename", doc.Filename, "error", err)
		}
	}
}

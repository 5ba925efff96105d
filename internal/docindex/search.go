package docindex

import (
	"context"
	"fmt"
	"strings"
)

// Search embeds the query and returns the topK most similar passages with
// their provenance. An absent API key, an empty query, an empty index, or
// any internal failure all yield an empty result; search never raises.
func (s *Service) Search(ctx context.Context, query, apiKey string, topK int) []Passage {
	passages, err := s.search(ctx, query, apiKey, topK)
	if err != nil {
		s.logger.ErrorContext(ctx, "search failed", "error", err)
		return []Passage{}
	}
	return passages
}

func (s *Service) search(ctx context.Context, query, apiKey string, topK int) ([]Passage, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	// Nothing has ever been indexed: a normal, non-error condition.
	exists, err := s.store.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if !exists {
		return []Passage{}, nil
	}

	vectors, err := s.embedder.EmbedTexts(ctx, apiKey, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		// Unlike indexing, search does not degrade to a zero vector.
		return nil, ErrNoEmbedding
	}

	hits, err := s.store.Search(ctx, vectors[0], topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search collection: %w", err)
	}

	passages := make([]Passage, 0, len(hits))
	for _, hit := range hits {
		passages = append(passages, Passage{
			Text:     hit.Text,
			Filename: hit.Filename,
			Source:   hit.Source,
		})
	}
	return passages, nil
}

// HasIndexedDocuments reports whether anything has been indexed, without
// performing a search. Errors are treated as "nothing indexed".
func (s *Service) HasIndexedDocuments(ctx context.Context) bool {
	exists, err := s.store.Exists(ctx)
	if err != nil || !exists {
		if err != nil {
			s.logger.WarnContext(ctx, "failed to check collection", "error", err)
		}
		return false
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to count rows", "error", err)
		return false
	}
	return count > 0
}

// CountIndexedRows returns the number of stored rows, zero on any failure.
func (s *Service) CountIndexedRows(ctx context.Context) int {
	exists, err := s.store.Exists(ctx)
	if err != nil || !exists {
		return 0
	}
	count, err := s.store.Count(ctx)
	if err != nil {
		return 0
	}
	return count
}

// Package memory provides an in-memory Store backed by brute-force cosine
// similarity. It mirrors the Qdrant adapter's semantics (overwrite drops
// everything, append never deduplicates) and backs the tests.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"dealbrief-ai/internal/vectorstore"
)

// Store is an in-memory vectorstore.Store.
type Store struct {
	mu      sync.RWMutex
	created bool
	rows    []vectorstore.Row

	// FailWith, when set, is returned by every operation. Lets tests
	// exercise the degraded paths.
	FailWith error
}

// New creates an empty in-memory store. The collection does not exist until
// the first Open.
func New() *Store { return &Store{} }

func (s *Store) Open(_ context.Context, overwrite bool) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if overwrite {
		s.rows = nil
	}
	s.created = true
	return nil
}

func (s *Store) Append(_ context.Context, rows []vectorstore.Row) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.created {
		return fmt.Errorf("collection does not exist")
	}
	s.rows = append(s.rows, rows...)
	return nil
}

func (s *Store) Search(_ context.Context, query []float32, topK int) ([]vectorstore.Hit, error) {
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.created {
		return nil, fmt.Errorf("collection does not exist")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be greater than 0")
	}

	hits := make([]vectorstore.Hit, 0, len(s.rows))
	for _, row := range s.rows {
		hits = append(hits, vectorstore.Hit{
			Text:     row.Text,
			Filename: row.Filename,
			Source:   row.Source,
			Score:    cosine(query, row.Vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (s *Store) Exists(_ context.Context) (bool, error) {
	if s.FailWith != nil {
		return false, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.created, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.created {
		return 0, fmt.Errorf("collection does not exist")
	}
	return len(s.rows), nil
}

// Rows returns a copy of the stored rows, for assertions.
func (s *Store) Rows() []vectorstore.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]vectorstore.Row, len(s.rows))
	copy(out, s.rows)
	return out
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

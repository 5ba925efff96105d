package docindex

import (
	"context"
	"hash/fnv"
	"strings"

	"dealbrief-ai/internal/storage"
)

const testVectorSize = 64

// stubEmbedder produces deterministic bag-of-words vectors so similar texts
// land near each other under cosine similarity. shortBy trims the tail of
// the result to exercise the degraded short-response path.
type stubEmbedder struct {
	calls   [][]string
	err     error
	shortBy int
}

func (e *stubEmbedder) EmbedTexts(_ context.Context, _ string, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.calls = append(e.calls, texts)

	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, testVectorSize)
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?%")
			if word == "" {
				continue
			}
			h := fnv.New32a()
			_, _ = h.Write([]byte(word))
			vec[h.Sum32()%testVectorSize]++
		}
		out[i] = vec
	}

	if e.shortBy > 0 && len(out) > e.shortBy {
		out = out[:len(out)-e.shortBy]
	}
	return out, nil
}

// fakeRegistry is an in-memory storage.DocumentStore.
type fakeRegistry struct {
	records []storage.DocumentRecord
	cleared int
	err     error
}

func (f *fakeRegistry) Upsert(_ context.Context, doc *storage.DocumentRecord) error {
	if f.err != nil {
		return f.err
	}
	for i, existing := range f.records {
		if existing.Filename == doc.Filename && existing.Source == doc.Source {
			f.records[i] = *doc
			return nil
		}
	}
	f.records = append(f.records, *doc)
	return nil
}

func (f *fakeRegistry) DeleteAll(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.cleared++
	f.records = nil
	return nil
}

func (f *fakeRegistry) ListAll(context.Context) ([]storage.DocumentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]storage.DocumentRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"dealbrief-ai/internal/contextutil"
)

// QdrantStore implements Store using Qdrant. Indexing and search both use
// cosine distance, matching the metric the embeddings are produced for.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	vectorSize int
}

// NewQdrantStore creates a new Qdrant-backed store for the drive_docs
// collection. urlStr should be in the format "http://host:port"
// (e.g., "http://localhost:6333"); the gRPC port is derived from the HTTP
// port.
func NewQdrantStore(urlStr string, vectorSize int) (*QdrantStore, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	// Default gRPC port; otherwise HTTP port + 1.
	port := 6334
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client:     client,
		collection: Collection,
		vectorSize: vectorSize,
	}, nil
}

// Open prepares the collection. With overwrite, an existing collection is
// dropped first; the collection is then created if absent. Qdrant takes a
// declared schema, so creation needs no seed data.
func (s *QdrantStore) Open(ctx context.Context, overwrite bool) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if overwrite && exists {
		if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
			return fmt.Errorf("failed to drop collection: %w", err)
		}
		logger.InfoContext(ctx, "dropped collection for overwrite", "collection", s.collection)
		exists = false
	}

	if !exists {
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(s.vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		logger.InfoContext(ctx, "collection created", "collection", s.collection, "vector_size", s.vectorSize)
	}

	return nil
}

// Append inserts rows as new points. Each call generates fresh point IDs, so
// repeated appends of the same content produce duplicate rows.
func (s *QdrantStore) Append(ctx context.Context, rows []Row) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(rows) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(rows))
	for _, row := range rows {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(row.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"text":     row.Text,
				"filename": row.Filename,
				"source":   row.Source,
			}),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to append rows", "collection", s.collection, "count", len(rows), "error", err)
		return fmt.Errorf("failed to append rows: %w", err)
	}

	logger.InfoContext(ctx, "appended rows", "collection", s.collection, "count", len(rows))
	return nil
}

// Search performs a nearest-neighbor query limited to topK results.
func (s *QdrantStore) Search(ctx context.Context, query []float32, topK int) ([]Hit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if topK <= 0 {
		return nil, fmt.Errorf("topK must be greater than 0")
	}

	limit := uint64(topK)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search", "collection", s.collection, "top_k", topK, "error", err)
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]Hit, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		hit := Hit{Score: point.Score}
		if point.Payload != nil {
			hit.Text = payloadString(point.Payload, "text")
			hit.Filename = payloadString(point.Payload, "filename")
			hit.Source = payloadString(point.Payload, "source")
		}
		hits = append(hits, hit)
	}

	logger.InfoContext(ctx, "search completed", "collection", s.collection, "top_k", topK, "results", len(hits))
	return hits, nil
}

// Exists reports whether the collection has been created.
func (s *QdrantStore) Exists(ctx context.Context) (bool, error) {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return false, fmt.Errorf("failed to check collection existence: %w", err)
	}
	return exists, nil
}

// Count returns the number of stored rows.
func (s *QdrantStore) Count(ctx context.Context) (int, error) {
	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return 0, fmt.Errorf("failed to get collection info: %w", err)
	}

	if info.PointsCount == nil {
		return 0, nil
	}
	return int(*info.PointsCount), nil
}

// payloadString extracts a string field from a Qdrant payload.
func payloadString(payload map[string]*qdrant.Value, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.Kind.(*qdrant.Value_StringValue); ok {
		return s.StringValue
	}
	return ""
}

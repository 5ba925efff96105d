package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	// EmbeddingModel is the fixed embedding model identifier.
	EmbeddingModel = "text-embedding-3-small"
	// VectorSize is the dimensionality produced by EmbeddingModel.
	VectorSize = 1536
	// embedBatchSize caps the number of inputs per provider request.
	embedBatchSize = 100
)

// EmbeddingsClient is a client for an OpenAI-compatible embeddings API.
// The API key is supplied per call rather than at construction: callers own
// the key, and an absent key short-circuits above this layer.
type EmbeddingsClient struct {
	BaseURL string
	Model   string
	client  *http.Client
}

// NewEmbeddingsClient creates a new embeddings client against baseURL.
func NewEmbeddingsClient(baseURL string) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL: baseURL,
		Model:   EmbeddingModel,
		client:  http.DefaultClient,
	}
}

// EmbeddingsRequest represents the request payload for the embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbedTexts generates embeddings for the given texts, one vector per input
// in input order. Inputs are sent in batches of at most 100 texts and the
// batch results concatenated. A zero-length input is a no-op. Any failed
// batch aborts the whole call.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, apiKey string, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := c.embedBatch(ctx, apiKey, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch starting at %d: %w", start, err)
		}
		out = append(out, vecs...)
	}

	return out, nil
}

func (c *EmbeddingsClient) embedBatch(ctx context.Context, apiKey string, texts []string) ([][]float32, error) {
	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	payload := EmbeddingsRequest{
		Model: c.Model,
		Input: texts,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embeddingsResp EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := make([][]float32, len(embeddingsResp.Data))
	for i, data := range embeddingsResp.Data {
		if len(data.Embedding) != VectorSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), VectorSize)
		}

		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[i] = vec
	}

	return result, nil
}

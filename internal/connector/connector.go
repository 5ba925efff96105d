// Package connector is the client for the managed Drive connector service,
// which mirrors files from cloud storage and exposes their extracted text.
package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dealbrief-ai/internal/docindex"
)

// Client fetches synced files from the connector service.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new connector client against baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FileEntry is one synced file as reported by the connector.
type FileEntry struct {
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Content  string `json:"content"`
}

// FilesResponse is the connector's file listing payload.
type FilesResponse struct {
	Files []FileEntry `json:"files"`
}

// Fetch returns every synced file with its content. The connector handles
// per-file download timeouts itself and reports a file that timed out with
// empty content, so one slow file never fails the whole listing.
func (c *Client) Fetch(ctx context.Context) ([]docindex.Document, error) {
	url := c.BaseURL + "/api/files"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connector request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("connector returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload FilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode connector response: %w", err)
	}

	docs := make([]docindex.Document, 0, len(payload.Files))
	for _, f := range payload.Files {
		docs = append(docs, docindex.Document{
			Filename: f.Filename,
			Source:   f.Source,
			Content:  f.Content,
		})
	}
	return docs, nil
}

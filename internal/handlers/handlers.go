// Package handlers contains the HTTP handlers for the document
// indexing/search API. Handlers are the subsystem boundary: the services
// below them never raise, so handlers mostly shape requests and responses.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"dealbrief-ai/internal/docindex"
)

// DocumentIndex is the indexing/search surface consumed by the handlers.
// Implemented by *docindex.Service.
type DocumentIndex interface {
	IndexDocuments(ctx context.Context, docs []docindex.Document, apiKey string, overwrite bool) docindex.Result
	Search(ctx context.Context, query, apiKey string, topK int) []docindex.Passage
	HasIndexedDocuments(ctx context.Context) bool
	CountIndexedRows(ctx context.Context) int
}

// DocumentSource yields the files to index from the external connector
// service. Implementations handle their own per-file download timeouts and
// report a file that timed out as having no content rather than failing the
// whole fetch.
type DocumentSource interface {
	Fetch(ctx context.Context) ([]docindex.Document, error)
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

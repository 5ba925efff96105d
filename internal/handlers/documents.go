package handlers

import (
	"net/http"
	"time"

	"dealbrief-ai/internal/contextutil"
	"dealbrief-ai/internal/storage"
)

// DocumentsHandler lists the registry of indexed documents.
type DocumentsHandler struct {
	registry storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(registry storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{registry: registry}
}

// DocumentEntry is one registry row in the listing response.
type DocumentEntry struct {
	Filename   string    `json:"filename"`
	Source     string    `json:"source"`
	ChunkCount int       `json:"chunk_count"`
	IndexedAt  time.Time `json:"indexed_at"`
}

// DocumentsResponse represents the registry listing.
type DocumentsResponse struct {
	Documents []DocumentEntry `json:"documents"`
}

// ServeHTTP handles GET listing requests.
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	records, err := h.registry.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	entries := make([]DocumentEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, DocumentEntry{
			Filename:   rec.Filename,
			Source:     rec.Source,
			ChunkCount: rec.ChunkCount,
			IndexedAt:  rec.IndexedAt,
		})
	}

	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: entries})
}

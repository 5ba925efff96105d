package handlers

import (
	"context"
	"net/http"
	"time"

	"dealbrief-ai/internal/contextutil"
	"dealbrief-ai/internal/docindex"
	"dealbrief-ai/internal/extract"
)

// SyncHandler pulls documents from the external file source and feeds them
// to the indexing orchestrator. The whole run happens within one request
// under an overall time budget; the caller awaits the counts.
type SyncHandler struct {
	source  DocumentSource
	index   DocumentIndex
	apiKey  string
	timeout time.Duration
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(source DocumentSource, index DocumentIndex, apiKey string, timeout time.Duration) *SyncHandler {
	return &SyncHandler{
		source:  source,
		index:   index,
		apiKey:  apiKey,
		timeout: timeout,
	}
}

// SyncResponse reports what a sync run indexed.
type SyncResponse struct {
	Indexed int `json:"indexed"`
	Chunks  int `json:"chunks"`
}

// ServeHTTP handles POST requests to trigger a sync. The overwrite query
// parameter defaults to true: a sync is a full reindex unless the caller
// asks for an append.
func (h *SyncHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.apiKey == "" {
		logger.WarnContext(ctx, "sync requested without embedding API key configured")
		writeError(w, http.StatusServiceUnavailable, "Embedding API key not configured")
		return
	}

	overwrite := true
	switch r.URL.Query().Get("overwrite") {
	case "false", "0":
		overwrite = false
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	docs, err := h.source.Fetch(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to fetch documents", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to fetch documents from source")
		return
	}

	docs = extractText(docs)

	logger.InfoContext(ctx, "sync started", "documents", len(docs), "overwrite", overwrite)
	result := h.index.IndexDocuments(ctx, docs, h.apiKey, overwrite)

	writeJSON(w, http.StatusOK, SyncResponse{
		Indexed: result.Indexed,
		Chunks:  result.Chunks,
	})
}

// extractText converts markup content to plain text where the filename
// indicates a markdown file.
func extractText(docs []docindex.Document) []docindex.Document {
	out := make([]docindex.Document, len(docs))
	for i, doc := range docs {
		if extract.IsMarkdown(doc.Filename) {
			doc.Content = extract.MarkdownText([]byte(doc.Content))
		}
		out[i] = doc
	}
	return out
}

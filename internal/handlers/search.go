package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"dealbrief-ai/internal/contextutil"
	"dealbrief-ai/internal/docindex"
)

const maxTopK = 20

// SearchHandler answers semantic queries over the indexed documents.
type SearchHandler struct {
	index  DocumentIndex
	apiKey string
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(index DocumentIndex, apiKey string) *SearchHandler {
	return &SearchHandler{
		index:  index,
		apiKey: apiKey,
	}
}

// SearchRequest represents the search request payload.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

// SearchResponse represents the ranked passages for a query.
type SearchResponse struct {
	Results []docindex.Passage `json:"results"`
}

// ServeHTTP handles POST search requests. A missing or overlong top_k falls
// back to the service default; an empty index or unconfigured API key yields
// an empty result set, not an error.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	if req.TopK < 0 {
		req.TopK = 0
	}
	if req.TopK > maxTopK {
		req.TopK = maxTopK
	}

	results := h.index.Search(ctx, req.Query, h.apiKey, req.TopK)
	if results == nil {
		results = []docindex.Passage{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

package handlers

import (
	"net/http"

	"dealbrief-ai/internal/contextutil"
)

// StatusHandler answers "has anything been indexed" without searching.
type StatusHandler struct {
	index DocumentIndex
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(index DocumentIndex) *StatusHandler {
	return &StatusHandler{index: index}
}

// StatusResponse reports the state of the document index.
type StatusResponse struct {
	Indexed bool `json:"indexed"`
	Rows    int  `json:"rows"`
}

// ServeHTTP handles GET status requests.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		Indexed: h.index.HasIndexedDocuments(ctx),
		Rows:    h.index.CountIndexedRows(ctx),
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"dealbrief-ai/internal/contextutil"
)

// Enhancer rewrites draft text via a single language-model round trip.
// Implemented by *llm.Client.
type Enhancer interface {
	Enhance(ctx context.Context, apiKey, text, instructions string) (string, error)
}

// EnhanceHandler improves user-submitted text fields.
type EnhanceHandler struct {
	enhancer Enhancer
	apiKey   string
}

// NewEnhanceHandler creates a new EnhanceHandler.
func NewEnhanceHandler(enhancer Enhancer, apiKey string) *EnhanceHandler {
	return &EnhanceHandler{
		enhancer: enhancer,
		apiKey:   apiKey,
	}
}

// EnhanceRequest represents the enhance request payload.
type EnhanceRequest struct {
	Text         string `json:"text"`
	Instructions string `json:"instructions,omitempty"`
}

// EnhanceResponse carries the rewritten text.
type EnhanceResponse struct {
	Text string `json:"text"`
}

// ServeHTTP handles POST enhance requests.
func (h *EnhanceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.apiKey == "" {
		writeError(w, http.StatusServiceUnavailable, "LLM API key not configured")
		return
	}

	var req EnhanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	enhanced, err := h.enhancer.Enhance(ctx, h.apiKey, req.Text, req.Instructions)
	if err != nil {
		logger.ErrorContext(ctx, "enhance failed", "error", err)
		writeError(w, http.StatusBadGateway, "Enhancement service error")
		return
	}

	writeJSON(w, http.StatusOK, EnhanceResponse{Text: enhanced})
}

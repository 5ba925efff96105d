package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealbrief-ai/internal/vectorstore/memory"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		storeErr   error
		wantStatus int
		wantState  string
	}{
		{
			name:       "healthy with empty index",
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name:       "store unreachable",
			storeErr:   errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.New()
			store.FailWith = tt.storeErr
			handler := NewHealthHandler(store)

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.wantState {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantState)
			}
			if resp.Checks["vector_store"] == "" {
				t.Error("vector_store check missing from response")
			}
		})
	}
}

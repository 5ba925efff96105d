package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Enhance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 {
			t.Errorf("expected system + user messages, got %d", len(req.Messages))
		}
		if !strings.Contains(req.Messages[1].Content, "shorter") {
			t.Errorf("instructions missing from prompt: %q", req.Messages[1].Content)
		}

		resp := ChatResponse{
			Choices: []ChatChoice{
				{Message: ChatMessage{Role: "assistant", Content: "  Improved text.  "}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "gpt-4o-mini")
	got, err := client.Enhance(context.Background(), "test-key", "draft text", "make it shorter")
	if err != nil {
		t.Fatalf("Enhance() unexpected error: %v", err)
	}
	if got != "Improved text." {
		t.Errorf("Enhance() = %q, want trimmed %q", got, "Improved text.")
	}
}

func TestClient_Enhance_Errors(t *testing.T) {
	tests := []struct {
		name       string
		serverResp func(w http.ResponseWriter, r *http.Request)
	}{
		{
			name: "server error",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "no choices",
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(ChatResponse{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewClient(server.URL, "gpt-4o-mini")
			if _, err := client.Enhance(context.Background(), "test-key", "text", ""); err == nil {
				t.Error("Enhance() expected error, got nil")
			}
		})
	}
}

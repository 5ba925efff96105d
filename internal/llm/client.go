// Package llm holds the clients for the external language-model provider:
// the embeddings API used by the document index and the chat completions
// API used to enhance user-submitted text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const enhanceSystemPrompt = "You improve draft text for investment-analysis documents. " +
	"Rewrite the user's text to be clear, professional, and concise. " +
	"Keep all facts and figures unchanged. Return only the rewritten text."

// Client is a client for an OpenAI-compatible chat completions API.
type Client struct {
	BaseURL string
	Model   string
	client  *http.Client
}

// NewClient creates a new chat completions client.
func NewClient(baseURL, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// Enhance sends text through a single prompt/response round trip and returns
// the rewritten version. Optional instructions are appended to the prompt.
func (c *Client) Enhance(ctx context.Context, apiKey, text, instructions string) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	prompt := text
	if instructions != "" {
		prompt = fmt.Sprintf("%s\n\nAdditional instructions: %s", text, instructions)
	}

	payload := ChatRequest{
		Model: c.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: enhanceSystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

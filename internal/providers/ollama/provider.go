// internal/providers/ollama/provider.go
// Package ollama provides a ChatProvider backed by Ollama-compatible HTTP endpoints.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/logging"
	"github.com/localmind/localmind/internal/providers"
)

// Provider implements providers.ChatProvider using the Ollama /api/chat endpoint.
type Provider struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
}

// New constructs a Provider for the configured chat model and request timeout.
func New(cfg *appconfig.Config) *Provider {
	timeout := cfg.RequestTimeout()
	return &Provider{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL: cfg.OllamaURL,
		model:   cfg.ChatModel,
		timeout: timeout,
	}
}

var _ providers.ChatProvider = (*Provider)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Generate sends the prompt as a single user message and returns the full,
// non-streamed completion text.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":    p.model,
		"messages": []chatMessage{{Role: "user", Content: prompt}},
		"stream":   false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}
	logging.LogRequest("MIND->LLM", p.baseURL, p.model, body)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", providers.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read chat response: %v", providers.ErrServiceUnavailable, err)
	}
	logging.LogRequest("LLM->MIND", p.baseURL, p.model, raw)

	if resp.StatusCode != http.StatusOK {
		return "", providers.ClassifyStatus(resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("parse chat response: %w", err)
	}
	if parsed.Message.Content == "" {
		return "", fmt.Errorf("%w: chat response contained no content", providers.ErrServiceUnavailable)
	}
	return parsed.Message.Content, nil
}

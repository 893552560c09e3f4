package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/logging"
	"github.com/localmind/localmind/internal/providers"
)

// EmbeddingClient requests embedding vectors from the configured embedding
// model over the Ollama /api/embed endpoint.
type EmbeddingClient struct {
	client    *http.Client
	baseURL   string
	model     string
	batchSize int
	timeout   time.Duration
}

// NewEmbeddingClient constructs a client bound to the configured embedding model.
func NewEmbeddingClient(cfg *appconfig.Config) *EmbeddingClient {
	timeout := cfg.RequestTimeout()
	return &EmbeddingClient{
		client:    &http.Client{Timeout: timeout},
		baseURL:   cfg.OllamaURL,
		model:     cfg.EmbeddingModel,
		batchSize: cfg.BatchSize(),
		timeout:   timeout,
	}
}

var _ Embedder = (*EmbeddingClient)(nil)

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// Embed returns one vector per input text, in input order. Inputs beyond the
// configured batch cap are split across successive requests.
func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if strings.TrimSpace(c.model) == "" {
		return nil, fmt.Errorf("embedding model is empty")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (c *EmbeddingClient) embedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	payload := map[string]any{
		"model": c.model,
		"input": texts,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logging.LogRequest("MIND->EMBED", c.baseURL, c.model, body)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read embedding response: %v", providers.ErrServiceUnavailable, err)
	}

	logging.LogRequest("EMBED->MIND", c.baseURL, c.model, raw)

	if resp.StatusCode != http.StatusOK {
		return nil, providers.ClassifyStatus(resp.StatusCode, raw)
	}

	var parsed embedResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse embedding response: %w", err)
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding response returned %d vectors for %d inputs", len(parsed.Embeddings), len(texts))
	}
	for i, v := range parsed.Embeddings {
		if len(v) == 0 {
			return nil, fmt.Errorf("embedding response returned empty vector at index %d", i)
		}
	}
	return parsed.Embeddings, nil
}

// Package qdrant is a minimal REST client for a local Qdrant instance.
// Collections are created with cosine distance, so query scores come back
// as similarities (higher is more similar).
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/localmind/localmind/internal/logging"
	"github.com/localmind/localmind/internal/vectorstore"
)

// Storage talks to one Qdrant collection over HTTP.
type Storage struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

// Config carries connection details for the Qdrant store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewStorage returns a Storage bound to cfg.Collection.
func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

var _ vectorstore.Store = (*Storage)(nil)

// EnsureCollection creates the collection when absent. An existing collection
// is left untouched, whatever its schema; embedding-model compatibility across
// ingestion and query is the operator's invariant, not checked here.
func (s *Storage) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	status, err := s.do(ctx, http.MethodGet, s.collectionURL(""), nil, nil)
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("qdrant GET collection %s returned status %d", s.collection, status)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	status, err = s.do(ctx, http.MethodPut, s.collectionURL(""), body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant create collection %s returned status %d", s.collection, status)
	}
	logging.LogEvent("[QDRANT] created collection %s (dim=%d, distance=cosine)", s.collection, dimension)
	return nil
}

// Upsert writes points with payload {source, chunk_index, text}. Point ids are
// supplied by the caller and deterministic, so re-ingesting a file overwrites
// its previous points instead of duplicating them.
func (s *Storage) Upsert(ctx context.Context, records []vectorstore.Record) error {
	if len(records) == 0 {
		return nil
	}
	points := make([]map[string]any, len(records))
	for i, r := range records {
		points[i] = map[string]any{
			"id":     r.ID,
			"vector": r.Vector,
			"payload": map[string]any{
				"source":      r.Source,
				"chunk_index": r.ChunkIndex,
				"text":        r.Text,
			},
		}
	}
	body := map[string]any{"points": points}
	status, err := s.do(ctx, http.MethodPut, s.collectionURL("/points?wait=true"), body, nil)
	if err != nil {
		return err
	}
	if status >= 300 {
		return fmt.Errorf("qdrant upsert into %s returned status %d", s.collection, status)
	}
	return nil
}

// Query returns up to topK scored records. A missing collection is an empty
// store, not an error.
func (s *Storage) Query(ctx context.Context, vector []float64, topK int) ([]vectorstore.ScoredRecord, error) {
	if topK <= 0 {
		return nil, nil
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	status, err := s.do(ctx, http.MethodPost, s.collectionURL("/points/search"), req, &resp)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status >= 300 {
		return nil, fmt.Errorf("qdrant search in %s returned status %d", s.collection, status)
	}
	results := make([]vectorstore.ScoredRecord, 0, len(resp.Result))
	for _, r := range resp.Result {
		rec := vectorstore.Record{ID: fmt.Sprintf("%v", r.ID)}
		if v, ok := r.Payload["source"].(string); ok {
			rec.Source = v
		}
		if v, ok := r.Payload["chunk_index"].(float64); ok {
			rec.ChunkIndex = int(v)
		}
		if v, ok := r.Payload["text"].(string); ok {
			rec.Text = v
		}
		results = append(results, vectorstore.ScoredRecord{Record: rec, Score: r.Score})
	}
	return results, nil
}

// Count reports the exact number of points in the collection; a missing
// collection counts as zero.
func (s *Storage) Count(ctx context.Context) (int, error) {
	req := map[string]any{"exact": true}
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	status, err := s.do(ctx, http.MethodPost, s.collectionURL("/points/count"), req, &resp)
	if err != nil {
		return 0, err
	}
	if status == http.StatusNotFound {
		return 0, nil
	}
	if status >= 300 {
		return 0, fmt.Errorf("qdrant count in %s returned status %d", s.collection, status)
	}
	return resp.Result.Count, nil
}

// Drop removes the collection. Dropping a collection that does not exist is
// not an error.
func (s *Storage) Drop(ctx context.Context) error {
	status, err := s.do(ctx, http.MethodDelete, s.collectionURL(""), nil, nil)
	if err != nil {
		return err
	}
	if status >= 300 && status != http.StatusNotFound {
		return fmt.Errorf("qdrant drop collection %s returned status %d", s.collection, status)
	}
	return nil
}

func (s *Storage) collectionURL(suffix string) string {
	return fmt.Sprintf("%s/collections/%s%s", s.url, s.collection, suffix)
}

// do issues one JSON request and decodes the response into out when provided.
// The HTTP status is returned so callers can treat 404 as an empty collection.
func (s *Storage) do(ctx context.Context, method, url string, body any, out any) (int, error) {
	var reader io.Reader
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal qdrant request: %w", err)
		}
		payload = data
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("create qdrant request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	logging.LogRequest("MIND->QDRANT", fmt.Sprintf("%s %s", method, url), "", payload)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("qdrant %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read qdrant response: %w", err)
	}
	logging.LogRequest("QDRANT->MIND", fmt.Sprintf("%d %s", resp.StatusCode, url), "", raw)

	if out != nil && resp.StatusCode < 300 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode qdrant response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

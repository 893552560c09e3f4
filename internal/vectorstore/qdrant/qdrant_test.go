package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func newTestStorage(url, apiKey string) *Storage {
	return NewStorage(Config{
		URL:        url,
		APIKey:     apiKey,
		Collection: "test_docs",
		Timeout:    5 * time.Second,
	})
}

func TestDoLogsBothDirections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{"count": 3}})
	}))
	defer srv.Close()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	count, err := newTestStorage(srv.URL, "").Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}

	out := buf.String()
	if !strings.Contains(out, "[MIND->QDRANT]") {
		t.Fatalf("expected request log line, got: %s", out)
	}
	if !strings.Contains(out, "[QDRANT->MIND]") {
		t.Fatalf("expected response log line, got: %s", out)
	}
}

func TestDoSendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{}})
	}))
	defer srv.Close()

	if err := newTestStorage(srv.URL, "secret-key").EnsureCollection(context.Background(), 8); err != nil {
		t.Fatalf("EnsureCollection: %v", err)
	}
	if gotKey != "secret-key" {
		t.Fatalf("expected api-key header, got %q", gotKey)
	}
}

func TestDoOmitsAPIKeyHeaderWhenUnset(t *testing.T) {
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Api-Key"]
		json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{}})
	}))
	defer srv.Close()

	if err := newTestStorage(srv.URL, "").Drop(context.Background()); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if present {
		t.Fatal("expected no api-key header for an unconfigured key")
	}
}

func TestQueryMissingCollectionIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	results, err := newTestStorage(srv.URL, "").Query(context.Background(), []float64{1, 0}, 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result for missing collection, got %d", len(results))
	}
}

package ollama

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/providers"
)

func newTestProvider(url string) *Provider {
	cfg := appconfig.Defaults()
	cfg.OllamaURL = url
	cfg.TimeoutSeconds = 5
	return New(&cfg)
}

func TestGenerateReturnsContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"model":"llama3.1:8b","message":{"role":"assistant","content":"The mat was red."},"done":true}`))
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).Generate(context.Background(), "what color is the mat")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "The mat was red." {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestGenerateModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model \"nope\" not found, try pulling it first"}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Generate(context.Background(), "hi")
	if !errors.Is(err, providers.ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
}

func TestGenerateServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed up front so the call fails at connect

	_, err := newTestProvider(srv.URL).Generate(context.Background(), "hi")
	if !errors.Is(err, providers.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

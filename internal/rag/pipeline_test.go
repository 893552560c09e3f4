package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/localmind/localmind/internal/extract"
	"github.com/localmind/localmind/internal/vectorstore/memory"
)

// End-to-end over the two pipelines with a deterministic embedder and an
// in-memory store: ingest one small document, then answer a question
// grounded on it.
func TestIngestThenAnswer(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cat.txt", "The cat sat on the mat. The mat was red.")

	cfg := testConfig() // chunk size 20, overlap 5, topK 5
	store := memory.NewStorage()
	embedder := &hashEmbedder{dim: 64}
	ctx := context.Background()

	ingestor := NewIngestor(cfg, extract.NewExtractor(), embedder, store)
	report := ingestor.Ingest(ctx, []string{path})
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected ingest errors: %v", report.Errors)
	}
	if report.ChunksAdded != 3 {
		t.Fatalf("expected 3 chunks, got %d", report.ChunksAdded)
	}

	chat := &fakeChat{reply: "The mat was red."}
	retriever := NewRetriever(cfg, embedder, store, chat)

	answer, err := retriever.Answer(ctx, "what color is the mat")
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if answer.Text != "The mat was red." {
		t.Fatalf("unexpected answer: %q", answer.Text)
	}
	if len(answer.Sources) != 3 {
		t.Fatalf("expected min(topK, stored) = 3 sources, got %d", len(answer.Sources))
	}

	found := false
	for _, s := range answer.Sources {
		if s.Path != path {
			t.Fatalf("unexpected source path %q", s.Path)
		}
		if strings.Contains(s.Text, "red") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the chunk containing %q among retrieved sources", "red")
	}
	if !strings.Contains(chat.prompt, "[Source: "+path+"]") {
		t.Fatalf("expected the prompt to cite the source path")
	}
}

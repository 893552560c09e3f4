package rag

import (
	"context"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/extract"
	"github.com/localmind/localmind/internal/vectorstore/memory"
)

// hashEmbedder maps each text to a deterministic bag-of-words vector, so
// pipeline tests run without a live embedding service.
type hashEmbedder struct {
	dim      int
	calls    int
	failWith error
}

func (e *hashEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	if e.failWith != nil {
		return nil, e.failWith
	}
	e.calls++
	out := make([][]float64, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *hashEmbedder) vector(text string) []float64 {
	v := make([]float64, e.dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?")
		if w == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(w))
		v[int(h.Sum32())%e.dim]++
	}
	return v
}

func testConfig() *appconfig.Config {
	cfg := appconfig.Defaults()
	cfg.ChunkSize = 20
	cfg.ChunkOverlap = 5
	cfg.TopK = 5
	return &cfg
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestIngestMixedValidAndInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	catPath := writeFile(t, dir, "cat.txt", "The cat sat on the mat. The mat was red.")
	notePath := writeFile(t, dir, "note.md", "A short note.")
	binPath := writeFile(t, dir, "image.bin", "\x00\x01\x02")
	missingPath := filepath.Join(dir, "missing.txt")

	cfg := testConfig()
	store := memory.NewStorage()
	embedder := &hashEmbedder{dim: 16}
	ingestor := NewIngestor(cfg, extract.NewExtractor(), embedder, store)

	report := ingestor.Ingest(context.Background(), []string{catPath, notePath, binPath, missingPath})

	if len(report.Errors) != 2 {
		t.Fatalf("expected 2 per-file errors, got %d: %v", len(report.Errors), report.Errors)
	}
	if _, ok := report.Errors[binPath]; !ok {
		t.Fatalf("expected error for unsupported format %s", binPath)
	}
	if _, ok := report.Errors[missingPath]; !ok {
		t.Fatalf("expected error for missing file %s", missingPath)
	}

	wantChunks := len(ChunkText("The cat sat on the mat. The mat was red.", catPath, cfg.ChunkSize, cfg.ChunkOverlap)) +
		len(ChunkText("A short note.", notePath, cfg.ChunkSize, cfg.ChunkOverlap))
	if report.ChunksAdded != wantChunks {
		t.Fatalf("expected %d chunks added, got %d", wantChunks, report.ChunksAdded)
	}

	count, err := store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != wantChunks {
		t.Fatalf("expected store count %d, got %d", wantChunks, count)
	}
}

func TestIngestEmptyFileIsSuccess(t *testing.T) {
	dir := t.TempDir()
	emptyPath := writeFile(t, dir, "empty.txt", "")

	cfg := testConfig()
	store := memory.NewStorage()
	ingestor := NewIngestor(cfg, extract.NewExtractor(), &hashEmbedder{dim: 8}, store)

	report := ingestor.Ingest(context.Background(), []string{emptyPath})
	if len(report.Errors) != 0 {
		t.Fatalf("expected no errors for empty file, got %v", report.Errors)
	}
	if report.ChunksAdded != 0 {
		t.Fatalf("expected zero chunks for empty file, got %d", report.ChunksAdded)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cat.txt", "The cat sat on the mat. The mat was red.")

	cfg := testConfig()
	store := memory.NewStorage()
	ingestor := NewIngestor(cfg, extract.NewExtractor(), &hashEmbedder{dim: 16}, store)
	ctx := context.Background()

	first := ingestor.Ingest(ctx, []string{path})
	second := ingestor.Ingest(ctx, []string{path})
	if first.ChunksAdded != second.ChunksAdded {
		t.Fatalf("expected equal chunk counts, got %d then %d", first.ChunksAdded, second.ChunksAdded)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != first.ChunksAdded {
		t.Fatalf("expected store to hold %d chunks after re-ingest, got %d", first.ChunksAdded, count)
	}
}

func TestIngestRecordsEmbedderFailurePerFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cat.txt", "The cat sat on the mat.")

	cfg := testConfig()
	store := memory.NewStorage()
	embedder := &hashEmbedder{dim: 8, failWith: context.DeadlineExceeded}
	ingestor := NewIngestor(cfg, extract.NewExtractor(), embedder, store)

	report := ingestor.Ingest(context.Background(), []string{path})
	if report.ChunksAdded != 0 {
		t.Fatalf("expected no chunks added, got %d", report.ChunksAdded)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", report.Errors)
	}
	count, _ := store.Count(context.Background())
	if count != 0 {
		t.Fatalf("expected empty store after failed embed, got %d", count)
	}
}

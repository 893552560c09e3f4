package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/logging"
	"github.com/localmind/localmind/internal/vectorstore"
)

// Ingestor composes extraction, chunking, embedding, and the vector store
// into the write path: file paths in, indexed chunks out.
type Ingestor struct {
	extractor TextExtractor
	embedder  Embedder
	store     vectorstore.Store
	chunkSize int
	overlap   int
}

// NewIngestor wires an ingestion pipeline from the configured chunking
// parameters and the given collaborators.
func NewIngestor(cfg *appconfig.Config, extractor TextExtractor, embedder Embedder, store vectorstore.Store) *Ingestor {
	return &Ingestor{
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		chunkSize: cfg.ChunkSize,
		overlap:   cfg.ChunkOverlap,
	}
}

// Ingest indexes each file independently. A failing file is recorded in the
// report and never aborts the rest; there is no rollback. Re-ingesting a path
// overwrites its previous chunks because chunk ids are deterministic, which
// also self-heals a partially indexed document from an earlier crash.
func (in *Ingestor) Ingest(ctx context.Context, paths []string) IngestReport {
	start := time.Now()
	report := IngestReport{Errors: make(map[string]string)}
	for _, path := range paths {
		added, err := in.ingestFile(ctx, path)
		if err != nil {
			logging.LogEvent("[INGEST] %s: %v", path, err)
			report.Errors[path] = err.Error()
			continue
		}
		report.ChunksAdded += added
	}
	logging.LogEvent("[INGEST] %d chunks added from %d paths (%d failed) in %s",
		report.ChunksAdded, len(paths), len(report.Errors), time.Since(start).Truncate(time.Millisecond))
	return report
}

// ingestFile runs extract -> chunk -> embed -> upsert for one file. All
// chunks of the document go to the embedder in one call; the embedding
// client applies the configured batch cap underneath.
func (in *Ingestor) ingestFile(ctx context.Context, path string) (int, error) {
	text, err := in.extractor.Extract(path)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	chunks := ChunkText(text, path, in.chunkSize, in.overlap)
	if len(chunks) == 0 {
		logging.LogEvent("[INGEST] %s: empty document, nothing to index", path)
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := in.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	if err := in.store.EnsureCollection(ctx, len(vectors[0])); err != nil {
		return 0, fmt.Errorf("ensure collection: %w", err)
	}

	records := make([]vectorstore.Record, len(chunks))
	for i, c := range chunks {
		records[i] = vectorstore.Record{
			ID:         ChunkID(c.Source, c.Index),
			Vector:     vectors[i],
			Text:       c.Text,
			Source:     c.Source,
			ChunkIndex: c.Index,
		}
	}
	if err := in.store.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}

	logging.LogEvent("[INGEST] %s: indexed %d chunks", path, len(chunks))
	return len(chunks), nil
}

package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/logging"
	"github.com/localmind/localmind/internal/providers"
	"github.com/localmind/localmind/internal/vectorstore"
)

// GenerationError reports a generation-service failure while preserving the
// already-retrieved sources, so the caller can still show what was found.
type GenerationError struct {
	Sources []Source
	Err     error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("generate answer: %v", e.Err) }

func (e *GenerationError) Unwrap() error { return e.Err }

// Retriever embeds a question, fetches the nearest chunks from the vector
// store, and asks the chat model for a grounded answer.
type Retriever struct {
	embedder Embedder
	store    vectorstore.Store
	chat     providers.ChatProvider
	topK     int
}

// NewRetriever wires a retrieval-generation pipeline from the configured
// top-K and the given collaborators.
func NewRetriever(cfg *appconfig.Config, embedder Embedder, store vectorstore.Store, chat providers.ChatProvider) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		chat:     chat,
		topK:     cfg.TopK,
	}
}

// Answer runs the read path for one question. Zero retrieved chunks yield the
// fixed no-context answer without touching the generation service. Service
// failures propagate to the caller; retry policy belongs there.
func (r *Retriever) Answer(ctx context.Context, query string) (Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Answer{}, fmt.Errorf("query is empty")
	}

	start := time.Now()
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return Answer{}, fmt.Errorf("embed query: %w", err)
	}

	results, err := r.store.Query(ctx, vectors[0], r.topK)
	if err != nil {
		return Answer{}, fmt.Errorf("query vector store: %w", err)
	}
	logging.LogEvent("[ASK] retrieved %d chunks in %s", len(results), time.Since(start).Truncate(time.Millisecond))

	if len(results) == 0 {
		return Answer{Text: NoContextAnswer}, nil
	}

	sources := make([]Source, len(results))
	for i, res := range results {
		sources[i] = Source{
			Path:       res.Source,
			ChunkIndex: res.ChunkIndex,
			Text:       res.Text,
			Score:      res.Score,
		}
	}

	prompt := BuildPrompt(query, sources)
	text, err := r.chat.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, &GenerationError{Sources: sources, Err: err}
	}
	return Answer{Text: text, Sources: sources}, nil
}

// Package rag implements the ingestion and retrieval-generation pipelines:
// extract, chunk, embed, store on the way in; embed, query, prompt, generate
// on the way out.
package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Chunk is a contiguous window of a document's text.
type Chunk struct {
	Text   string
	Source string // path of the originating document
	Index  int    // chunk index within the document
	Offset int    // rune offset of the window start
}

// Source is one retrieved chunk cited by an answer.
type Source struct {
	Path       string
	ChunkIndex int
	Text       string
	Score      float64
}

// Answer is the generated text plus the chunks that grounded it.
type Answer struct {
	Text    string
	Sources []Source
}

// IngestReport aggregates one ingestion call: total chunks indexed and the
// per-file failures that were skipped.
type IngestReport struct {
	ChunksAdded int
	Errors      map[string]string
}

// Embedder returns one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// TextExtractor reads a file and returns its raw text.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// ChunkID derives a store id deterministically from the source path and chunk
// index, so re-ingesting the same file overwrites its previous points instead
// of duplicating them. UUIDs keep Qdrant's point-id format happy.
func ChunkID(source string, index int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%s#%d", source, index))).String()
}

// Package vectorstore defines the records and the storage contract shared by
// the Qdrant client and the in-memory store.
package vectorstore

import "context"

// Record is one indexed chunk: deterministic id, embedding vector, the chunk
// text, and its source metadata.
type Record struct {
	ID         string
	Vector     []float64
	Text       string
	Source     string
	ChunkIndex int
}

// ScoredRecord pairs a stored record with the store's similarity score.
// The score scale is store-defined; higher means more similar.
type ScoredRecord struct {
	Record
	Score float64
}

// Store persists chunk vectors in a named collection and answers
// nearest-neighbour queries. The collection is bound at construction time.
type Store interface {
	// EnsureCollection creates the collection if it does not exist yet.
	EnsureCollection(ctx context.Context, dimension int) error
	// Upsert writes records by id; re-upserting an id overwrites it.
	Upsert(ctx context.Context, records []Record) error
	// Query returns up to topK records ranked by decreasing similarity.
	// A collection that does not exist yet yields an empty result, not an error.
	Query(ctx context.Context, vector []float64, topK int) ([]ScoredRecord, error)
	// Count reports how many records the collection holds.
	Count(ctx context.Context) (int, error)
	// Drop removes the collection and everything in it.
	Drop(ctx context.Context) error
}

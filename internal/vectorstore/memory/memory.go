// Package memory is an in-process vector store using brute-force cosine
// similarity. It backs the pipeline tests and mirrors the Qdrant client's
// id-overwrite semantics.
package memory

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/localmind/localmind/internal/vectorstore"
)

// Storage keeps records in a map keyed by id, so upserting an existing id
// overwrites it.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	records   map[string]vectorstore.Record
}

// NewStorage returns an empty store.
func NewStorage() *Storage {
	return &Storage{records: make(map[string]vectorstore.Record)}
}

var _ vectorstore.Store = (*Storage)(nil)

func (s *Storage) EnsureCollection(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		s.dimension = dimension
	}
	return nil
}

func (s *Storage) Upsert(_ context.Context, records []vectorstore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if s.dimension > 0 && len(r.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		s.records[r.ID] = r
	}
	return nil
}

func (s *Storage) Query(_ context.Context, vector []float64, topK int) ([]vectorstore.ScoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 || len(s.records) == 0 {
		return nil, nil
	}
	scored := make([]vectorstore.ScoredRecord, 0, len(s.records))
	for _, r := range s.records {
		scored = append(scored, vectorstore.ScoredRecord{
			Record: r,
			Score:  cosine(vector, r.Vector),
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})
	if topK > len(scored) {
		topK = len(scored)
	}
	return scored[:topK], nil
}

func (s *Storage) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *Storage) Drop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]vectorstore.Record)
	s.dimension = 0
	return nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

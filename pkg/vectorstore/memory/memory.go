package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"ai-library-be/pkg/vectorstore"
)

// Store is an in-memory vector store with exact cosine search. It backs
// local runs and tests; production deployments use the chroma adapter.
type Store struct {
	mu      sync.RWMutex
	records map[string]vectorstore.Record
	order   []string // insertion order, keeps scans deterministic
}

var _ vectorstore.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		records: make(map[string]vectorstore.Record),
	}
}

func (s *Store) Upsert(_ context.Context, ids []string, vectors [][]float32, metadatas []map[string]string, documents []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range ids {
		rec := vectorstore.Record{ID: id}
		if i < len(vectors) {
			rec.Embedding = vectors[i]
		}
		if i < len(metadatas) {
			rec.Metadata = metadatas[i]
		}
		if i < len(documents) {
			rec.Document = documents[i]
		}
		if _, exists := s.records[id]; !exists {
			s.order = append(s.order, id)
		}
		s.records[id] = rec
	}
	return nil
}

func (s *Store) Query(_ context.Context, vector []float32, n int, where map[string]string) ([]vectorstore.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]vectorstore.Match, 0, len(s.records))
	for _, id := range s.order {
		rec := s.records[id]
		if !metadataEquals(rec.Metadata, where) {
			continue
		}
		matches = append(matches, vectorstore.Match{
			ID:       rec.ID,
			Distance: 1 - cosine(vector, rec.Embedding),
			Metadata: rec.Metadata,
			Document: rec.Document,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches, nil
}

func (s *Store) GetByID(_ context.Context, id string) (*vectorstore.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *Store) ScanMetadata(_ context.Context) ([]map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]map[string]string, 0, len(s.records))
	for _, id := range s.order {
		out = append(out, s.records[id].Metadata)
	}
	return out, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func metadataEquals(meta, where map[string]string) bool {
	for k, v := range where {
		if meta[k] != v {
			return false
		}
	}
	return true
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

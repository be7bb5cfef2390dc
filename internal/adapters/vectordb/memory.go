// Package vectordb provides vector store adapters.
// Clean Architecture: Adapters implementing ports.VectorStore.
package vectordb

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// InMemoryStore is a process-local vector store using brute-force cosine
// similarity. All chunks of a document are swapped in under one lock, so
// readers never observe a partially written document.
type InMemoryStore struct {
	mu     sync.RWMutex
	chunks map[string]entities.Chunk // chunkID -> chunk
	docs   map[string][]string       // documentID -> []chunkID
}

// NewInMemoryStore creates a new in-memory vector store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		chunks: make(map[string]entities.Chunk),
		docs:   make(map[string][]string),
	}
}

// StoreDocument atomically replaces every chunk for the document.
func (s *InMemoryStore) StoreDocument(ctx context.Context, documentID string, chunks []entities.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.docs[documentID] {
		delete(s.chunks, id)
	}
	ids := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
		ids = append(ids, chunk.ID)
	}
	s.docs[documentID] = ids
	return nil
}

// Contains reports whether the document's chunks are indexed.
func (s *InMemoryStore) Contains(ctx context.Context, documentID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.docs[documentID]
	return ok && len(ids) > 0, nil
}

// Search finds the most similar chunks to a query embedding. An empty
// index yields no results and no error.
func (s *InMemoryStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []entities.ScoredChunk
	for _, chunk := range s.chunks {
		results = append(results, entities.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Delete removes all chunks for a document.
func (s *InMemoryStore) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.docs[documentID] {
		delete(s.chunks, id)
	}
	delete(s.docs, documentID)
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
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
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

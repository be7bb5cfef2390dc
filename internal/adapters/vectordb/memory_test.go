package vectordb

import (
	"context"
	"math"
	"testing"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

func chunk(id, docFile, text string, embedding []float32) entities.Chunk {
	return entities.Chunk{ID: id, SourceFile: docFile, Text: text, Embedding: embedding}
}

func TestInMemoryStore_SearchOrdersBySimilarity(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	err := s.StoreDocument(ctx, "doc1", []entities.Chunk{
		chunk("far", "a.txt", "far", []float32{0, 1, 0}),
		chunk("near", "a.txt", "near", []float32{1, 0.1, 0}),
		chunk("exact", "a.txt", "exact", []float32{1, 0, 0}),
	})
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected topK=2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "exact" || results[1].Chunk.ID != "near" {
		t.Errorf("wrong ranking: %s, %s", results[0].Chunk.ID, results[1].Chunk.ID)
	}
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("identical vectors must score 1.0, got %f", results[0].Score)
	}
}

func TestInMemoryStore_EmptyIndexSearch(t *testing.T) {
	s := NewInMemoryStore()

	results, err := s.Search(context.Background(), []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("empty index must not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestInMemoryStore_StoreDocumentReplacesAtomically(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	if err := s.StoreDocument(ctx, "doc1", []entities.Chunk{
		chunk("v1-a", "a.txt", "old a", []float32{1, 0}),
		chunk("v1-b", "a.txt", "old b", []float32{0, 1}),
	}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := s.StoreDocument(ctx, "doc1", []entities.Chunk{
		chunk("v2-a", "a.txt", "new a", []float32{1, 0}),
	}); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 1}, 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("old chunks must be gone, got %d results", len(results))
	}
	if results[0].Chunk.ID != "v2-a" {
		t.Errorf("expected the replacement chunk, got %s", results[0].Chunk.ID)
	}
}

func TestInMemoryStore_ContainsAndDelete(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	ok, err := s.Contains(ctx, "doc1")
	if err != nil || ok {
		t.Fatal("missing document must not be contained")
	}

	if err := s.StoreDocument(ctx, "doc1", []entities.Chunk{
		chunk("c1", "a.txt", "text", []float32{1}),
	}); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if ok, _ := s.Contains(ctx, "doc1"); !ok {
		t.Error("stored document must be contained")
	}

	if err := s.Delete(ctx, "doc1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if ok, _ := s.Contains(ctx, "doc1"); ok {
		t.Error("deleted document must not be contained")
	}
	results, _ := s.Search(ctx, []float32{1}, 5)
	if len(results) != 0 {
		t.Error("deleted chunks must not be searchable")
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"mismatched length", []float32{1, 0}, []float32{1}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tc := range cases {
		if got := cosineSimilarity(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: cosineSimilarity = %f, want %f", tc.name, got, tc.want)
		}
	}
}

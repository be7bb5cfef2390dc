package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestOllamaAdapter_Embed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Model != "nomic-embed-text" || req.Prompt != "hello" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: []float32{0.1, 0.2}})
	}))
	defer ts.Close()

	a := NewOllamaAdapter(ts.URL, "")
	emb, err := a.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(emb) != 2 || emb[0] != 0.1 {
		t.Errorf("embedding = %v", emb)
	}
}

func TestOllamaAdapter_EmbedBatchKeepsOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaEmbedRequest
		json.NewDecoder(r.Body).Decode(&req)
		// Encode the prompt length so order is checkable.
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: []float32{float32(len(req.Prompt))}})
	}))
	defer ts.Close()

	a := NewOllamaAdapter(ts.URL, "")
	embeddings, err := a.EmbedBatch(context.Background(), []string{"a", "bb", "ccc"})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	for i, want := range []float32{1, 2, 3} {
		if embeddings[i][0] != want {
			t.Errorf("embedding %d = %v, want [%f]", i, embeddings[i], want)
		}
	}
}

func TestOllamaAdapter_EmbedBatchFailsWhole(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 2 {
			http.Error(w, "model offline", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embedding: []float32{1}})
	}))
	defer ts.Close()

	a := NewOllamaAdapter(ts.URL, "")
	if _, err := a.EmbedBatch(context.Background(), []string{"a", "b", "c"}); err == nil {
		t.Error("one failed embedding must fail the batch")
	}
}

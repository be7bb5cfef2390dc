package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaAdapter_Generate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req ollamaGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Stream {
			t.Error("generate must request a non-streaming response")
		}
		json.NewEncoder(w).Encode(ollamaGenerateResponse{Response: "generated text", Done: true})
	}))
	defer ts.Close()

	a := NewOllamaAdapter(ts.URL, "llama3.2")
	text, err := a.Generate(context.Background(), "summarize this")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if text != "generated text" {
		t.Errorf("text = %q", text)
	}
}

func TestOllamaAdapter_ServerErrorFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer ts.Close()

	a := NewOllamaAdapter(ts.URL, "")
	if _, err := a.Generate(context.Background(), "anything"); err == nil {
		t.Error("expected error on non-200 status")
	}
}

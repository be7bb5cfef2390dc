// Package usecases - retrieve.go decides FOUND vs NOT_FOUND for a query.
package usecases

import (
	"context"
	"fmt"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/ports"
)

// Retriever embeds a query, searches the vector store and applies the
// relevance decision. Confidence is the best-match cosine similarity of
// the top-K result set; a query is FOUND when it reaches the threshold.
// Threshold and K are process-wide configuration, never user-supplied.
type Retriever struct {
	embedder  ports.EmbeddingService
	store     ports.VectorStore
	events    ports.EventSink
	topK      int
	threshold float64
}

// NewRetriever creates a Retriever with injected dependencies.
func NewRetriever(
	embedder ports.EmbeddingService,
	store ports.VectorStore,
	events ports.EventSink,
	topK int,
	threshold float64,
) *Retriever {
	return &Retriever{
		embedder:  embedder,
		store:     store,
		events:    events,
		topK:      topK,
		threshold: threshold,
	}
}

// Retrieve searches the index for the query. A low-confidence or empty
// result is the normal NOT_FOUND outcome, not an error; only embedding
// or store failures propagate.
func (r *Retriever) Retrieve(ctx context.Context, query *entities.Query) (*entities.RetrievalResult, error) {
	embedding, err := r.embedder.Embed(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	scored, err := r.store.Search(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("searching vectors: %w", err)
	}

	result := &entities.RetrievalResult{}
	if len(scored) > 0 {
		result.Confidence = scored[0].Score
		if result.Confidence >= r.threshold {
			result.Found = true
			result.Chunks = scored
		}
	}

	r.events.Emit(entities.Event{
		Kind:  entities.EventRetrievalResult,
		Level: entities.LevelInfo,
		Payload: map[string]any{
			"query_id":   query.ID,
			"found":      result.Found,
			"confidence": result.Confidence,
			"chunks":     len(result.Chunks),
		},
	})

	return result, nil
}

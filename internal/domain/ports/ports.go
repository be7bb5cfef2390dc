// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// EmbeddingService generates vector embeddings for text.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorStore persists embedded chunks and answers similarity queries.
// The index algorithm itself is an opaque capability behind this interface.
type VectorStore interface {
	// StoreDocument replaces every chunk for the given document in one
	// atomic write: readers never observe a partially written document.
	StoreDocument(ctx context.Context, documentID string, chunks []entities.Chunk) error

	// Contains reports whether a document's chunks are already indexed.
	Contains(ctx context.Context, documentID string) (bool, error)

	// Search returns the topK chunks most similar to the query embedding,
	// ordered by descending similarity. An empty index returns no results
	// and no error.
	Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredChunk, error)

	// Delete removes all chunks for a document.
	Delete(ctx context.Context, documentID string) error
}

// LLMService generates text responses from a language model.
type LLMService interface {
	// Generate produces a response for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChunkExtractor turns raw document bytes into ordered chunks plus the
// per-file counters surfaced in the UploadResult.
type ChunkExtractor interface {
	Extract(ctx context.Context, doc *entities.UploadedDocument) (*Extraction, error)
}

// Extraction is the output of a ChunkExtractor. PageCount is set for PDF
// input, CharCount for plain text.
type Extraction struct {
	Chunks    []entities.Chunk
	PageCount int
	CharCount int
}

// WebSearcher performs the consent-gated fallback web search.
type WebSearcher interface {
	Search(ctx context.Context, query string) (*entities.WebResult, error)
}

// MarketData serves the PRICE intent tool path with live quotes.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (*entities.Quote, error)
}

// EventSink receives structured observability events. The sink itself
// (console, file, aggregator) is outside the core.
type EventSink interface {
	Emit(event entities.Event)
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

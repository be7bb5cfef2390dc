package usecases

import (
	"context"
	"errors"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/ports"
)

// mockEmbedder implements ports.EmbeddingService for testing.
type mockEmbedder struct {
	embedFn    func(text string) ([]float32, error)
	embedCalls int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedFn != nil {
		return m.embedFn(text)
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		emb, err := m.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		result[i] = emb
	}
	return result, nil
}

// mockVectorStore implements ports.VectorStore for testing.
type mockVectorStore struct {
	docs          map[string][]entities.Chunk
	searchResults []entities.ScoredChunk
	storeErr      error
	searchErr     error
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{docs: make(map[string][]entities.Chunk)}
}

func (m *mockVectorStore) StoreDocument(ctx context.Context, documentID string, chunks []entities.Chunk) error {
	if m.storeErr != nil {
		return m.storeErr
	}
	m.docs[documentID] = chunks
	return nil
}

func (m *mockVectorStore) Contains(ctx context.Context, documentID string) (bool, error) {
	_, ok := m.docs[documentID]
	return ok, nil
}

func (m *mockVectorStore) Search(ctx context.Context, emb []float32, topK int) ([]entities.ScoredChunk, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if len(m.searchResults) > topK {
		return m.searchResults[:topK], nil
	}
	return m.searchResults, nil
}

func (m *mockVectorStore) Delete(ctx context.Context, documentID string) error {
	delete(m.docs, documentID)
	return nil
}

func (m *mockVectorStore) chunkCount() int {
	n := 0
	for _, chunks := range m.docs {
		n += len(chunks)
	}
	return n
}

// mockExtractor implements ports.ChunkExtractor for testing.
type mockExtractor struct {
	extraction *ports.Extraction
	err        error
}

func (m *mockExtractor) Extract(ctx context.Context, doc *entities.UploadedDocument) (*ports.Extraction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.extraction, nil
}

// mockLLM implements ports.LLMService for testing.
type mockLLM struct {
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if m.response != "" {
		return m.response, nil
	}
	return "mocked answer", nil
}

// mockWebSearcher implements ports.WebSearcher for testing.
type mockWebSearcher struct {
	result *entities.WebResult
	err    error
	calls  int
}

func (m *mockWebSearcher) Search(ctx context.Context, query string) (*entities.WebResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &entities.WebResult{Content: "web content", URLs: []string{"https://example.com"}}, nil
}

// mockMarket implements ports.MarketData for testing.
type mockMarket struct {
	quote *entities.Quote
	err   error
	calls int
}

func (m *mockMarket) Quote(ctx context.Context, symbol string) (*entities.Quote, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.quote != nil {
		return m.quote, nil
	}
	return nil, errors.New("no quote configured")
}

// recordingSink captures emitted events for assertions.
type recordingSink struct {
	events []entities.Event
}

func (s *recordingSink) Emit(event entities.Event) {
	s.events = append(s.events, event)
}

func (s *recordingSink) has(kind entities.EventKind) bool {
	for _, e := range s.events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

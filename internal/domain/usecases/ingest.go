// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code, NO external dependencies - just pure business logic.
package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/ports"
)

// IngestUseCase converts uploaded files into indexed chunks.
// Each file is processed independently: one failure never blocks the rest
// of the batch, and the index write for a document is all-or-nothing.
type IngestUseCase struct {
	extractors map[entities.ContentType]ports.ChunkExtractor
	embedder   ports.EmbeddingService
	store      ports.VectorStore
	events     ports.EventSink
}

// NewIngestUseCase creates an IngestUseCase with injected dependencies.
func NewIngestUseCase(
	extractors map[entities.ContentType]ports.ChunkExtractor,
	embedder ports.EmbeddingService,
	store ports.VectorStore,
	events ports.EventSink,
) *IngestUseCase {
	return &IngestUseCase{
		extractors: extractors,
		embedder:   embedder,
		store:      store,
		events:     events,
	}
}

// IngestBatch processes each file independently and returns one result
// per input file, in input order.
func (uc *IngestUseCase) IngestBatch(ctx context.Context, docs []*entities.UploadedDocument) []entities.UploadResult {
	results := make([]entities.UploadResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, uc.Ingest(ctx, doc))
	}
	return results
}

// Ingest extracts, embeds and indexes a single uploaded document.
// Extraction and embedding failures are recovered here and reported as a
// FAILURE result; they never propagate as errors.
func (uc *IngestUseCase) Ingest(ctx context.Context, doc *entities.UploadedDocument) entities.UploadResult {
	uc.events.Emit(entities.Event{
		Kind:  entities.EventFileUploadReceived,
		Level: entities.LevelInfo,
		Payload: map[string]any{
			"filename": doc.Filename,
			"type":     string(doc.Type),
			"bytes":    len(doc.Data),
		},
	})

	result := uc.ingest(ctx, doc)

	payload := map[string]any{
		"filename": result.Filename,
		"status":   string(result.Status),
		"type":     string(result.Type),
	}
	level := entities.LevelInfo
	switch {
	case result.Status == entities.UploadFailure:
		payload["error"] = result.Error
		level = entities.LevelWarn
	case result.Type == entities.ContentTypePDF:
		payload["pages"] = result.PageCount
	default:
		payload["chars"] = result.CharCount
	}
	uc.events.Emit(entities.Event{Kind: entities.EventFileProcessed, Level: level, Payload: payload})

	return result
}

func (uc *IngestUseCase) ingest(ctx context.Context, doc *entities.UploadedDocument) entities.UploadResult {
	extractor, ok := uc.extractors[doc.Type]
	if !ok {
		err := &entities.UnsupportedFormatError{Filename: doc.Filename, DeclaredType: string(doc.Type)}
		return failure(doc, err)
	}

	extraction, err := extractor.Extract(ctx, doc)
	if err != nil {
		return failure(doc, err)
	}

	docID := documentID(doc.Data)

	// Identical content is already searchable; skip re-embedding.
	indexed, err := uc.store.Contains(ctx, docID)
	if err != nil {
		return failure(doc, &entities.EmbeddingError{Filename: doc.Filename, Err: err})
	}
	if indexed {
		r := success(doc, extraction)
		r.AlreadyIndexed = true
		return r
	}

	if len(extraction.Chunks) == 0 {
		// Nothing to index (e.g. an empty text file); still a valid upload.
		return success(doc, extraction)
	}

	texts := make([]string, len(extraction.Chunks))
	for i, chunk := range extraction.Chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return failure(doc, &entities.EmbeddingError{Filename: doc.Filename, Err: err})
	}
	if len(embeddings) != len(extraction.Chunks) {
		return failure(doc, &entities.EmbeddingError{
			Filename: doc.Filename,
			Err:      errors.New("embedding count does not match chunk count"),
		})
	}

	chunks := extraction.Chunks
	for i := range chunks {
		chunks[i].DocumentID = docID
		chunks[i].Embedding = embeddings[i]
	}

	// Single atomic write: either every chunk of this document lands in
	// the index or none does.
	if err := uc.store.StoreDocument(ctx, docID, chunks); err != nil {
		return failure(doc, &entities.EmbeddingError{Filename: doc.Filename, Err: err})
	}

	return success(doc, extraction)
}

func success(doc *entities.UploadedDocument, ex *ports.Extraction) entities.UploadResult {
	return entities.UploadResult{
		Filename:   doc.Filename,
		Status:     entities.UploadSuccess,
		Type:       doc.Type,
		PageCount:  ex.PageCount,
		CharCount:  ex.CharCount,
		ChunkCount: len(ex.Chunks),
	}
}

func failure(doc *entities.UploadedDocument, err error) entities.UploadResult {
	return entities.UploadResult{
		Filename: doc.Filename,
		Status:   entities.UploadFailure,
		Type:     doc.Type,
		Error:    err.Error(),
	}
}

// documentID derives a deterministic identifier from file content so the
// same document uploaded twice maps to the same index entry.
func documentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:16])
}

package extractor

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/ports"
)

// TextExtractor splits a decoded text payload into fixed-size,
// non-overlapping chunks to bound embedding cost. Chunk boundaries are
// rune positions, so concatenating chunk texts in order reproduces the
// original exactly.
type TextExtractor struct {
	chunkSize int
}

// NewTextExtractor creates a text extractor. chunkSize is the maximum
// number of characters per chunk.
func NewTextExtractor(chunkSize int) *TextExtractor {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	return &TextExtractor{chunkSize: chunkSize}
}

// Extract decodes the payload as UTF-8 text and chunks it. An empty file
// is a valid upload producing zero chunks.
func (e *TextExtractor) Extract(ctx context.Context, doc *entities.UploadedDocument) (*ports.Extraction, error) {
	if !utf8.Valid(doc.Data) {
		return nil, &entities.ExtractionError{Filename: doc.Filename, Err: errors.New("payload is not valid UTF-8 text")}
	}

	runes := []rune(string(doc.Data))
	total := len(runes)

	var chunks []entities.Chunk
	for offset := 0; offset < total; offset += e.chunkSize {
		end := offset + e.chunkSize
		if end > total {
			end = total
		}
		chunks = append(chunks, entities.Chunk{
			ID:         uuid.NewString(),
			SourceFile: doc.Filename,
			Index:      len(chunks),
			Text:       string(runes[offset:end]),
			Offset:     offset,
		})
	}

	return &ports.Extraction{Chunks: chunks, CharCount: total}, nil
}

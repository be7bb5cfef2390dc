// Package extractor provides chunk extraction adapters.
// Clean Architecture: Adapters implementing ports.ChunkExtractor.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
	"github.com/0xcro3dile/finwise-go/internal/domain/ports"
)

// PDFExtractor extracts text per page: each extractable page becomes one
// chunk carrying its 1-based page number.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF chunk extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract parses the payload as a PDF. A payload that is not a valid PDF
// or yields no extractable text fails with an ExtractionError.
func (e *PDFExtractor) Extract(ctx context.Context, doc *entities.UploadedDocument) (*ports.Extraction, error) {
	extraction, err := extractPages(doc)
	if err != nil {
		return nil, &entities.ExtractionError{Filename: doc.Filename, Err: err}
	}
	return extraction, nil
}

func extractPages(doc *entities.UploadedDocument) (extraction *ports.Extraction, err error) {
	// The pdf parser panics on some malformed inputs; treat that the same
	// as a parse error.
	defer func() {
		if r := recover(); r != nil {
			extraction = nil
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return nil, fmt.Errorf("not a valid pdf: %w", err)
	}

	pageCount := reader.NumPage()
	var chunks []entities.Chunk
	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		chunks = append(chunks, entities.Chunk{
			ID:         uuid.NewString(),
			SourceFile: doc.Filename,
			Index:      len(chunks),
			Text:       text,
			Page:       pageNum,
		})
	}

	if len(chunks) == 0 {
		return nil, errors.New("no extractable text")
	}

	return &ports.Extraction{Chunks: chunks, PageCount: pageCount}, nil
}

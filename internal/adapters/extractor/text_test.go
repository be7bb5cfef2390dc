package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

func textDoc(content string) *entities.UploadedDocument {
	return &entities.UploadedDocument{
		Filename: "notes.txt",
		Type:     entities.ContentTypeText,
		Data:     []byte(content),
	}
}

func TestTextExtractor_ChunkCountAndRoundTrip(t *testing.T) {
	e := NewTextExtractor(10)
	content := strings.Repeat("abcde", 7) // 35 runes -> 4 chunks

	extraction, err := e.Extract(context.Background(), textDoc(content))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(extraction.Chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(extraction.Chunks))
	}
	if extraction.CharCount != 35 {
		t.Errorf("expected char count 35, got %d", extraction.CharCount)
	}

	var rebuilt strings.Builder
	for i, chunk := range extraction.Chunks {
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d", i, chunk.Index)
		}
		if chunk.Offset != i*10 {
			t.Errorf("chunk %d has offset %d, want %d", i, chunk.Offset, i*10)
		}
		rebuilt.WriteString(chunk.Text)
	}
	if rebuilt.String() != content {
		t.Error("concatenated chunks must reproduce the original text")
	}
}

func TestTextExtractor_UnicodeBoundaries(t *testing.T) {
	e := NewTextExtractor(3)
	content := "héllo wörld" // 11 runes, more bytes

	extraction, err := e.Extract(context.Background(), textDoc(content))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if extraction.CharCount != 11 {
		t.Errorf("char count must be runes not bytes, got %d", extraction.CharCount)
	}
	if len(extraction.Chunks) != 4 {
		t.Errorf("expected 4 chunks of up to 3 runes, got %d", len(extraction.Chunks))
	}

	var rebuilt strings.Builder
	for _, chunk := range extraction.Chunks {
		rebuilt.WriteString(chunk.Text)
	}
	if rebuilt.String() != content {
		t.Error("multibyte runes must never be split")
	}
}

func TestTextExtractor_EmptyFileIsValid(t *testing.T) {
	e := NewTextExtractor(1000)

	extraction, err := e.Extract(context.Background(), textDoc(""))
	if err != nil {
		t.Fatalf("empty file must be a valid upload: %v", err)
	}
	if len(extraction.Chunks) != 0 {
		t.Errorf("expected 0 chunks, got %d", len(extraction.Chunks))
	}
	if extraction.CharCount != 0 {
		t.Errorf("expected char count 0, got %d", extraction.CharCount)
	}
}

func TestTextExtractor_InvalidUTF8Fails(t *testing.T) {
	e := NewTextExtractor(1000)
	doc := &entities.UploadedDocument{
		Filename: "binary.txt",
		Type:     entities.ContentTypeText,
		Data:     []byte{0xff, 0xfe, 0x00, 0x80},
	}

	_, err := e.Extract(context.Background(), doc)
	var extractionErr *entities.ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if extractionErr.Filename != "binary.txt" {
		t.Errorf("error must name the file, got %q", extractionErr.Filename)
	}
}

func TestTextExtractor_DefaultChunkSize(t *testing.T) {
	e := NewTextExtractor(0)
	content := strings.Repeat("x", 1500)

	extraction, err := e.Extract(context.Background(), textDoc(content))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(extraction.Chunks) != 2 {
		t.Errorf("expected default 1000-rune chunks, got %d chunks", len(extraction.Chunks))
	}
}

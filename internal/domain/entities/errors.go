package entities

import "fmt"

// ExtractionError reports malformed or text-free file content.
// It is recovered per file and surfaced as a FAILURE UploadResult.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports a declared content type outside {PDF, TEXT}.
type UnsupportedFormatError struct {
	Filename     string
	DeclaredType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q for %s", e.DeclaredType, e.Filename)
}

// EmbeddingError reports a failed embed or index write during ingestion.
// No chunks from the affected document remain indexed.
type EmbeddingError struct {
	Filename string
	Err      error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding %s: %v", e.Filename, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// WebSearchError reports a failed fallback web search. It is terminal for
// the query's web path and never retried.
type WebSearchError struct {
	Err error
}

func (e *WebSearchError) Error() string {
	return fmt.Sprintf("web search: %v", e.Err)
}

func (e *WebSearchError) Unwrap() error { return e.Err }

// ConfigurationError reports an invalid startup configuration value.
// It is fatal: the system refuses to serve queries rather than fall back
// to a default that could mask NOT_FOUND results.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

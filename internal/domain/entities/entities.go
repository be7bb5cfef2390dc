// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// ContentType is the declared format of an uploaded file.
type ContentType string

const (
	ContentTypePDF  ContentType = "PDF"
	ContentTypeText ContentType = "TEXT"
)

// UploadedDocument represents a file handed in at the upload boundary.
// It is consumed by the ingestor and discarded after chunk extraction;
// only the chunks survive, owned by the vector store.
type UploadedDocument struct {
	Filename string
	Type     ContentType
	Data     []byte
}

// Chunk is an ordered piece of text extracted from a document.
// PDF chunks carry a 1-based Page; plain-text chunks carry a rune Offset.
type Chunk struct {
	ID         string
	DocumentID string // content hash of the source document
	SourceFile string // original filename, kept for citation
	Index      int    // position within the document
	Text       string // never empty
	Page       int    // 1-based page number, 0 for non-PDF chunks
	Offset     int    // rune offset into the decoded text, 0 for PDF chunks
	Embedding  []float32
}

// UploadStatus is the per-file outcome of an ingestion attempt.
type UploadStatus string

const (
	UploadSuccess UploadStatus = "SUCCESS"
	UploadFailure UploadStatus = "FAILURE"
)

// UploadResult is the immutable per-file report returned to the caller.
// On success exactly one of PageCount/CharCount is meaningful, depending
// on the file type. On failure Error carries the underlying message.
type UploadResult struct {
	Filename       string       `json:"filename"`
	Status         UploadStatus `json:"status"`
	Type           ContentType  `json:"type"`
	PageCount      int          `json:"page_count,omitempty"`
	CharCount      int          `json:"char_count,omitempty"`
	ChunkCount     int          `json:"chunk_count,omitempty"`
	AlreadyIndexed bool         `json:"already_indexed,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// Query is one user question with a server-generated identifier that
// correlates every downstream decision (intent, retrieval, consent).
type Query struct {
	ID   string
	Text string
}

// IntentLabel is the routing category assigned to a query.
type IntentLabel string

const (
	IntentPrice    IntentLabel = "PRICE"
	IntentAdvisory IntentLabel = "ADVISORY"
	IntentGeneral  IntentLabel = "GENERAL"
)

// ScoredChunk pairs a chunk with its similarity to the query.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// RetrievalResult is the outcome of a document search.
// Found implies at least one chunk and Confidence at or above the
// configured threshold; chunks are ordered by descending similarity.
type RetrievalResult struct {
	Found      bool
	Chunks     []ScoredChunk
	Confidence float64
}

// ConsentDecision is the user's one-time answer to the web-search prompt.
type ConsentDecision string

const (
	ConsentGranted ConsentDecision = "GRANTED"
	ConsentDenied  ConsentDecision = "DENIED"
)

// Provenance tags where an answer's content came from.
type Provenance string

const (
	ProvenanceDocument  Provenance = "DOCUMENT"
	ProvenanceWeb       Provenance = "WEB"
	ProvenanceMarket    Provenance = "MARKET"
	ProvenanceNotFound  Provenance = "NOT_FOUND"
	ProvenanceWebFailed Provenance = "WEB_FAILED"
)

// Answer is the final text returned to the user for one query.
type Answer struct {
	QueryID    string     `json:"query_id"`
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
	Sources    []string   `json:"sources,omitempty"` // document names or web URLs
}

// QueryStatus reports whether a query ran to completion or suspended
// waiting for a consent decision.
type QueryStatus string

const (
	StatusAnswered        QueryStatus = "ANSWERED"
	StatusAwaitingConsent QueryStatus = "AWAITING_CONSENT"
)

// QueryOutcome is what the orchestrator hands back to the caller: either
// a final answer, or an AWAITING_CONSENT marker carrying the query ID to
// resume with at the consent boundary.
type QueryOutcome struct {
	Status  QueryStatus `json:"status"`
	QueryID string      `json:"query_id"`
	Intent  IntentLabel `json:"intent"`
	Answer  *Answer     `json:"answer,omitempty"`
}

// WebResult is what the web search collaborator returns: raw result text
// plus any source URLs it could attribute.
type WebResult struct {
	Content string
	URLs    []string
}

// Quote is a point-in-time market quote for the PRICE intent tool path.
type Quote struct {
	Symbol        string
	Price         float64
	PreviousClose float64
	Currency      string
}

package entities

import "time"

// EventKind is the stable vocabulary of observability events. The core
// emits exactly one event per ingestion step and per gate transition.
type EventKind string

const (
	EventStartup            EventKind = "startup"
	EventFileUploadReceived EventKind = "file_upload_received"
	EventFileProcessed      EventKind = "file_processed"
	EventQueryReceived      EventKind = "query_received"
	EventIntentDetected     EventKind = "intent_detected"
	EventRetrievalResult    EventKind = "retrieval_result"
	EventConsentRequested   EventKind = "consent_requested"
	EventConsentReceived    EventKind = "consent_received"
	EventWebSearchInvoked   EventKind = "web_search_invoked"
	EventAnswerProduced     EventKind = "answer_produced"
	EventError              EventKind = "error"
)

// EventLevel mirrors conventional log severities.
type EventLevel string

const (
	LevelInfo  EventLevel = "info"
	LevelWarn  EventLevel = "warn"
	LevelError EventLevel = "error"
)

// Event is one structured observability record. The sink fills Time if
// the emitter left it zero.
type Event struct {
	Time    time.Time
	Level   EventLevel
	Kind    EventKind
	Payload map[string]any
}

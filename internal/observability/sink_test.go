package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

func TestLogSink_EmitWritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(Config{Level: "info", Output: &buf})

	sink.Emit(entities.Event{
		Kind:    entities.EventQueryReceived,
		Level:   entities.LevelInfo,
		Payload: map[string]any{"query_id": "q1", "query": "what is alpha?"},
	})

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not a JSON record: %v\n%s", err, buf.String())
	}
	if record["event_kind"] != string(entities.EventQueryReceived) {
		t.Errorf("event_kind = %v", record["event_kind"])
	}
	if record["query_id"] != "q1" {
		t.Errorf("query_id = %v", record["query_id"])
	}
	if record["service"] != "finwise" {
		t.Errorf("service = %v", record["service"])
	}
	if record["level"] != "info" {
		t.Errorf("level = %v", record["level"])
	}
}

func TestLogSink_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(Config{Level: "info", Output: &buf})

	sink.Emit(entities.Event{
		Kind:    entities.EventError,
		Level:   entities.LevelError,
		Payload: map[string]any{"error": "boom"},
	})

	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("expected error level record, got %s", buf.String())
	}
}

func TestLogSink_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(Config{Level: "error", Output: &buf})

	sink.Emit(entities.Event{
		Kind:  entities.EventQueryReceived,
		Level: entities.LevelInfo,
	})

	if buf.Len() != 0 {
		t.Errorf("info event must be filtered at error level, got %s", buf.String())
	}
}

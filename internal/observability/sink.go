// Package observability renders core events as structured logs.
// It implements ports.EventSink; the core never sees zerolog directly.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/0xcro3dile/finwise-go/internal/domain/entities"
)

// Config holds sink configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // console writer for development
	Output io.Writer
}

// LogSink writes events as zerolog records: one line per event with the
// stable eventKind plus the emitter's payload fields.
type LogSink struct {
	zlog zerolog.Logger
}

// NewLogSink creates a structured event sink.
func NewLogSink(cfg Config) *LogSink {
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zlog := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("service", "finwise").
		Logger()

	return &LogSink{zlog: zlog}
}

// Logger exposes the underlying zerolog logger for infrastructure code
// that logs outside the event vocabulary (e.g. HTTP access logs).
func (s *LogSink) Logger() zerolog.Logger {
	return s.zlog
}

// Emit writes one event. Unset times default to now; unknown levels
// degrade to info rather than dropping the event.
func (s *LogSink) Emit(event entities.Event) {
	var e *zerolog.Event
	switch event.Level {
	case entities.LevelError:
		e = s.zlog.Error()
	case entities.LevelWarn:
		e = s.zlog.Warn()
	default:
		e = s.zlog.Info()
	}

	if !event.Time.IsZero() {
		e = e.Time("event_time", event.Time)
	}
	e = e.Str("event_kind", string(event.Kind))
	for k, v := range event.Payload {
		e = e.Interface(k, v)
	}
	e.Msg(string(event.Kind))
}

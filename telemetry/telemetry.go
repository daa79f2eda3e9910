// Package telemetry carries structured execution traces for pipeline runs
// and model calls.
package telemetry

import (
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"
)

// EventType categorizes telemetry events.
type EventType string

const (
	EventPipelineStart  EventType = "pipeline_start"
	EventPipelineFinish EventType = "pipeline_finish"
	EventStageStart     EventType = "stage_start"
	EventStageFinish    EventType = "stage_finish"
	EventStageError     EventType = "stage_error"
	EventModelRequest   EventType = "model_request"
	EventModelResponse  EventType = "model_response"
)

// Event captures structured telemetry data.
type Event struct {
	Type      EventType              `json:"type"`
	Stage     string                 `json:"stage,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Telemetry receives execution traces emitted by the pipeline and the
// instrumented model. Tests typically swap in lightweight collectors.
type Telemetry interface {
	Emit(event Event)
}

// Multiplex broadcasts events to multiple sinks.
type Multiplex struct {
	Sinks []Telemetry
}

// Emit forwards the event to all registered sinks.
func (m Multiplex) Emit(event Event) {
	for _, s := range m.Sinks {
		s.Emit(event)
	}
}

// JSONFile writes events as newline-delimited JSON to a file so external
// tools can tail and process the stream in real time.
type JSONFile struct {
	path string
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewJSONFile opens (or creates) the log file.
func NewJSONFile(path string) (*JSONFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONFile{
		path: path,
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Emit writes the JSON record.
func (j *JSONFile) Emit(event Event) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.enc != nil {
		_ = j.enc.Encode(event)
	}
}

// Close releases the file handle.
func (j *JSONFile) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file != nil {
		return j.file.Close()
	}
	return nil
}

// Logger emits events via the standard logger. Every stage transition becomes
// visible without extra tooling while debugging runs locally.
type Logger struct {
	Logger *log.Logger
}

// Emit logs the event.
func (t Logger) Emit(event Event) {
	logger := t.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("[%s] stage=%s session=%s meta=%v msg=%s\n", event.Type, event.Stage, event.SessionID, event.Metadata, event.Message)
}

// Nop discards all events.
type Nop struct{}

// Emit does nothing.
func (Nop) Emit(Event) {}

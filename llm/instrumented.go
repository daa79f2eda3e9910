package llm

import (
	"context"
	"time"

	"github.com/lexcodex/codeforge/telemetry"
)

// InstrumentedModel wraps a Model and emits telemetry for every call.
type InstrumentedModel struct {
	Inner     Model
	Telemetry telemetry.Telemetry
	Debug     bool
}

// NewInstrumentedModel wires a telemetry sink around an existing model.
func NewInstrumentedModel(inner Model, sink telemetry.Telemetry, debug bool) *InstrumentedModel {
	return &InstrumentedModel{Inner: inner, Telemetry: sink, Debug: debug}
}

// Chat forwards the call and records request/response events around it.
func (m *InstrumentedModel) Chat(ctx context.Context, messages []Message, options *Options) (*Response, error) {
	var promptChars int
	roles := make([]string, 0, len(messages))
	for _, msg := range messages {
		promptChars += len(msg.Content)
		roles = append(roles, msg.Role)
	}
	meta := map[string]interface{}{
		"model":         modelFromOptions(options),
		"message_count": len(messages),
		"roles":         roles,
		"prompt_chars":  promptChars,
	}
	if m.Debug && len(messages) > 0 {
		meta["last_message"] = clip(messages[len(messages)-1].Content, 1024)
	}
	m.emit(telemetry.Event{Type: telemetry.EventModelRequest, Metadata: meta})

	resp, err := m.Inner.Chat(ctx, messages, options)

	respMeta := map[string]interface{}{
		"model": modelFromOptions(options),
	}
	if err != nil {
		respMeta["error"] = err.Error()
	} else if resp != nil {
		respMeta["finish_reason"] = resp.FinishReason
		respMeta["response_chars"] = len(resp.Text)
		if resp.Usage != nil {
			respMeta["usage"] = resp.Usage
		}
		if m.Debug {
			respMeta["response_preview"] = clip(resp.Text, 1024)
		}
	}
	m.emit(telemetry.Event{Type: telemetry.EventModelResponse, Metadata: respMeta})
	return resp, err
}

func (m *InstrumentedModel) emit(event telemetry.Event) {
	if m.Telemetry == nil {
		return
	}
	event.Timestamp = time.Now()
	m.Telemetry.Emit(event)
}

func modelFromOptions(options *Options) string {
	if options == nil {
		return ""
	}
	return options.Model
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

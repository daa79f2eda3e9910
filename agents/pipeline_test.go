package agents

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/codeforge/llm"
	"github.com/lexcodex/codeforge/telemetry"
)

// scriptedModel replays canned responses in call order and records the
// system prompts it was given.
type scriptedModel struct {
	responses []string
	calls     int
	systems   []string
	failAt    int // 1-based call index that fails; 0 disables
}

func (m *scriptedModel) Chat(ctx context.Context, messages []llm.Message, options *llm.Options) (*llm.Response, error) {
	m.calls++
	if len(messages) > 0 && messages[0].Role == "system" {
		m.systems = append(m.systems, messages[0].Content)
	}
	if m.failAt != 0 && m.calls == m.failAt {
		return nil, errors.New("model unavailable")
	}
	if m.calls > len(m.responses) {
		return nil, fmt.Errorf("unexpected call %d", m.calls)
	}
	return &llm.Response{Text: m.responses[m.calls-1], FinishReason: "stop"}, nil
}

type eventCollector struct {
	events []telemetry.Event
}

func (c *eventCollector) Emit(event telemetry.Event) { c.events = append(c.events, event) }

func TestInvoke(t *testing.T) {
	model := &scriptedModel{responses: []string{"  analysis text  "}}
	agent := Agent{Name: "analyzer", SystemPrompt: "analyze", Model: "gpt-4", Temperature: 0.5}

	out, err := Invoke(context.Background(), model, agent, "problem")
	require.NoError(t, err)
	assert.Equal(t, "analysis text", out)
	assert.Equal(t, []string{"analyze"}, model.systems)
}

func TestInvokeWrapsError(t *testing.T) {
	model := &scriptedModel{failAt: 1}
	_, err := Invoke(context.Background(), model, Agent{Name: "debugger"}, "code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debugger")
}

func TestPipelineRun(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"break the problem into steps",
		"```python\ndef solve():\n    return 42\n```",
		"O(1) time, O(1) space",
		"```python\ndef solve():\n    return 42\n```",
		"```python\ndef test_solve():\n    assert solve() == 42\n```",
		"```python\ndef test_solve():\n    assert solve() == 42\n```",
	}}
	sink := &eventCollector{}
	var observed []string
	p := &Pipeline{
		Model:     model,
		Config:    DefaultConfig(),
		Telemetry: sink,
		Observer:  func(s StageResult) { observed = append(observed, s.Name) },
	}

	result, err := p.Run(context.Background(), "return the answer", "Python")
	require.NoError(t, err)
	assert.Equal(t, 6, model.calls)
	assert.Equal(t, []string{StageAnalyze, StageWrite, StageComplexity, StageDebug, StageTest, StageDebugTests}, observed)
	assert.Equal(t, "def solve():\n    return 42", result.FinalCode)
	assert.Equal(t, "def test_solve():\n    assert solve() == 42", result.Tests)
	assert.Equal(t, 2, result.Metrics.LinesOfCode)
	assert.Equal(t, 1, result.Metrics.CyclomaticComplexity)
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.FinishedAt.IsZero())

	// pipeline_start first, pipeline_finish last
	require.NotEmpty(t, sink.events)
	assert.Equal(t, telemetry.EventPipelineStart, sink.events[0].Type)
	assert.Equal(t, telemetry.EventPipelineFinish, sink.events[len(sink.events)-1].Type)
}

func TestPipelineRunWithOptimize(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"analysis",
		"```python\nx = 1\n```",
		"complexity",
		"```python\nx = 1\n```",
		"```python\nassert x == 1\n```",
		"```python\nassert x == 1\n```",
		"```python\nx = 1  # optimized\n```",
		"still O(1)",
	}}
	p := &Pipeline{Model: model, Config: DefaultConfig(), Optimize: true}

	result, err := p.Run(context.Background(), "assign", "Python")
	require.NoError(t, err)
	assert.Equal(t, 8, model.calls)
	assert.Equal(t, "x = 1  # optimized", result.FinalCode)
	assert.Equal(t, StageOptimizeComplexity, result.Stages[len(result.Stages)-1].Name)
}

func TestPipelineAbortsOnStageError(t *testing.T) {
	model := &scriptedModel{responses: []string{"analysis"}, failAt: 2}
	sink := &eventCollector{}
	p := &Pipeline{Model: model, Config: DefaultConfig(), Telemetry: sink}

	_, err := p.Run(context.Background(), "problem", "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), StageWrite)
	assert.Equal(t, 2, model.calls, "no stage runs after a failure")

	var sawError bool
	for _, event := range sink.events {
		if event.Type == telemetry.EventStageError {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestPipelineSkipsComplexityWhenDisabled(t *testing.T) {
	model := &scriptedModel{responses: []string{
		"analysis",
		"```go\npackage main\n```",
		"```go\npackage main\n```",
		"```go\npackage main_test\n```",
		"```go\npackage main_test\n```",
	}}
	cfg := DefaultConfig()
	cfg.Features.ComplexityAnalysis = false
	p := &Pipeline{Model: model, Config: cfg}

	result, err := p.Run(context.Background(), "problem", "Go")
	require.NoError(t, err)
	assert.Equal(t, 5, model.calls)
	for _, stage := range result.Stages {
		assert.NotEqual(t, StageComplexity, stage.Name)
	}
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexcodex/codeforge/agents"
)

func testPipeline(optimize bool) *agents.Pipeline {
	return &agents.Pipeline{
		Config:   agents.DefaultConfig(),
		Optimize: optimize,
	}
}

func TestExpectedStagesDefaultRun(t *testing.T) {
	stages := expectedStages(testPipeline(false))
	assert.Equal(t, []string{
		agents.StageAnalyze,
		agents.StageWrite,
		agents.StageComplexity,
		agents.StageDebug,
		agents.StageTest,
		agents.StageDebugTests,
	}, stages)
}

func TestExpectedStagesWithOptimize(t *testing.T) {
	stages := expectedStages(testPipeline(true))
	require.Len(t, stages, 8)
	assert.Equal(t, agents.StageOptimize, stages[6])
	assert.Equal(t, agents.StageOptimizeComplexity, stages[7])
}

func TestExpectedStagesComplexityDisabled(t *testing.T) {
	pipeline := testPipeline(true)
	pipeline.Config.Features.ComplexityAnalysis = false
	stages := expectedStages(pipeline)
	assert.NotContains(t, stages, agents.StageComplexity)
	assert.NotContains(t, stages, agents.StageOptimizeComplexity)
	assert.Contains(t, stages, agents.StageOptimize)
}

func TestUpdateMarksStagesComplete(t *testing.T) {
	m := NewModel(testPipeline(false), "sum a list", "python")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)
	require.True(t, m.ready)

	updated, cmd := m.Update(stageCompleteMsg{Name: agents.StageAnalyze, Output: "analysis"})
	m = updated.(Model)
	assert.True(t, m.done[agents.StageAnalyze])
	assert.Equal(t, 1, m.current)
	assert.NotNil(t, cmd)
}

func TestUpdateQuitsOnPipelineDone(t *testing.T) {
	m := NewModel(testPipeline(false), "sum a list", "python")
	result := &agents.PipelineResult{FinalCode: "print(1)"}
	updated, cmd := m.Update(pipelineDoneMsg{result: result})
	m = updated.(Model)
	assert.Equal(t, result, m.result)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdateQuitsOnKeypress(t *testing.T) {
	m := NewModel(testPipeline(false), "sum a list", "python")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

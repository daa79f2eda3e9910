// Package tui renders pipeline progress in the terminal: a stage checklist
// on the left, the most recent stage output in a viewport below.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexcodex/codeforge/agents"
)

// Run executes the pipeline under a Bubble Tea program and returns the
// result once the run (or the user) finishes.
func Run(ctx context.Context, pipeline *agents.Pipeline, problem, language string) (*agents.PipelineResult, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	model := NewModel(pipeline, problem, language)
	model.ctx = ctx
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("unexpected final model type")
	}
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.result, nil
}

type stageCompleteMsg agents.StageResult

type pipelineDoneMsg struct {
	result *agents.PipelineResult
}

type pipelineErrMsg struct {
	err error
}

// Model drives the stage checklist and output viewport.
type Model struct {
	ctx      context.Context
	pipeline *agents.Pipeline
	problem  string
	language string

	expected []string
	done     map[string]bool
	current  int

	spinner  spinner.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	events chan tea.Msg
	result *agents.PipelineResult
	runErr error
}

// NewModel builds the initial TUI state for one pipeline run.
func NewModel(pipeline *agents.Pipeline, problem, language string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		pipeline: pipeline,
		problem:  problem,
		language: language,
		expected: expectedStages(pipeline),
		done:     make(map[string]bool),
		spinner:  sp,
		events:   make(chan tea.Msg, 16),
	}
}

// expectedStages lists the stage names this run will produce, in order.
func expectedStages(pipeline *agents.Pipeline) []string {
	stages := []string{agents.StageAnalyze, agents.StageWrite}
	complexity := pipeline.Config != nil && pipeline.Config.Features.ComplexityAnalysis
	if complexity {
		stages = append(stages, agents.StageComplexity)
	}
	stages = append(stages, agents.StageDebug, agents.StageTest, agents.StageDebugTests)
	if pipeline.Optimize && (pipeline.Config == nil || pipeline.Config.Features.Optimization) {
		stages = append(stages, agents.StageOptimize)
		if complexity {
			stages = append(stages, agents.StageOptimizeComplexity)
		}
	}
	return stages
}

// Init starts the spinner and kicks off the pipeline run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startPipeline(), m.waitForEvent())
}

// startPipeline runs the pipeline on a goroutine, streaming stage results
// into the event channel.
func (m Model) startPipeline() tea.Cmd {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	pipeline := m.pipeline
	events := m.events
	problem := m.problem
	language := m.language
	return func() tea.Msg {
		pipeline.Observer = func(stage agents.StageResult) {
			events <- stageCompleteMsg(stage)
		}
		result, err := pipeline.Run(ctx, problem, language)
		if err != nil {
			events <- pipelineErrMsg{err: err}
		} else {
			events <- pipelineDoneMsg{result: result}
		}
		return nil
	}
}

// waitForEvent delivers the next pipeline event to Update.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		return <-events
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		viewportHeight := msg.Height - len(m.expected) - 6
		if viewportHeight < 3 {
			viewportHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = viewportHeight
		}

	case stageCompleteMsg:
		m.done[msg.Name] = true
		if m.current < len(m.expected)-1 {
			m.current++
		}
		body := msg.Output
		if msg.Code != "" {
			body = msg.Code
		}
		if m.ready {
			m.viewport.SetContent(body)
			m.viewport.GotoTop()
		}
		return m, m.waitForEvent()

	case pipelineDoneMsg:
		m.result = msg.result
		if m.ready && msg.result != nil {
			m.viewport.SetContent(msg.result.FinalCode)
			m.viewport.GotoTop()
		}
		return m, tea.Quit

	case pipelineErrMsg:
		m.runErr = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

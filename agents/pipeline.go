package agents

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/lexcodex/codeforge/codetext"
	"github.com/lexcodex/codeforge/llm"
	"github.com/lexcodex/codeforge/telemetry"
)

// Stage names in pipeline order.
const (
	StageAnalyze            = "analyze"
	StageWrite              = "write"
	StageComplexity         = "complexity"
	StageDebug              = "debug"
	StageTest               = "test"
	StageDebugTests         = "debug_tests"
	StageOptimize           = "optimize"
	StageOptimizeComplexity = "optimize_complexity"
)

// StageResult records one completed pipeline stage. Code holds the extracted
// source payload for code-bearing stages and is empty for analysis stages.
type StageResult struct {
	Name   string
	Role   string
	Output string
	Code   string
}

// PipelineResult accumulates the ordered stage outputs of a full run.
type PipelineResult struct {
	ID         string
	Problem    string
	Language   string
	Stages     []StageResult
	FinalCode  string
	Tests      string
	Metrics    codetext.ComplexityMetrics
	StartedAt  time.Time
	FinishedAt time.Time
}

// Pipeline drives the fixed agent sequence: analyze, write, complexity,
// debug, test, debug tests, and optionally optimize with a re-analysis.
// There is no branching, no retries; the first failed stage aborts the run.
type Pipeline struct {
	Model     llm.Model
	Config    *GlobalConfig
	Telemetry telemetry.Telemetry
	Optimize  bool

	// Observer, when set, receives each stage result as it completes.
	Observer func(StageResult)
}

// Run executes the pipeline for a problem statement and target language.
func (p *Pipeline) Run(ctx context.Context, problem, language string) (*PipelineResult, error) {
	if p.Config == nil {
		return nil, fmt.Errorf("pipeline: config required")
	}
	result := &PipelineResult{
		ID:        newID(),
		Problem:   problem,
		Language:  language,
		StartedAt: time.Now(),
	}
	p.emit(telemetry.EventPipelineStart, "", result.ID, map[string]interface{}{
		"language": language,
	})

	analysis, err := p.runStage(ctx, result, StageAnalyze, RoleProblemAnalyzer,
		fmt.Sprintf("Analyze this problem for %s: %s", language, problem), false)
	if err != nil {
		return nil, err
	}

	code, err := p.runStage(ctx, result, StageWrite, RoleCodeWriter,
		fmt.Sprintf("Write %s code for this task:\n\n%s", language, analysis), true)
	if err != nil {
		return nil, err
	}

	if p.Config.Features.ComplexityAnalysis {
		if _, err := p.runStage(ctx, result, StageComplexity, RoleComplexityAnalyzer,
			fmt.Sprintf("Analyze the complexity of this code:\n\n%s", code), false); err != nil {
			return nil, err
		}
	}

	debugged, err := p.runStage(ctx, result, StageDebug, RoleDebugger,
		fmt.Sprintf("Fix all issues in this code:\n\n%s", code), true)
	if err != nil {
		return nil, err
	}

	tests, err := p.runStage(ctx, result, StageTest, RoleTester,
		fmt.Sprintf("Write valid %s unit tests:\n\n%s", language, debugged), true)
	if err != nil {
		return nil, err
	}

	fixedTests, err := p.runStage(ctx, result, StageDebugTests, RoleDebugger,
		fmt.Sprintf("Fix any syntax errors in these test cases and return corrected code:\n\n%s", tests), true)
	if err != nil {
		return nil, err
	}
	result.Tests = fixedTests

	final := debugged
	if p.Optimize && p.Config.Features.Optimization {
		optimized, err := p.runStage(ctx, result, StageOptimize, RoleOptimizer,
			fmt.Sprintf("Optimize the following %s code:\n\n%s", language, debugged), true)
		if err != nil {
			return nil, err
		}
		if p.Config.Features.ComplexityAnalysis {
			if _, err := p.runStage(ctx, result, StageOptimizeComplexity, RoleComplexityAnalyzer,
				fmt.Sprintf("Analyze the complexity of this code:\n\n%s", optimized), false); err != nil {
				return nil, err
			}
		}
		final = optimized
	}

	result.FinalCode = final
	result.Metrics = codetext.EstimateComplexity(final)
	result.FinishedAt = time.Now()
	p.emit(telemetry.EventPipelineFinish, "", result.ID, map[string]interface{}{
		"stages":                len(result.Stages),
		"cyclomatic_complexity": result.Metrics.CyclomaticComplexity,
	})
	return result, nil
}

// runStage invokes one agent and records the outcome. Code-bearing stages
// return the extracted source rather than the raw response.
func (p *Pipeline) runStage(ctx context.Context, result *PipelineResult, name, role, message string, extractCode bool) (string, error) {
	p.emit(telemetry.EventStageStart, name, result.ID, nil)
	agent := p.Config.AgentFor(role)
	output, err := Invoke(ctx, p.Model, agent, message)
	if err != nil {
		p.emit(telemetry.EventStageError, name, result.ID, map[string]interface{}{
			"error": err.Error(),
		})
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	stage := StageResult{Name: name, Role: role, Output: output}
	returned := output
	if extractCode {
		stage.Code = codetext.Extract(output, result.Language)
		returned = stage.Code
	}
	result.Stages = append(result.Stages, stage)
	p.emit(telemetry.EventStageFinish, name, result.ID, map[string]interface{}{
		"output_chars": len(output),
	})
	if p.Observer != nil {
		p.Observer(stage)
	}
	return returned, nil
}

func (p *Pipeline) emit(eventType telemetry.EventType, stage, sessionID string, metadata map[string]interface{}) {
	if p.Telemetry == nil {
		return
	}
	p.Telemetry.Emit(telemetry.Event{
		Type:      eventType,
		Stage:     stage,
		SessionID: sessionID,
		Timestamp: time.Now(),
		Metadata:  metadata,
	})
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

// Package agents defines the role-specialized agents and the fixed pipeline
// that drives them. An agent is configuration data, not behavior: every role
// issues the same single blocking chat call and differs only in its system
// prompt, model, and temperature.
package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexcodex/codeforge/llm"
)

// Agent bundles the configuration for a single role.
type Agent struct {
	Name         string
	SystemPrompt string
	Model        string
	Temperature  float64
}

// Invoke issues one chat exchange against the model on behalf of the agent
// and returns the trimmed response text.
func Invoke(ctx context.Context, model llm.Model, agent Agent, userMessage string) (string, error) {
	if model == nil {
		return "", fmt.Errorf("%s: no model configured", agent.Name)
	}
	messages := []llm.Message{
		{Role: "system", Content: agent.SystemPrompt},
		{Role: "user", Content: userMessage},
	}
	resp, err := model.Chat(ctx, messages, &llm.Options{
		Model:       agent.Model,
		Temperature: agent.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", agent.Name, err)
	}
	return strings.TrimSpace(resp.Text), nil
}

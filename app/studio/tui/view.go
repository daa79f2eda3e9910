package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View composes the stage checklist and the latest stage output.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := titleStyle.Render("codeforge") + helpStyle.Render("  "+m.language)
	checklist := m.renderStages()
	output := outputBoxStyle.Width(m.viewport.Width).Render(m.viewport.View())
	help := helpStyle.Render("q/ctrl+c: quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, checklist, output, help)
}

func (m Model) renderStages() string {
	lines := make([]string, 0, len(m.expected))
	for i, name := range m.expected {
		label := stageLabel(name)
		switch {
		case m.done[name]:
			lines = append(lines, completedStyle.Render("  ✓ "+label))
		case i == m.current && m.result == nil && m.runErr == nil:
			lines = append(lines, inProgressStyle.Render("  "+m.spinner.View()+" "+label))
		default:
			lines = append(lines, pendingStyle.Render("  · "+label))
		}
	}
	return strings.Join(lines, "\n")
}

func stageLabel(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneAllocation:
		content = m.allocationModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	contentContainer := lipgloss.NewStyle().
		Height(max(0, m.height-chromeHeight)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		contentContainer,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("HOLDi - Savings Simulator")
	breadcrumb := SubtitleStyle.Render(fmt.Sprintf("%s / %s", m.currentScene, m.plan.DisplayName()))
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb)
}

// renderStatusBar renders the key bindings and the last status message
func (m Model) renderStatusBar() string {
	statusText := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.status != "" {
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(m.status) - 4
		statusText += strings.Repeat(" ", max(1, width)) + StatusKeyStyle.Render(m.status)
	}
	return StatusBarStyle.Width(m.width).Render(statusText)
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err),
	)
	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("HOLDi - Long-term Savings Simulator"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString(`

PARAMETERS:
  ↑/↓        Select a slider
  ←/→ or -/+ Adjust the value; the projection updates at once
  1/2/3      Conservative / Balanced / Dynamic profile

ALLOCATION:
  ←/→        Move the selected asset by one point
  enter      Type an exact percentage, esc to cancel
  d          Return to the profile allocation

Moving salary, age or savings rate derives every simulation
parameter again from the investor details.`)
	return BorderStyle.Render(b.String())
}

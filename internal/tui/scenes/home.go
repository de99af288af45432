package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	plan     *domain.Plan
	report   *domain.ProjectionReport
	planPath string
	width    int
	height   int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetPlan updates the plan shown on the dashboard
func (m *HomeModel) SetPlan(plan *domain.Plan, planPath string) {
	m.plan = plan
	m.planPath = planPath
}

// SetReport updates the latest projection
func (m *HomeModel) SetReport(report *domain.ProjectionReport) {
	m.report = report
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// Home scene is passive - navigation handled by parent
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("HOLDi - Long-term Savings Simulator"))
	content.WriteString("\n\n")

	if m.plan == nil {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Loading plan..."))
		return tuistyles.BorderStyle.Render(content.String())
	}

	content.WriteString(m.renderInvestor())
	content.WriteString("\n")
	content.WriteString(m.renderHeadline())
	content.WriteString("\n")
	content.WriteString(m.renderQuickActions())

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *HomeModel) renderInvestor() string {
	var content strings.Builder
	content.WriteString(sectionTitle("Investor"))
	content.WriteString("\n")

	inv := m.plan.Investor
	rows := [][2]string{
		{"Plan", m.plan.DisplayName()},
		{"Net salary", tuistyles.FormatCurrency(inv.MonthlyNetSalary) + " / month"},
		{"Age", fmt.Sprintf("%d (bracket %s)", inv.Age, domain.BracketForAge(inv.Age))},
		{"Savings rate", fmt.Sprintf("%.0f%%", inv.SavingsRatePct)},
		{"Profile", m.plan.Profile.DisplayName()},
	}
	if len(m.plan.CustomAllocation) > 0 {
		rows = append(rows, [2]string{"Allocation", "custom"})
	}
	if m.planPath != "" {
		rows = append(rows, [2]string{"File", m.planPath})
	}
	for _, r := range rows {
		content.WriteString(labelValue(r[0], r[1]))
		content.WriteString("\n")
	}
	return content.String()
}

func (m *HomeModel) renderHeadline() string {
	var content strings.Builder
	content.WriteString(sectionTitle("Projection"))
	content.WriteString("\n")

	if m.report == nil {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("  Calculating..."))
		content.WriteString("\n")
		return content.String()
	}

	s := m.report.Summary
	content.WriteString(labelValue("Horizon", fmt.Sprintf("%d years", m.report.Parameters.Years)))
	content.WriteString("\n")
	content.WriteString(labelValue("Annual return", tuistyles.FormatPercent(m.report.WeightedAnnualReturn)))
	content.WriteString("\n")
	content.WriteString(labelValue("Future value", tuistyles.FormatCurrency(s.FutureValue.InexactFloat64())))
	content.WriteString("\n")
	content.WriteString(labelValue("Monthly income", tuistyles.FormatCurrency(s.MonthlyIncome.InexactFloat64())))
	content.WriteString("\n")
	return content.String()
}

// renderQuickActions shows available navigation shortcuts
func (m *HomeModel) renderQuickActions() string {
	var content strings.Builder
	content.WriteString(sectionTitle("Quick Actions"))
	content.WriteString("\n")

	keyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground)

	actions := []struct {
		key  string
		desc string
	}{
		{"p", "Edit investor and simulation parameters"},
		{"a", "Edit the asset allocation"},
		{"r", "View the projection"},
		{"c", "Compare investor profiles"},
		{"ctrl+s", "Save the plan"},
		{"?", "Show help"},
	}
	for _, action := range actions {
		content.WriteString("  ")
		content.WriteString(keyStyle.Render(fmt.Sprintf("%-6s", action.key)))
		content.WriteString(descStyle.Render("  " + action.desc))
		content.WriteString("\n")
	}
	return content.String()
}

func sectionTitle(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary).Render(s)
}

func labelValue(label, value string) string {
	return "  " + tuistyles.ParameterLabelStyle.Render(fmt.Sprintf("%-16s", label)) +
		tuistyles.ParameterValueStyle.Render(value)
}

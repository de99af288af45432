package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/holdi/holdi/internal/compare"
	"github.com/holdi/holdi/internal/tui/tuimsg"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

var compareKeys = struct {
	Run key.Binding
}{
	Run: key.NewBinding(key.WithKeys("enter", " ")),
}

// CompareModel shows the plan side by side under every investor profile
type CompareModel struct {
	set       *compare.ComparisonSet
	err       error
	comparing bool
	width     int
	height    int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

// SetComparing marks a comparison as running
func (m *CompareModel) SetComparing() {
	m.comparing = true
	m.err = nil
}

// SetResults stores a finished comparison
func (m *CompareModel) SetResults(set *compare.ComparisonSet, err error) {
	m.comparing = false
	m.set = set
	m.err = err
}

// Results returns the last comparison, or nil
func (m *CompareModel) Results() *compare.ComparisonSet {
	return m.set
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, compareKeys.Run) && !m.comparing {
		return m, func() tea.Msg { return tuimsg.ComparisonRequestedMsg{} }
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	switch {
	case m.comparing:
		return m.renderLoading()
	case m.err != nil:
		return tuistyles.ErrorStyle.Render("Comparison failed: " + m.err.Error())
	case m.set == nil:
		return tuistyles.BorderStyle.Render("No comparison yet.\n\nPress enter to compare the three investor profiles.")
	}
	return m.renderComparison()
}

// renderLoading shows loading state during comparison
func (m *CompareModel) renderLoading() string {
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render("Comparing Profiles..."))
	content.WriteString("\n\n")
	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("⠋ Running projections"))
	return tuistyles.BorderStyle.Render(content.String())
}

// renderComparison shows the comparison results
func (m *CompareModel) renderComparison() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("Profile Comparison"))
	content.WriteString("\n")
	content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s • base: %s", m.set.PlanName, m.set.BaseScenarioName)))
	content.WriteString("\n\n")

	content.WriteString(m.renderComparisonTable())
	content.WriteString("\n")

	if len(m.set.Recommendations) > 0 {
		content.WriteString(sectionTitle("Recommendations"))
		content.WriteString("\n")
		for _, rec := range m.set.Recommendations {
			content.WriteString(tuistyles.InfoStyle.Render("• " + rec))
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}

	content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("enter refresh • esc back"))
	return tuistyles.BorderStyle.Render(content.String())
}

type compareMetric struct {
	label string
	value func(compare.ComparisonResult) string
	delta func(compare.ComparisonResult) decimal.Decimal
}

var compareMetrics = []compareMetric{
	{
		label: "Annual return",
		value: func(r compare.ComparisonResult) string { return r.AnnualReturnPct.StringFixed(2) + "%" },
		delta: func(r compare.ComparisonResult) decimal.Decimal { return r.ReturnDiffFromBase },
	},
	{
		label: "Future value",
		value: func(r compare.ComparisonResult) string {
			return tuistyles.FormatCurrency(r.FutureValue.InexactFloat64())
		},
		delta: func(r compare.ComparisonResult) decimal.Decimal { return r.FutureValueDiffFromBase },
	},
	{
		label: "Capital gain",
		value: func(r compare.ComparisonResult) string {
			return tuistyles.FormatCurrency(r.CapitalGain.InexactFloat64())
		},
	},
	{
		label: "Invested",
		value: func(r compare.ComparisonResult) string {
			return tuistyles.FormatCurrency(r.InvestedTotal.InexactFloat64())
		},
	},
	{
		label: "Monthly income",
		value: func(r compare.ComparisonResult) string {
			return tuistyles.FormatCurrency(r.MonthlyIncome.InexactFloat64())
		},
		delta: func(r compare.ComparisonResult) decimal.Decimal { return r.MonthlyIncomeDiffFromBase },
	},
}

// renderComparisonTable lays out one column per run, the base first
func (m *CompareModel) renderComparisonTable() string {
	const metricWidth = 16
	const colWidth = 18

	results := m.set.All()
	var table strings.Builder

	table.WriteString(tuistyles.TableHeaderStyle.Render(padRight("", metricWidth)))
	for i, r := range results {
		name := r.ScenarioName
		if i == 0 {
			name += " *"
		}
		table.WriteString(" ")
		table.WriteString(tuistyles.TableHeaderStyle.Render(padRight(truncate(name, colWidth), colWidth)))
	}
	table.WriteString("\n")
	table.WriteString(strings.Repeat("─", metricWidth+len(results)*(colWidth+1)))
	table.WriteString("\n")

	for _, metric := range compareMetrics {
		table.WriteString(tuistyles.MetricLabelStyle.Render(padRight(metric.label, metricWidth)))
		for i, r := range results {
			cell := padRight(metric.value(r), colWidth)
			style := tuistyles.TableCellStyle
			if i > 0 && metric.delta != nil {
				d := metric.delta(r)
				if d.IsPositive() {
					style = tuistyles.MetricPositiveStyle
				} else if d.IsNegative() {
					style = tuistyles.MetricNegativeStyle
				}
			}
			table.WriteString(" ")
			table.WriteString(style.Render(cell))
		}
		table.WriteString("\n")
	}

	table.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render("* current plan"))
	table.WriteString("\n")
	return table.String()
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

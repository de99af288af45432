package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/tui/components"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

// tableRows is the number of years the yearly table shows at once.
const tableRows = 8

var resultsKeys = struct {
	Up, Down key.Binding
}{
	Up:   key.NewBinding(key.WithKeys("up", "k")),
	Down: key.NewBinding(key.WithKeys("down", "j")),
}

// ResultsModel shows the projection chart and its headline figures
type ResultsModel struct {
	report *domain.ProjectionReport
	err    error
	offset int
	width  int
	height int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetReport updates the projection to display. A non-nil err replaces the
// figures with the error.
func (m *ResultsModel) SetReport(report *domain.ProjectionReport, err error) {
	m.err = err
	if err != nil {
		return
	}
	m.report = report
	if m.offset > m.maxOffset() {
		m.offset = m.maxOffset()
	}
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update scrolls the yearly table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.report == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, resultsKeys.Up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(keyMsg, resultsKeys.Down):
		if m.offset < m.maxOffset() {
			m.offset++
		}
	}
	return m, nil
}

func (m *ResultsModel) maxOffset() int {
	if m.report == nil {
		return 0
	}
	n := m.report.Result.Years() - tableRows
	if n < 0 {
		return 0
	}
	return n
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.err != nil {
		return tuistyles.ErrorStyle.Render("Projection failed: " + m.err.Error())
	}
	if m.report == nil {
		return tuistyles.BorderStyle.Render("No projection yet.\n\nEdit the plan from the Parameters screen (press 'p').")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		"",
		m.renderChart(),
		"",
		m.renderKeyMetrics(),
		"",
		m.renderYearTable(),
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("↑/↓ scroll years • p parameters • a allocation • c compare"),
	)
}

func (m *ResultsModel) renderHeader() string {
	allocation := m.report.Profile.DisplayName() + " profile"
	if m.report.CustomAllocation {
		allocation = "custom allocation"
	}
	subtitle := fmt.Sprintf("%s • age %d • %s • %d years",
		m.report.Name, m.report.Age, allocation, m.report.Parameters.Years)

	returnLine := tuistyles.MetricLabelStyle.Render("Estimated annual return: ") +
		tuistyles.MetricValueStyle.Render(tuistyles.FormatPercent(m.report.WeightedAnnualReturn))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("Projection"),
		tuistyles.SubtitleStyle.Render(subtitle),
		returnLine,
	)
}

// renderChart draws the stacked principal / contributions / earnings areas
func (m *ResultsModel) renderChart() string {
	points := m.report.ChartSeries()
	if len(points) == 0 {
		return tuistyles.InfoStyle.Render("Nothing to chart over a zero-year horizon.")
	}

	principal := make([]float64, len(points))
	invested := make([]float64, len(points))
	total := make([]float64, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		principal[i] = p.Principal
		invested[i] = p.Invested
		total[i] = p.Total
		labels[i] = fmt.Sprintf("%d", p.Year)
	}

	width := 72
	if m.width > 20 && m.width-4 < width {
		width = m.width - 4
	}

	return components.NewASCIIChart("").
		WithStacked(true).
		WithSize(width, 10).
		WithLabels(labels).
		WithXAxisLabel("years").
		AddSeries("Principal", principal, tuistyles.ColorChartLine1).
		AddSeries("Contributions", invested, tuistyles.ColorChartLine2).
		AddSeries("Earnings", total, tuistyles.ColorChartLine3).
		Render()
}

// renderKeyMetrics renders the four headline figures as cards
func (m *ResultsModel) renderKeyMetrics() string {
	s := m.report.Summary
	gain := components.NewMetricCard("Capital gain", tuistyles.FormatCurrency(s.CapitalGain.InexactFloat64()))
	if invested := s.InvestedTotal.InexactFloat64(); invested > 0 {
		gain.WithChange(tuistyles.FormatPercent(s.CapitalGain.InexactFloat64()/invested)+" of invested", !s.CapitalGain.IsNegative())
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Future value", tuistyles.FormatCurrency(s.FutureValue.InexactFloat64())).
			WithNote(fmt.Sprintf("after %d years", m.report.Parameters.Years)),
		gain,
		components.NewMetricCard("Invested", tuistyles.FormatCurrency(s.InvestedTotal.InexactFloat64())),
		components.NewMetricCard("Monthly income", tuistyles.FormatCurrency(s.MonthlyIncome.InexactFloat64())),
	}
	columns := 4
	if m.width > 0 && m.width < 100 {
		columns = 2
	}
	return components.MetricGrid(cards, columns)
}

// renderYearTable renders a scrollable window of simulated years
func (m *ResultsModel) renderYearTable() string {
	r := m.report.Result
	if r.Years() == 0 {
		return ""
	}

	var content strings.Builder
	header := fmt.Sprintf("%-6s %14s %14s %14s %14s", "Year", "Contributions", "Earnings", "Balance", "Withdrawn")
	content.WriteString(tuistyles.TableHeaderStyle.Render(header))
	content.WriteString("\n")

	end := m.offset + tableRows
	if end > r.Years() {
		end = r.Years()
	}
	for y := m.offset; y < end; y++ {
		row := fmt.Sprintf("%-6d %14s %14s %14s %14s", y+1,
			tuistyles.FormatCurrency(r.Invested[y]),
			tuistyles.FormatCurrency(r.Earnings[y]),
			tuistyles.FormatCurrency(r.Balances[y]),
			tuistyles.FormatCurrency(r.Withdrawals[y]))
		content.WriteString(tuistyles.TableCellStyle.Render(row))
		content.WriteString("\n")
	}
	if r.Years() > tableRows {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).
			Render(fmt.Sprintf("years %d-%d of %d", m.offset+1, end, r.Years())))
	}
	return tuistyles.BorderStyle.Render(content.String())
}

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

const defaultCardWidth = 22

// MetricCard is a bordered headline figure with an optional signed change
// line and a muted note.
type MetricCard struct {
	Label  string
	Value  string
	Change string
	Gain   bool
	Note   string
	Width  int
}

func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: defaultCardWidth}
}

// WithChange adds a change line, green with an up arrow when gain is true.
func (m *MetricCard) WithChange(change string, gain bool) *MetricCard {
	m.Change = change
	m.Gain = gain
	return m
}

func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

func (m *MetricCard) lines() []string {
	lines := []string{
		tuistyles.MetricLabelStyle.Render(m.Label),
		tuistyles.MetricValueStyle.Render(m.Value),
	}
	if m.Change != "" {
		lines = append(lines, tuistyles.MetricTrendStyle(m.Gain).Render(tuistyles.TrendIndicator(m.Gain)+" "+m.Change))
	}
	if m.Note != "" {
		lines = append(lines, tuistyles.SubtitleStyle.Render(m.Note))
	}
	return lines
}

func (m *MetricCard) Render() string {
	width := m.Width
	if width <= 0 {
		width = defaultCardWidth
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(width).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, m.lines()...))
}

// MetricGrid lays cards out left to right, wrapping after columns cards.
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	columns = max(columns, 1)

	rows := make([]string, 0, (len(cards)+columns-1)/columns)
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, c.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package scenes

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/tui/tuimsg"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

// allocationStep is the ←/→ adjustment, one percentage point.
const allocationStep = 0.01

// sumTolerance is how far the allocation may drift from 100% before the
// scene warns about it.
const sumTolerance = 0.02

var allocationKeys = struct {
	Up, Down, Left, Right, Edit, Cancel, Defaults key.Binding
}{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Left:     key.NewBinding(key.WithKeys("left", "-")),
	Right:    key.NewBinding(key.WithKeys("right", "+", "=")),
	Edit:     key.NewBinding(key.WithKeys("enter")),
	Cancel:   key.NewBinding(key.WithKeys("esc")),
	Defaults: key.NewBinding(key.WithKeys("d")),
}

// AllocationModel edits the per-asset fractions of the plan's allocation
type AllocationModel struct {
	catalog    domain.Catalog
	assets     []string
	allocation domain.AllocationMap
	custom     bool
	cursor     int

	editing bool
	input   textinput.Model
	err     error

	width  int
	height int
}

// NewAllocationModel creates a new allocation scene model
func NewAllocationModel() *AllocationModel {
	ti := textinput.New()
	ti.Placeholder = "0.00"
	ti.CharLimit = 8
	ti.Width = 10
	ti.Prompt = "% "
	return &AllocationModel{input: ti}
}

// SetAllocation loads the allocation currently applied to the plan. custom
// reports whether it was edited by hand.
func (m *AllocationModel) SetAllocation(catalog domain.Catalog, allocation domain.AllocationMap, custom bool) {
	m.catalog = catalog
	m.allocation = allocation.Clone()
	m.custom = custom
	m.assets = catalog.Assets()

	known := make(map[string]bool, len(m.assets))
	for _, a := range m.assets {
		known[a] = true
	}
	var extra []string
	for a := range m.allocation {
		if !known[a] {
			extra = append(extra, a)
		}
	}
	sort.Strings(extra)
	m.assets = append(m.assets, extra...)

	if m.cursor >= len(m.assets) {
		m.cursor = 0
	}
}

// Allocation returns a copy of the allocation being edited
func (m *AllocationModel) Allocation() domain.AllocationMap {
	return m.allocation.Clone()
}

// Editing reports whether the exact-value input has focus
func (m *AllocationModel) Editing() bool {
	return m.editing
}

// SetSize updates the scene dimensions
func (m *AllocationModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the allocation scene
func (m *AllocationModel) Update(msg tea.Msg) (*AllocationModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m.handleEditKey(keyMsg)
	}
	if len(m.assets) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, allocationKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, allocationKeys.Down):
		if m.cursor < len(m.assets)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, allocationKeys.Left):
		return m, m.adjust(-allocationStep)
	case key.Matches(keyMsg, allocationKeys.Right):
		return m, m.adjust(allocationStep)
	case key.Matches(keyMsg, allocationKeys.Edit):
		m.editing = true
		m.err = nil
		m.input.SetValue(strconv.FormatFloat(m.allocation[m.assets[m.cursor]]*100, 'f', 2, 64))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(keyMsg, allocationKeys.Defaults):
		if !m.custom {
			return m, nil
		}
		m.custom = false
		return m, func() tea.Msg { return tuimsg.AllocationChangedMsg{} }
	}
	return m, nil
}

func (m *AllocationModel) handleEditKey(msg tea.KeyMsg) (*AllocationModel, tea.Cmd) {
	switch {
	case key.Matches(msg, allocationKeys.Cancel):
		m.stopEditing()
		return m, nil
	case key.Matches(msg, allocationKeys.Edit):
		pct, err := parsePercent(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.stopEditing()
		return m, m.set(m.assets[m.cursor], pct/100)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *AllocationModel) stopEditing() {
	m.editing = false
	m.err = nil
	m.input.Blur()
	m.input.Reset()
}

func (m *AllocationModel) adjust(delta float64) tea.Cmd {
	asset := m.assets[m.cursor]
	return m.set(asset, m.allocation[asset]+delta)
}

// set stores a fraction clamped to [0, 1] with two decimals of percent and
// emits the edited allocation.
func (m *AllocationModel) set(asset string, fraction float64) tea.Cmd {
	fraction = math.Round(math.Max(0, math.Min(1, fraction))*10000) / 10000
	if m.allocation == nil {
		m.allocation = domain.AllocationMap{}
	}
	if current, ok := m.allocation[asset]; ok && current == fraction {
		return nil
	}
	m.allocation[asset] = fraction
	m.custom = true
	allocation := m.allocation.Clone()
	return func() tea.Msg {
		return tuimsg.AllocationChangedMsg{Allocation: allocation}
	}
}

// parsePercent reads a percentage typed with a dot or a comma decimal mark.
func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("%s%% is outside 0-100%%", s)
	}
	return v, nil
}

// View renders the allocation scene
func (m *AllocationModel) View() string {
	if len(m.assets) == 0 {
		return tuistyles.BorderStyle.Render("No allocation yet.\n\nPress ESC to return to home.")
	}

	title := "Asset Allocation"
	if m.custom {
		title += " (custom)"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render(title),
		tuistyles.BorderStyle.Render(m.renderTable()),
		m.renderTotals(),
		"",
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
			Render("↑/↓ select • ←/→ ±1 pt • enter exact value • d profile defaults • esc back"),
	)
}

func (m *AllocationModel) renderTable() string {
	returns := m.catalog.ReturnTable()
	var rows []string
	rows = append(rows, tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-32s %10s %10s", "Asset", "Share", "Return")))

	for i, asset := range m.assets {
		share := tuistyles.FormatPercent(m.allocation[asset])
		if i == m.cursor && m.editing {
			share = m.input.View()
		}
		ret := "n/a"
		if r, ok := returns[asset]; ok {
			ret = tuistyles.FormatPercent(r)
		}
		line := fmt.Sprintf("%-32s %10s %10s", truncateName(asset, 32), share, ret)
		if i == m.cursor {
			rows = append(rows, tuistyles.TableHighlightStyle.Render(line))
		} else {
			rows = append(rows, tuistyles.TableCellStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

func (m *AllocationModel) renderTotals() string {
	var lines []string

	sum := m.allocation.Sum()
	sumLine := "Total: " + tuistyles.FormatPercent(sum)
	if math.Abs(sum-1) > sumTolerance {
		lines = append(lines, tuistyles.ErrorStyle.Render(sumLine+" (does not add up to 100%)"))
	} else {
		lines = append(lines, tuistyles.InfoStyle.Render(sumLine))
	}

	weighted, err := calculation.WeightedReturn(m.catalog.ReturnTable(), m.allocation)
	if err != nil {
		lines = append(lines, tuistyles.ErrorStyle.Render(err.Error()))
	} else {
		lines = append(lines, tuistyles.MetricLabelStyle.Render("Estimated annual return: ")+
			tuistyles.MetricValueStyle.Render(tuistyles.FormatPercent(weighted)))
	}

	if m.err != nil {
		lines = append(lines, tuistyles.ErrorStyle.Render(m.err.Error()))
	}
	return strings.Join(lines, "\n")
}

func truncateName(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-1]) + "…"
}

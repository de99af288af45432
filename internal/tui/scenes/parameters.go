package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/holdi/holdi/internal/config"
	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/tui/components"
	"github.com/holdi/holdi/internal/tui/tuimsg"
	"github.com/holdi/holdi/internal/tui/tuistyles"
)

// Slider order on the parameters scene. Investor sliders come first; moving
// one of them re-derives every simulation parameter.
const (
	sliderSalary = iota
	sliderAge
	sliderSavingsRate
	sliderInitialAmount
	sliderMonthly
	sliderWithdrawal
	sliderInflation
	sliderDelay
	sliderYears
	numSliders
)

var parameterKeys = struct {
	Up, Down, Left, Right, Conservative, Balanced, Dynamic key.Binding
}{
	Up:           key.NewBinding(key.WithKeys("up", "k")),
	Down:         key.NewBinding(key.WithKeys("down", "j")),
	Left:         key.NewBinding(key.WithKeys("left", "-")),
	Right:        key.NewBinding(key.WithKeys("right", "+", "=")),
	Conservative: key.NewBinding(key.WithKeys("1")),
	Balanced:     key.NewBinding(key.WithKeys("2")),
	Dynamic:      key.NewBinding(key.WithKeys("3")),
}

// ParametersModel edits the investor form, the simulation parameters and
// the investor profile of the plan.
type ParametersModel struct {
	plan    *domain.Plan
	sliders []*components.ParameterSlider
	focused int
	width   int
	height  int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

// SetPlan points the scene at plan and loads params into the sliders,
// keeping the current focus.
func (m *ParametersModel) SetPlan(plan *domain.Plan, params domain.SimulationParameters) {
	m.plan = plan
	if plan == nil {
		m.sliders = nil
		return
	}
	m.buildSliders(params)
}

// buildSliders creates one slider per editable field
func (m *ParametersModel) buildSliders(params domain.SimulationParameters) {
	inv := m.plan.Investor
	m.sliders = make([]*components.ParameterSlider, numSliders)

	m.sliders[sliderSalary] = components.NewParameterSlider("Monthly net salary", inv.MonthlyNetSalary, 0, 20000, 50).
		WithUnit(" €").
		WithDescription("Net salary after tax, per month")
	m.sliders[sliderAge] = components.NewParameterSlider("Age", float64(inv.Age), 0, 100, 1).
		WithUnit(" years").
		WithDescription("Selects the age bracket of the allocation table")
	m.sliders[sliderSavingsRate] = components.NewParameterSlider("Savings rate", inv.SavingsRatePct, 0, 100, 1).
		WithUnit("%").
		WithDescription("Share of the salary set aside each month")
	m.sliders[sliderInitialAmount] = components.NewParameterSlider("Initial amount", params.InitialAmount, 0, 100000, 50).
		WithUnit(" €").
		WithDescription("Lump sum invested on day one")
	m.sliders[sliderMonthly] = components.NewParameterSlider("Monthly contribution", params.MonthlyContribution, 0, 10000, 10).
		WithUnit(" €").
		WithDescription("Amount invested every month, raised by inflation")
	m.sliders[sliderWithdrawal] = components.NewParameterSlider("Withdrawal rate", params.WithdrawalRatePct, 0, 20, 0.5).
		WithUnit("%").
		WithFormat("%.1f").
		WithDescription("Annual share of the portfolio withdrawn once withdrawals start")
	m.sliders[sliderInflation] = components.NewParameterSlider("Inflation", params.InflationRatePct, 0, 10, 0.1).
		WithUnit("%").
		WithFormat("%.1f").
		WithDescription("Yearly raise applied to contributions")
	m.sliders[sliderDelay] = components.NewParameterSlider("Years until withdrawal", float64(params.YearsUntilWithdrawal), 0, config.MaxYears, 1).
		WithUnit(" years").
		WithDescription("Simulated years before the first withdrawal")
	m.sliders[sliderYears] = components.NewParameterSlider("Investment horizon", float64(params.Years), 1, config.MaxYears, 1).
		WithUnit(" years").
		WithDescription("Number of simulated years")

	for _, s := range m.sliders {
		s.WithWidth(36)
	}
	if m.focused >= numSliders {
		m.focused = 0
	}
	m.sliders[m.focused].SetFocused(true)
}

// Focused returns the index of the focused slider
func (m *ParametersModel) Focused() int {
	return m.focused
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if m.plan == nil || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, parameterKeys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, parameterKeys.Down):
		m.moveFocus(1)
	case key.Matches(msg, parameterKeys.Left):
		if m.sliders[m.focused].Decrement() {
			return m, m.applyChanges()
		}
	case key.Matches(msg, parameterKeys.Right):
		if m.sliders[m.focused].Increment() {
			return m, m.applyChanges()
		}
	case key.Matches(msg, parameterKeys.Conservative):
		return m, m.selectProfile(domain.ProfileConservative)
	case key.Matches(msg, parameterKeys.Balanced):
		return m, m.selectProfile(domain.ProfileBalanced)
	case key.Matches(msg, parameterKeys.Dynamic):
		return m, m.selectProfile(domain.ProfileDynamic)
	}
	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

func (m *ParametersModel) selectProfile(p domain.InvestorProfile) tea.Cmd {
	if m.plan.Profile == p {
		return nil
	}
	m.plan.Profile = p
	return planChanged(false)
}

// applyChanges writes the focused slider back into the plan. Investor edits
// drop the parameter overrides so the parameters are derived again.
func (m *ParametersModel) applyChanges() tea.Cmd {
	v := m.sliders[m.focused].Value
	switch m.focused {
	case sliderSalary:
		m.plan.Investor.MonthlyNetSalary = v
	case sliderAge:
		m.plan.Investor.Age = int(v)
	case sliderSavingsRate:
		m.plan.Investor.SavingsRatePct = v
	default:
		m.applyOverride(v)
		return planChanged(false)
	}
	m.plan.Parameters = nil
	return planChanged(true)
}

func (m *ParametersModel) applyOverride(v float64) {
	if m.plan.Parameters == nil {
		m.plan.Parameters = &domain.ParameterOverrides{}
	}
	o := m.plan.Parameters
	switch m.focused {
	case sliderInitialAmount:
		o.InitialAmount = &v
	case sliderMonthly:
		o.MonthlyContribution = &v
	case sliderWithdrawal:
		o.WithdrawalRatePct = &v
	case sliderInflation:
		o.InflationRatePct = &v
	case sliderDelay:
		n := int(v)
		o.YearsUntilWithdrawal = &n
	case sliderYears:
		n := int(v)
		o.Years = &n
	}
}

func planChanged(investor bool) tea.Cmd {
	return func() tea.Msg {
		return tuimsg.PlanChangedMsg{InvestorChanged: investor}
	}
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if m.plan == nil {
		return tuistyles.BorderStyle.Render("No plan loaded.\n\nPress ESC to return to home.")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("Edit Parameters"),
		m.renderProfiles(),
		"",
		m.renderSliders(),
		"",
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).
			Render("↑/↓ navigate • ←/→ adjust • 1/2/3 profile • ctrl+r reset • ctrl+s save • esc back"),
	)
}

// renderProfiles renders the three profile buttons; the active one is highlighted
func (m *ParametersModel) renderProfiles() string {
	var buttons []string
	for i, p := range domain.Profiles() {
		label := fmt.Sprintf(" %d %s ", i+1, p.DisplayName())
		if p == m.plan.Profile {
			buttons = append(buttons, tuistyles.SelectedItemStyle.Render(label))
		} else {
			buttons = append(buttons, tuistyles.UnselectedItemStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

// renderSliders renders the investor block and the simulation block
func (m *ParametersModel) renderSliders() string {
	var investor, simulation []string
	for i, s := range m.sliders {
		if i <= sliderSavingsRate {
			investor = append(investor, s.Render())
		} else {
			simulation = append(simulation, s.Render())
		}
	}

	box := func(title string, rows []string, active bool) string {
		style := tuistyles.BorderStyle
		if active {
			style = tuistyles.ActiveBorderStyle
		}
		return style.Render(sectionTitle(title) + "\n\n" + strings.Join(rows, "\n\n"))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		box("Investor", investor, m.focused <= sliderSavingsRate),
		" ",
		box("Simulation", simulation, m.focused > sliderSavingsRate),
	)
}

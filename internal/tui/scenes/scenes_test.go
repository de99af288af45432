package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/config"
	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/tui/tuimsg"
)

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newParametersScene(t *testing.T) (*ParametersModel, *domain.Plan) {
	t.Helper()
	plan := config.DefaultPlan()
	params, err := config.NewInputParser().ResolveParameters(plan)
	require.NoError(t, err)

	m := NewParametersModel()
	m.SetPlan(plan, params)
	return m, plan
}

func TestParametersModel_InvestorChangeDropsOverrides(t *testing.T) {
	m, plan := newParametersScene(t)
	years := 12
	plan.Parameters = &domain.ParameterOverrides{Years: &years}

	_, cmd := m.Update(keyPress("right"))
	require.NotNil(t, cmd)

	assert.Equal(t, tuimsg.PlanChangedMsg{InvestorChanged: true}, cmd())
	assert.Equal(t, 2550.0, plan.Investor.MonthlyNetSalary)
	assert.Nil(t, plan.Parameters)
}

func TestParametersModel_ParameterChangeSetsOverride(t *testing.T) {
	m, plan := newParametersScene(t)
	for m.Focused() != sliderYears {
		m.Update(keyPress("down"))
	}

	_, cmd := m.Update(keyPress("left"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.PlanChangedMsg{}, cmd())

	require.NotNil(t, plan.Parameters)
	require.NotNil(t, plan.Parameters.Years)
	assert.Equal(t, 29, *plan.Parameters.Years)
	assert.Nil(t, plan.Parameters.InitialAmount)
}

func TestParametersModel_FocusStaysInRange(t *testing.T) {
	m, _ := newParametersScene(t)
	m.Update(keyPress("up"))
	assert.Equal(t, sliderSalary, m.Focused())

	for i := 0; i < numSliders+3; i++ {
		m.Update(keyPress("down"))
	}
	assert.Equal(t, sliderYears, m.Focused())
}

func TestParametersModel_ProfileKeys(t *testing.T) {
	m, plan := newParametersScene(t)

	_, cmd := m.Update(keyPress("2"))
	assert.Nil(t, cmd, "balanced is already selected")

	_, cmd = m.Update(keyPress("3"))
	require.NotNil(t, cmd)
	assert.Equal(t, domain.ProfileDynamic, plan.Profile)
	assert.Contains(t, m.View(), "Dynamic")
}

func newAllocationScene() *AllocationModel {
	m := NewAllocationModel()
	m.SetAllocation(catalog.Default(), domain.AllocationMap{"Money Market": 0.5, "Unlisted Asset": 0.5}, true)
	return m
}

func TestAllocationModel_ListsCatalogThenExtras(t *testing.T) {
	m := newAllocationScene()
	cat := catalog.Default()

	require.Len(t, m.assets, len(cat.Rows)+1)
	assert.Equal(t, cat.Assets(), m.assets[:len(cat.Rows)])
	assert.Equal(t, "Unlisted Asset", m.assets[len(m.assets)-1])
	assert.Contains(t, m.View(), "Unlisted Asset")
}

func TestAllocationModel_AdjustClampsAndEmits(t *testing.T) {
	m := NewAllocationModel()
	cat := catalog.Default()
	first := cat.Assets()[0]
	m.SetAllocation(cat, domain.AllocationMap{first: 0.995}, false)

	_, cmd := m.Update(keyPress("right"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.AllocationChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 1.0, msg.Allocation[first])

	_, cmd = m.Update(keyPress("right"))
	assert.Nil(t, cmd, "already at 100%")

	msg.Allocation[first] = 0
	assert.Equal(t, 1.0, m.Allocation()[first], "emitted map is a copy")
}

func TestAllocationModel_ExactValue(t *testing.T) {
	m := newAllocationScene()
	m.cursor = len(m.assets) - 1

	m.Update(keyPress("enter"))
	require.True(t, m.Editing())

	m.input.SetValue("12,5")
	_, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.False(t, m.Editing())
	assert.Equal(t, 0.125, m.Allocation()["Unlisted Asset"])

	m.Update(keyPress("enter"))
	m.input.SetValue("150")
	_, cmd = m.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.True(t, m.Editing(), "invalid input keeps the editor open")
	assert.Contains(t, m.View(), "outside 0-100%")

	m.Update(keyPress("esc"))
	assert.False(t, m.Editing())
}

func TestAllocationModel_Defaults(t *testing.T) {
	m := newAllocationScene()

	_, cmd := m.Update(keyPress("d"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.AllocationChangedMsg{}, cmd())

	_, cmd = m.Update(keyPress("d"))
	assert.Nil(t, cmd, "nothing to reset")
}

func TestAllocationModel_UnknownAssetHasNoReturn(t *testing.T) {
	m := newAllocationScene()
	assert.Contains(t, m.View(), "Unlisted Asset")
	assert.Contains(t, m.View(), "n/a")
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.5", 12.5, false},
		{"12,5", 12.5, false},
		{" 40 % ", 40, false},
		{"0", 0, false},
		{"100", 100, false},
		{"-1", 0, true},
		{"101", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePercent(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultsModel(t *testing.T) {
	m := NewResultsModel()
	assert.Contains(t, m.View(), "No projection yet")

	report := &domain.ProjectionReport{
		Name:                 "Camille",
		Age:                  35,
		Profile:              domain.ProfileBalanced,
		WeightedAnnualReturn: 0.0425,
		Parameters:           domain.SimulationParameters{Years: 12},
		Result: domain.SimulationResult{
			PrincipalReference: make([]float64, 12),
			Invested:           make([]float64, 12),
			Earnings:           make([]float64, 12),
			Withdrawals:        make([]float64, 12),
			Balances:           make([]float64, 12),
		},
	}
	m.SetReport(report, nil)

	out := m.View()
	assert.Contains(t, out, "4.25%")
	assert.Contains(t, out, "Future value")
	assert.Contains(t, out, "years 1-8 of 12")

	for i := 0; i < 10; i++ {
		m.Update(keyPress("down"))
	}
	assert.Equal(t, 4, m.offset)
	assert.Contains(t, m.View(), "years 5-12 of 12")

	m.SetReport(nil, assert.AnError)
	assert.Contains(t, m.View(), "Projection failed")
}

func TestCompareModel(t *testing.T) {
	m := NewCompareModel()
	assert.Contains(t, m.View(), "No comparison yet")

	_, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.ComparisonRequestedMsg{}, cmd())

	m.SetComparing()
	_, cmd = m.Update(keyPress("enter"))
	assert.Nil(t, cmd, "already running")
	assert.Contains(t, m.View(), "Comparing")

	m.SetResults(nil, assert.AnError)
	assert.Contains(t, m.View(), "Comparison failed")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Conserv...", truncate("Conservative Portfolio", 10))
	assert.Equal(t, "Conservativ…", truncateName("Conservative Portfolio", 12))
}

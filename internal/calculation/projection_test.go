package calculation

import (
	"math"
	"testing"

	"github.com/holdi/holdi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyReturn_CompoundsToAnnual(t *testing.T) {
	for _, annual := range []float64{0, 0.01, 0.0425, 0.05, 0.12, -0.03} {
		monthly := MonthlyReturn(annual)
		assert.InDelta(t, 1+annual, math.Pow(1+monthly, 12), 1e-12, "annual %v", annual)
	}
	assert.InDelta(t, 0.0040741, MonthlyReturn(0.05), 1e-7)
}

func TestSimulate_ScenarioA_SingleYearOfContributions(t *testing.T) {
	params := domain.SimulationParameters{
		Years:                1,
		MonthlyContribution:  100,
		InitialAmount:        0,
		InflationRatePct:     0,
		WithdrawalRatePct:    0,
		YearsUntilWithdrawal: 1,
	}

	result := Simulate(params, 0.05)

	require.Equal(t, 1, result.Years())
	assert.Equal(t, []int{0, 1}, result.Timeline)
	assert.Equal(t, 1200.0, result.Invested[0])
	assert.Equal(t, 0.0, result.PrincipalReference[0])
	assert.InDelta(t, 0.0040741, result.MonthlyReturn, 1e-7)
	assert.InDelta(t, 1226.97, result.Balances[0], 0.5)
	assert.InDelta(t, result.Balances[0]-1200, result.Earnings[0], 1e-9)
	assert.Zero(t, result.LastYearWithdrawal)
}

func TestSimulate_ScenarioB_OnlyLastYearWithdrawalIsReported(t *testing.T) {
	params := domain.SimulationParameters{
		Years:                2,
		MonthlyContribution:  0,
		InitialAmount:        10000,
		WithdrawalRatePct:    12,
		YearsUntilWithdrawal: 0,
	}

	result := Simulate(params, 0)

	var year1, year2 float64
	value := 10000.0
	for month := 1; month <= 24; month++ {
		value *= 0.99
		if month <= 12 {
			year1 += value * 0.01
		} else {
			year2 += value * 0.01
		}
	}

	require.Equal(t, 2, result.Years())
	assert.InDelta(t, year1, result.Withdrawals[0], 1e-6)
	assert.InDelta(t, year2, result.Withdrawals[1], 1e-6)
	assert.InDelta(t, year2, result.LastYearWithdrawal, 1e-6)
	assert.NotEqual(t, year1+year2, result.LastYearWithdrawal)

	assert.Less(t, result.Balances[0], 10000.0)
	assert.Less(t, result.Balances[1], result.Balances[0])
	assert.InDelta(t, 10000*math.Pow(0.99, 24), result.Balances[1], 1e-6)

	// No contributions and no growth: everything below the principal is a loss.
	assert.Equal(t, []float64{10000, 10000}, result.PrincipalReference)
	assert.Less(t, result.Earnings[1], result.Earnings[0])
	assert.Less(t, result.Earnings[0], 0.0)
}

func TestSimulate_WithdrawalsStartAfterDelay(t *testing.T) {
	params := domain.SimulationParameters{
		Years:                6,
		MonthlyContribution:  200,
		InitialAmount:        5000,
		InflationRatePct:     2,
		WithdrawalRatePct:    4,
		YearsUntilWithdrawal: 3,
	}

	result := Simulate(params, 0.05)

	for y := 0; y < 3; y++ {
		assert.Zero(t, result.Withdrawals[y], "year %d", y+1)
	}
	for y := 3; y < 6; y++ {
		assert.Positive(t, result.Withdrawals[y], "year %d", y+1)
	}
	assert.Equal(t, result.Withdrawals[5], result.LastYearWithdrawal)
}

func TestSimulate_InvestedRecurrence(t *testing.T) {
	params := domain.SimulationParameters{
		Years:               10,
		MonthlyContribution: 150,
		InitialAmount:       1000,
		InflationRatePct:    2,
	}

	result := Simulate(params, 0.04)

	assert.Equal(t, 1800.0, result.Invested[0])
	for y := 1; y < result.Years(); y++ {
		assert.InDelta(t, result.Invested[y-1]+150*12*1.02, result.Invested[y], 1e-9)
		assert.GreaterOrEqual(t, result.Invested[y], result.Invested[y-1])
	}
}

func TestSimulate_SeriesShapes(t *testing.T) {
	params := domain.SimulationParameters{
		Years:                25,
		MonthlyContribution:  425,
		InitialAmount:        425,
		InflationRatePct:     2,
		WithdrawalRatePct:    3,
		YearsUntilWithdrawal: 5,
	}

	result := Simulate(params, 0.045)

	assert.Len(t, result.Timeline, 26)
	assert.Len(t, result.PrincipalReference, 25)
	assert.Len(t, result.Invested, 25)
	assert.Len(t, result.Earnings, 25)
	assert.Len(t, result.Withdrawals, 25)
	assert.Len(t, result.Balances, 25)
	for i, year := range result.Timeline {
		assert.Equal(t, i, year)
	}
	for y := range result.PrincipalReference {
		assert.Equal(t, 425.0, result.PrincipalReference[y])
		assert.InDelta(t, result.Balances[y], result.PrincipalReference[y]+result.Invested[y]+result.Earnings[y], 1e-6)
	}
	assert.Equal(t, result.Balances[24], result.FinalBalance())
}

func TestSimulate_NonNegativeWithoutWithdrawals(t *testing.T) {
	params := domain.SimulationParameters{
		Years:               40,
		MonthlyContribution: 300,
		InitialAmount:       2000,
		InflationRatePct:    1.5,
	}

	result := Simulate(params, 0.06)

	for y := 1; y < result.Years(); y++ {
		assert.Greater(t, result.Balances[y], result.Balances[y-1])
		assert.GreaterOrEqual(t, result.Earnings[y], 0.0)
	}
}

func TestSimulate_ZeroYears(t *testing.T) {
	for _, years := range []int{0, -3} {
		result := Simulate(domain.SimulationParameters{Years: years, MonthlyContribution: 100, InitialAmount: 50}, 0.05)

		assert.Equal(t, []int{0}, result.Timeline)
		assert.Empty(t, result.PrincipalReference)
		assert.Empty(t, result.Invested)
		assert.Empty(t, result.Earnings)
		assert.Zero(t, result.LastYearWithdrawal)
		assert.Zero(t, result.FinalBalance())
		assert.Empty(t, result.StackedSeries())
	}
}

func TestSimulationResult_StackedSeries(t *testing.T) {
	result := Simulate(domain.SimulationParameters{Years: 3, MonthlyContribution: 100, InitialAmount: 1000}, 0.05)

	points := result.StackedSeries()
	require.Len(t, points, 3)
	for y, p := range points {
		assert.Equal(t, result.Timeline[y+1], p.Year)
		assert.Equal(t, 1000.0, p.Principal)
		assert.InDelta(t, 1000+result.Invested[y], p.Invested, 1e-9)
		assert.InDelta(t, result.Balances[y], p.Total, 1e-6)
		assert.LessOrEqual(t, p.Principal, p.Invested)
		assert.LessOrEqual(t, p.Invested, p.Total)
	}
}

package domain

import (
	"github.com/shopspring/decimal"
)

// SimulationParameters are the financial inputs of one projection run.
// Rates are expressed in percent (2 means 2%).
type SimulationParameters struct {
	Years                int     `json:"years" yaml:"years"`
	MonthlyContribution  float64 `json:"monthlyContribution" yaml:"monthly_contribution"`
	InitialAmount        float64 `json:"initialAmount" yaml:"initial_amount"`
	InflationRatePct     float64 `json:"inflationRatePct" yaml:"inflation_rate_pct"`
	WithdrawalRatePct    float64 `json:"withdrawalRatePct" yaml:"withdrawal_rate_pct"`
	YearsUntilWithdrawal int     `json:"yearsUntilWithdrawal" yaml:"years_until_withdrawal"`
}

// SimulationResult holds the year-indexed output of the projection simulator.
//
// Timeline spans 0..Years (Years+1 entries) and is meant for display; every
// other series has exactly Years entries, entry y describing the end of
// simulated year y. Use StackedSeries to get display points aligned with
// Timeline[1:].
type SimulationResult struct {
	Timeline           []int     `json:"timeline"`
	PrincipalReference []float64 `json:"principalReference"`
	Invested           []float64 `json:"invested"`
	Earnings           []float64 `json:"earnings"`

	// Withdrawals holds each year's withdrawal total and Balances the portfolio
	// value at each year end.
	Withdrawals []float64 `json:"withdrawals"`
	Balances    []float64 `json:"balances"`

	MonthlyReturn      float64 `json:"monthlyReturn"`
	LastYearWithdrawal float64 `json:"lastYearWithdrawal"`
}

// Years returns the number of simulated years.
func (r SimulationResult) Years() int { return len(r.Invested) }

// FinalBalance returns the portfolio value at the end of the last year.
func (r SimulationResult) FinalBalance() float64 {
	if len(r.Balances) == 0 {
		return 0
	}
	return r.Balances[len(r.Balances)-1]
}

// ChartPoint is one year of the stacked projection chart.
type ChartPoint struct {
	Year      int     `json:"year"`
	Principal float64 `json:"principal"`
	Invested  float64 `json:"invested"` // principal + cumulative contributions
	Total     float64 `json:"total"`    // principal + contributions + earnings
}

// StackedSeries returns the three stacked display lines, one point per
// simulated year, labeled with Timeline years 1..Years.
func (r SimulationResult) StackedSeries() []ChartPoint {
	points := make([]ChartPoint, r.Years())
	for y := range points {
		invested := r.PrincipalReference[y] + r.Invested[y]
		points[y] = ChartPoint{
			Year:      y + 1,
			Principal: r.PrincipalReference[y],
			Invested:  invested,
			Total:     invested + r.Earnings[y],
		}
	}
	return points
}

// ProjectionSummary condenses a simulation into the four headline figures.
type ProjectionSummary struct {
	FutureValue   decimal.Decimal `json:"futureValue"`
	CapitalGain   decimal.Decimal `json:"capitalGain"`
	InvestedTotal decimal.Decimal `json:"investedTotal"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome"`
}

// ProjectionReport is the complete result of projecting one plan.
type ProjectionReport struct {
	Name                 string               `json:"name"`
	Age                  int                  `json:"age"`
	Bracket              string               `json:"bracket"`
	Profile              InvestorProfile      `json:"profile"`
	CustomAllocation     bool                 `json:"customAllocation"`
	Allocation           AllocationMap        `json:"allocation"`
	WeightedAnnualReturn float64              `json:"weightedAnnualReturn"`
	Parameters           SimulationParameters `json:"parameters"`
	Result               SimulationResult     `json:"result"`
	Summary              ProjectionSummary    `json:"summary"`
}

// ChartSeries returns the stacked chart points of the report's simulation.
func (r *ProjectionReport) ChartSeries() []ChartPoint {
	return r.Result.StackedSeries()
}

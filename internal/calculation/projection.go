package calculation

import (
	"math"

	"github.com/holdi/holdi/internal/domain"
)

const monthsPerYear = 12

// MonthlyReturn converts an annual return into the geometric monthly rate
// with (1+monthly)^12 = 1+annual.
func MonthlyReturn(annual float64) float64 {
	return math.Pow(1+annual, 1.0/monthsPerYear) - 1
}

// Simulate runs the month-stepped projection of a periodic investment plan.
//
// Inputs are assumed finite and non-negative; callers validate them. For every
// simulated year y:
//
//   - PrincipalReference[y] is InitialAmount (a constant reference line).
//   - Invested[0] = 12m and Invested[y] = Invested[y-1] + 12m(1+i), where m is
//     the monthly contribution and i the inflation rate.
//   - the running portfolio value, seeded with InitialAmount and carried across
//     years, goes through twelve months of growth, then the inflated
//     contribution, then (from YearsUntilWithdrawal on) the monthly withdrawal.
//   - Earnings[y] = value - (PrincipalReference[y] + Invested[y]).
//
// The month order is fixed because the float results depend on it. The
// withdrawal accumulator restarts every year and LastYearWithdrawal keeps only
// the final year's total; every year's total is also kept in Withdrawals.
func Simulate(params domain.SimulationParameters, weightedAnnualReturn float64) domain.SimulationResult {
	years := params.Years
	if years < 0 {
		years = 0
	}

	result := domain.SimulationResult{
		Timeline:           make([]int, years+1),
		PrincipalReference: make([]float64, years),
		Invested:           make([]float64, years),
		Earnings:           make([]float64, years),
		Withdrawals:        make([]float64, years),
		Balances:           make([]float64, years),
		MonthlyReturn:      MonthlyReturn(weightedAnnualReturn),
	}
	for t := range result.Timeline {
		result.Timeline[t] = t
	}

	inflationFactor := 1 + params.InflationRatePct/100
	monthlyWithdrawalRate := params.WithdrawalRatePct / 100 / monthsPerYear
	monthlyContribution := params.MonthlyContribution * inflationFactor
	growthFactor := 1 + result.MonthlyReturn

	totalValue := params.InitialAmount
	var yearWithdrawal float64

	for y := 0; y < years; y++ {
		yearWithdrawal = 0

		result.PrincipalReference[y] = params.InitialAmount

		if y == 0 {
			result.Invested[y] = params.MonthlyContribution * monthsPerYear
		} else {
			result.Invested[y] = result.Invested[y-1] + params.MonthlyContribution*monthsPerYear*inflationFactor
		}

		withdrawing := y >= params.YearsUntilWithdrawal
		for m := 0; m < monthsPerYear; m++ {
			totalValue *= growthFactor
			totalValue += monthlyContribution
			if withdrawing {
				totalValue *= 1 - monthlyWithdrawalRate
				yearWithdrawal += totalValue * params.WithdrawalRatePct / 100 / monthsPerYear
			}
		}

		result.Earnings[y] = totalValue - (result.PrincipalReference[y] + result.Invested[y])
		result.Withdrawals[y] = yearWithdrawal
		result.Balances[y] = totalValue
	}

	result.LastYearWithdrawal = yearWithdrawal
	return result
}

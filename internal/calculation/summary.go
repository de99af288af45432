package calculation

import (
	"github.com/holdi/holdi/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize derives the headline figures of a projection: the value at the
// end of the horizon, the part of it that is gain, the amount paid in, and the
// monthly income implied by the last year's withdrawals. An empty simulation
// yields zeros.
func Summarize(result domain.SimulationResult, initialAmount float64) domain.ProjectionSummary {
	n := result.Years()
	if n == 0 {
		return domain.ProjectionSummary{
			FutureValue:   decimal.Zero,
			CapitalGain:   decimal.Zero,
			InvestedTotal: decimal.Zero,
			MonthlyIncome: decimal.Zero,
		}
	}

	initial := decimal.NewFromFloat(initialAmount)
	invested := decimal.NewFromFloat(result.Invested[n-1])
	earnings := decimal.NewFromFloat(result.Earnings[n-1])

	return domain.ProjectionSummary{
		FutureValue:   initial.Add(invested).Add(earnings),
		CapitalGain:   earnings,
		InvestedTotal: initial.Add(invested),
		MonthlyIncome: decimal.NewFromFloat(result.LastYearWithdrawal).Div(decimal.NewFromInt(monthsPerYear)),
	}
}

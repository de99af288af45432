package calculation

import (
	"math"

	"github.com/holdi/holdi/internal/domain"
)

// ResolveAllocation maps an investor's age and profile to a per-asset fraction
// of the portfolio.
//
// The age selects the baseline (balanced) column of every catalog row; the
// conservative and dynamic profiles add their row delta on top of it. Each
// fraction is rounded to two decimals, so the map may sum to 1.0 only within
// rounding tolerance.
func ResolveAllocation(catalog domain.Catalog, age int, profile domain.InvestorProfile) domain.AllocationMap {
	bracket := domain.BracketForAge(age)
	allocation := make(domain.AllocationMap, len(catalog.Rows))
	for _, row := range catalog.Rows {
		fraction := row.Balanced[bracket] + row.Delta(profile)
		allocation[row.Asset] = roundFraction(fraction)
	}
	return allocation
}

// roundFraction rounds v*100 half to even on its binary value, so 0.125
// becomes 0.12 and 0.145 (stored just below) becomes 0.14.
func roundFraction(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

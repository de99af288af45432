package output

import (
	"fmt"

	"github.com/holdi/holdi/internal/domain"
)

// Assumptions lists the modeling assumptions behind a projection, rendered in
// the detailed outputs.
func Assumptions(report *domain.ProjectionReport) []string {
	p := report.Parameters
	out := []string{
		fmt.Sprintf("Weighted annual return %s, compounded monthly (%s per month)",
			FormatFraction(report.WeightedAnnualReturn), FormatFraction(report.Result.MonthlyReturn)),
		fmt.Sprintf("Monthly contributions are raised once by %.2f%% inflation and then held flat", p.InflationRatePct),
		"Initial amount is shown as a constant principal line",
	}
	if p.WithdrawalRatePct > 0 {
		out = append(out, fmt.Sprintf("%.2f%% of the portfolio is withdrawn each year (1/12 monthly) from year %d",
			p.WithdrawalRatePct, p.YearsUntilWithdrawal+1))
	} else {
		out = append(out, "No withdrawals during the horizon")
	}
	if report.CustomAllocation {
		out = append(out, "Allocation edited by hand")
	} else {
		out = append(out, fmt.Sprintf("Allocation from the %s profile for ages %s", report.Profile.DisplayName(), report.Bracket))
	}
	return out
}

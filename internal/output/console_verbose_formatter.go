package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/holdi/holdi/internal/domain"
)

// ConsoleFormatter renders the detailed console report: allocation,
// parameters, headline metrics and the year-by-year table.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "INVESTMENT PROJECTION: %s\n", strings.ToUpper(report.Name))
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range Assumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PROFILE")
	fmt.Fprintln(&buf, strings.Repeat("=", 45))
	fmt.Fprintf(&buf, "Age:                    %d (bracket %s)\n", report.Age, report.Bracket)
	fmt.Fprintf(&buf, "Investor profile:       %s\n", report.Profile.DisplayName())
	fmt.Fprintf(&buf, "Estimated annual return: %s\n", FormatFraction(report.WeightedAnnualReturn))
	fmt.Fprintln(&buf)

	writeAllocation(&buf, report.Allocation)
	writeParameters(&buf, report.Parameters)
	writeSummary(&buf, report.Summary)
	writeYearlyTable(&buf, report)

	return buf.Bytes(), nil
}

func writeAllocation(buf *bytes.Buffer, allocation domain.AllocationMap) {
	fmt.Fprintln(buf, "ASSET ALLOCATION")
	fmt.Fprintln(buf, strings.Repeat("=", 45))
	for _, asset := range allocationByWeight(allocation) {
		fmt.Fprintf(buf, "%-34s %9s\n", asset, FormatFraction(allocation[asset]))
	}
	fmt.Fprintf(buf, "%-34s %9s\n", "Total", FormatFraction(allocation.Sum()))
	fmt.Fprintln(buf)
}

func writeParameters(buf *bytes.Buffer, p domain.SimulationParameters) {
	fmt.Fprintln(buf, "PARAMETERS")
	fmt.Fprintln(buf, strings.Repeat("=", 45))
	fmt.Fprintf(buf, "Initial amount:           %s\n", FormatAmount(p.InitialAmount))
	fmt.Fprintf(buf, "Monthly contribution:     %s\n", FormatAmount(p.MonthlyContribution))
	fmt.Fprintf(buf, "Inflation:                %.2f%%\n", p.InflationRatePct)
	fmt.Fprintf(buf, "Withdrawal rate:          %.2f%%\n", p.WithdrawalRatePct)
	fmt.Fprintf(buf, "Years before withdrawals: %d\n", p.YearsUntilWithdrawal)
	fmt.Fprintf(buf, "Investment horizon:       %d years\n", p.Years)
	fmt.Fprintln(buf)
}

func writeSummary(buf *bytes.Buffer, s domain.ProjectionSummary) {
	fmt.Fprintln(buf, "RESULTS")
	fmt.Fprintln(buf, strings.Repeat("=", 45))
	fmt.Fprintf(buf, "Future value:         %s\n", FormatCurrency(s.FutureValue))
	fmt.Fprintf(buf, "Capital gain:         %s\n", FormatCurrency(s.CapitalGain))
	fmt.Fprintf(buf, "Total invested:       %s\n", FormatCurrency(s.InvestedTotal))
	fmt.Fprintf(buf, "Monthly income:       %s\n", FormatCurrency(s.MonthlyIncome))
	fmt.Fprintln(buf)
}

func writeYearlyTable(buf *bytes.Buffer, report *domain.ProjectionReport) {
	r := report.Result
	if r.Years() == 0 {
		fmt.Fprintln(buf, "No simulated years.")
		return
	}
	fmt.Fprintln(buf, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintln(buf, strings.Repeat("=", 81))
	fmt.Fprintf(buf, "%-5s %18s %18s %18s %18s\n", "Year", "Invested", "Earnings", "Withdrawn", "Balance")
	fmt.Fprintln(buf, strings.Repeat("-", 81))
	for y := 0; y < r.Years(); y++ {
		fmt.Fprintf(buf, "%-5d %18s %18s %18s %18s\n",
			r.Timeline[y+1],
			FormatAmount(r.PrincipalReference[y]+r.Invested[y]),
			FormatAmount(r.Earnings[y]),
			FormatAmount(r.Withdrawals[y]),
			FormatAmount(r.Balances[y]),
		)
	}
	fmt.Fprintln(buf)
}

// allocationByWeight orders assets by descending fraction, then by name.
func allocationByWeight(allocation domain.AllocationMap) []string {
	assets := allocation.Assets()
	sort.SliceStable(assets, func(i, j int) bool {
		return allocation[assets[i]] > allocation[assets[j]]
	})
	return assets
}

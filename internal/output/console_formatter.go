package output

import (
	"bytes"
	"fmt"

	"github.com/holdi/holdi/internal/domain"
)

// ConsoleLiteFormatter provides a concise console summary.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "INVESTMENT PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "%s: %s profile, age %d, %d years, return %s\n",
		report.Name,
		report.Profile.DisplayName(),
		report.Age,
		report.Parameters.Years,
		FormatFraction(report.WeightedAnnualReturn),
	)
	s := report.Summary
	fmt.Fprintf(&buf, "  FutureValue=%s CapitalGain=%s\n", FormatCurrency(s.FutureValue), FormatCurrency(s.CapitalGain))
	fmt.Fprintf(&buf, "  Invested=%s MonthlyIncome=%s\n", FormatCurrency(s.InvestedTotal), FormatCurrency(s.MonthlyIncome))
	return buf.Bytes(), nil
}

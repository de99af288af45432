package compare

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tableWidth = 80
	nameWidth  = 22
	numWidth   = 14
)

// TableFormatter renders a comparison as a fixed-width console report.
type TableFormatter struct{}

func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	fmt.Fprintln(&sb, "INVESTOR PROFILE COMPARISON")
	rule(&sb, "=")
	fmt.Fprintf(&sb, "Plan: %s\n", compSet.PlanName)
	fmt.Fprintf(&sb, "Base Scenario: %s\n", compSet.BaseScenarioName)
	if compSet.ConfigPath != "" {
		fmt.Fprintf(&sb, "Configuration: %s\n", compSet.ConfigPath)
	}
	fmt.Fprintln(&sb)

	tf.writeRow(&sb, "Scenario", "Return", "Future Value", "Capital Gain", "Monthly Inc.")
	rule(&sb, "-")
	if base := compSet.BaseResult; base != nil {
		tf.writeResult(&sb, base, base.ScenarioName+" (base)")
	}
	if len(compSet.AlternativeResults) > 0 {
		rule(&sb, "-")
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			tf.writeResult(&sb, alt, alt.ScenarioName)
		}
	}
	rule(&sb, "=")

	if len(compSet.AlternativeResults) > 0 {
		fmt.Fprintln(&sb, "\nCOMPARISON TO BASE")
		rule(&sb, "-")
		for _, alt := range compSet.AlternativeResults {
			fmt.Fprintf(&sb, "\n%s:\n", alt.ScenarioName)
			fmt.Fprintf(&sb, "  Annual Return:    %s pts\n", signed(alt.ReturnDiffFromBase, alt.ReturnDiffFromBase.Abs().StringFixed(2)))
			fmt.Fprintf(&sb, "  Future Value:     %s € (%s%%)\n",
				signed(alt.FutureValueDiffFromBase, tf.formatDecimal(alt.FutureValueDiffFromBase.Abs())),
				alt.FutureValuePctFromBase.StringFixed(1))
			if !alt.MonthlyIncomeDiffFromBase.IsZero() {
				fmt.Fprintf(&sb, "  Monthly Income:   %s €\n",
					signed(alt.MonthlyIncomeDiffFromBase, alt.MonthlyIncomeDiffFromBase.Abs().StringFixed(2)))
			}
		}
		fmt.Fprintln(&sb)
	}

	if len(compSet.Recommendations) > 0 {
		fmt.Fprintln(&sb, "\nRECOMMENDATIONS")
		rule(&sb, "-")
		for _, rec := range compSet.Recommendations {
			fmt.Fprintf(&sb, "• %s\n", rec)
		}
		fmt.Fprintln(&sb)
	}

	return sb.String()
}

// FormatCompact renders one line: the base name and each alternative's
// future value difference.
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	parts := make([]string, 0, len(compSet.AlternativeResults))
	for _, alt := range compSet.AlternativeResults {
		change := "="
		if d := alt.FutureValueDiffFromBase; !d.IsZero() {
			change = signed(d, tf.formatDecimal(d.Abs())) + " €"
		}
		parts = append(parts, alt.ScenarioName+": "+change)
	}
	return "Base: " + compSet.BaseScenarioName + " | " + strings.Join(parts, " | ")
}

func (tf *TableFormatter) writeRow(w io.Writer, name string, cols ...string) {
	fmt.Fprintf(w, "%-*s", nameWidth, name)
	for _, c := range cols {
		fmt.Fprintf(w, " %*s", numWidth, c)
	}
	fmt.Fprintln(w)
}

func (tf *TableFormatter) writeResult(w io.Writer, r *ComparisonResult, name string) {
	tf.writeRow(w, tf.truncate(name, nameWidth),
		r.AnnualReturnPct.StringFixed(2)+"%",
		tf.formatDecimal(r.FutureValue)+" €",
		tf.formatDecimal(r.CapitalGain)+" €",
		r.MonthlyIncome.StringFixed(2)+" €")
}

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// formatDecimal abbreviates amounts: 2.50M, 45.7K, 999.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	switch abs := d.Abs(); {
	case abs.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(1) + "K"
	default:
		return d.StringFixed(0)
	}
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// signed prefixes an absolute amount with the sign of delta, or a space
// when delta is zero.
func signed(delta decimal.Decimal, abs string) string {
	switch delta.Sign() {
	case 1:
		return "+" + abs
	case -1:
		return "-" + abs
	default:
		return " " + abs
	}
}

func rule(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, tableWidth))
}

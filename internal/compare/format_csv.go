package compare

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// csvColumns pairs each header with the field it exports. Amounts are
// written with two decimals.
var csvColumns = []struct {
	header string
	value  func(r *ComparisonResult) decimal.Decimal
}{
	{"Annual Return %", func(r *ComparisonResult) decimal.Decimal { return r.AnnualReturnPct }},
	{"Future Value", func(r *ComparisonResult) decimal.Decimal { return r.FutureValue }},
	{"Capital Gain", func(r *ComparisonResult) decimal.Decimal { return r.CapitalGain }},
	{"Invested Total", func(r *ComparisonResult) decimal.Decimal { return r.InvestedTotal }},
	{"Monthly Income", func(r *ComparisonResult) decimal.Decimal { return r.MonthlyIncome }},
	{"Return Diff (pts)", func(r *ComparisonResult) decimal.Decimal { return r.ReturnDiffFromBase }},
	{"Future Value Diff from Base", func(r *ComparisonResult) decimal.Decimal { return r.FutureValueDiffFromBase }},
	{"Future Value % Change", func(r *ComparisonResult) decimal.Decimal { return r.FutureValuePctFromBase }},
	{"Monthly Income Diff from Base", func(r *ComparisonResult) decimal.Decimal { return r.MonthlyIncomeDiffFromBase }},
}

// CSVFormatter writes one row per scenario, base first.
type CSVFormatter struct{}

func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"Scenario", "Type", "Profile"}
	for _, c := range csvColumns {
		header = append(header, c.header)
	}
	rows := [][]string{header}
	if compSet.BaseResult != nil {
		rows = append(rows, cf.row(compSet.BaseResult, "base"))
	}
	for i := range compSet.AlternativeResults {
		rows = append(rows, cf.row(&compSet.AlternativeResults[i], "alternative"))
	}

	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) row(r *ComparisonResult, kind string) []string {
	row := []string{r.ScenarioName, kind, string(r.Profile)}
	for _, c := range csvColumns {
		row = append(row, c.value(r).StringFixed(2))
	}
	return row
}

package compare

import (
	"fmt"

	"github.com/holdi/holdi/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents one profile run with its headline metrics
type ComparisonResult struct {
	ScenarioName string                   `json:"scenarioName"`
	Profile      domain.InvestorProfile   `json:"profile"`
	Custom       bool                     `json:"custom"`
	Description  string                   `json:"description"`
	Report       *domain.ProjectionReport `json:"-"`

	// Key Metrics
	AnnualReturnPct decimal.Decimal `json:"annualReturnPct"`
	FutureValue     decimal.Decimal `json:"futureValue"`
	CapitalGain     decimal.Decimal `json:"capitalGain"`
	InvestedTotal   decimal.Decimal `json:"investedTotal"`
	MonthlyIncome   decimal.Decimal `json:"monthlyIncome"`

	// Comparison to Base
	ReturnDiffFromBase        decimal.Decimal `json:"returnDiffFromBase"` // percentage points
	FutureValueDiffFromBase   decimal.Decimal `json:"futureValueDiffFromBase"`
	FutureValuePctFromBase    decimal.Decimal `json:"futureValuePctFromBase"`
	MonthlyIncomeDiffFromBase decimal.Decimal `json:"monthlyIncomeDiffFromBase"`
}

// ComparisonSet represents a base run and its alternatives
type ComparisonSet struct {
	PlanName           string             `json:"planName"`
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// All returns the base result followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from projection reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection report
func (mc *MetricsCalculator) CalculateMetrics(report *domain.ProjectionReport) ComparisonResult {
	name := report.Profile.DisplayName()
	if report.CustomAllocation {
		name += " (custom)"
	}
	return ComparisonResult{
		ScenarioName:    name,
		Profile:         report.Profile,
		Custom:          report.CustomAllocation,
		Report:          report,
		AnnualReturnPct: decimal.NewFromFloat(report.WeightedAnnualReturn).Shift(2),
		FutureValue:     report.Summary.FutureValue,
		CapitalGain:     report.Summary.CapitalGain,
		InvestedTotal:   report.Summary.InvestedTotal,
		MonthlyIncome:   report.Summary.MonthlyIncome,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ReturnDiffFromBase = scenario.AnnualReturnPct.Sub(base.AnnualReturnPct)
	scenario.FutureValueDiffFromBase = scenario.FutureValue.Sub(base.FutureValue)

	if !base.FutureValue.IsZero() {
		scenario.FutureValuePctFromBase = scenario.FutureValueDiffFromBase.
			Div(base.FutureValue).
			Mul(decimal.NewFromInt(100))
	}

	scenario.MonthlyIncomeDiffFromBase = scenario.MonthlyIncome.Sub(base.MonthlyIncome)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Highest future value
	best := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FutureValue.GreaterThan(best.FutureValue) {
			best = alt
		}
	}
	if best != compSet.BaseResult {
		diff := best.FutureValue.Sub(compSet.BaseResult.FutureValue)
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Value: %s ends %s € above %s", best.ScenarioName, diff.StringFixed(0), compSet.BaseResult.ScenarioName))
	} else {
		recommendations = append(recommendations,
			fmt.Sprintf("Highest Value: %s already gives the highest future value", best.ScenarioName))
	}

	// Highest monthly income, only meaningful when withdrawals happen
	if compSet.BaseResult.MonthlyIncome.IsPositive() {
		bestIncome := compSet.BaseResult
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.MonthlyIncome.GreaterThan(bestIncome.MonthlyIncome) {
				bestIncome = alt
			}
		}
		if bestIncome != compSet.BaseResult {
			diff := bestIncome.MonthlyIncome.Sub(compSet.BaseResult.MonthlyIncome)
			recommendations = append(recommendations,
				fmt.Sprintf("Highest Income: %s pays %s € more per month", bestIncome.ScenarioName, diff.StringFixed(2)))
		}
	}

	// Lowest expected return, for investors who value stability
	safest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AnnualReturnPct.LessThan(safest.AnnualReturnPct) {
			safest = alt
		}
	}
	if safest != compSet.BaseResult {
		cost := compSet.BaseResult.FutureValue.Sub(safest.FutureValue)
		recommendations = append(recommendations,
			fmt.Sprintf("Most Cautious: %s gives up %s € of future value for a lower-risk allocation", safest.ScenarioName, cost.StringFixed(0)))
	}

	return recommendations
}

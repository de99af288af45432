package compare

import (
	"testing"

	"github.com/holdi/holdi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	report := &domain.ProjectionReport{
		Name:                 "Test Plan",
		Profile:              domain.ProfileBalanced,
		WeightedAnnualReturn: 0.0525,
		Summary: domain.ProjectionSummary{
			FutureValue:   decimal.NewFromInt(150000),
			CapitalGain:   decimal.NewFromInt(50000),
			InvestedTotal: decimal.NewFromInt(100000),
			MonthlyIncome: decimal.NewFromInt(400),
		},
	}

	result := calc.CalculateMetrics(report)

	assert.Equal(t, "Balanced", result.ScenarioName)
	assert.Equal(t, domain.ProfileBalanced, result.Profile)
	assert.False(t, result.Custom)
	assert.Same(t, report, result.Report)
	assert.Equal(t, "5.25", result.AnnualReturnPct.StringFixed(2))
	assert.True(t, result.FutureValue.Equal(decimal.NewFromInt(150000)))
	assert.True(t, result.CapitalGain.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.InvestedTotal.Equal(decimal.NewFromInt(100000)))
	assert.True(t, result.MonthlyIncome.Equal(decimal.NewFromInt(400)))

	report.CustomAllocation = true
	assert.Equal(t, "Balanced (custom)", calc.CalculateMetrics(report).ScenarioName)
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{
		ScenarioName:    "Balanced",
		AnnualReturnPct: decimal.NewFromFloat(5.25),
		FutureValue:     decimal.NewFromInt(100000),
		MonthlyIncome:   decimal.NewFromInt(300),
	}
	scenario := ComparisonResult{
		ScenarioName:    "Dynamic",
		AnnualReturnPct: decimal.NewFromFloat(6.5),
		FutureValue:     decimal.NewFromInt(120000),
		MonthlyIncome:   decimal.NewFromInt(360),
	}

	result := calc.CalculateComparison(scenario, base)

	assert.Equal(t, "1.25", result.ReturnDiffFromBase.StringFixed(2))
	assert.True(t, result.FutureValueDiffFromBase.Equal(decimal.NewFromInt(20000)))
	assert.Equal(t, "20.00", result.FutureValuePctFromBase.StringFixed(2))
	assert.True(t, result.MonthlyIncomeDiffFromBase.Equal(decimal.NewFromInt(60)))
}

func TestMetricsCalculator_CalculateComparison_ZeroBase(t *testing.T) {
	calc := NewMetricsCalculator()

	base := ComparisonResult{FutureValue: decimal.Zero}
	scenario := ComparisonResult{FutureValue: decimal.NewFromInt(10)}

	result := calc.CalculateComparison(scenario, base)
	assert.True(t, result.FutureValuePctFromBase.IsZero(), "percentage change against a zero base stays zero")
	assert.True(t, result.FutureValueDiffFromBase.Equal(decimal.NewFromInt(10)))
}

func TestGenerateRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		compSet  *ComparisonSet
		contains []string
		absent   []string
	}{
		{
			name: "alternative beats base",
			compSet: &ComparisonSet{
				BaseResult: &ComparisonResult{
					ScenarioName:    "Balanced",
					AnnualReturnPct: decimal.NewFromFloat(5),
					FutureValue:     decimal.NewFromInt(100000),
					MonthlyIncome:   decimal.NewFromInt(300),
				},
				AlternativeResults: []ComparisonResult{
					{
						ScenarioName:    "Dynamic",
						AnnualReturnPct: decimal.NewFromFloat(6),
						FutureValue:     decimal.NewFromInt(125000),
						MonthlyIncome:   decimal.NewFromInt(380),
					},
					{
						ScenarioName:    "Conservative",
						AnnualReturnPct: decimal.NewFromFloat(4),
						FutureValue:     decimal.NewFromInt(85000),
						MonthlyIncome:   decimal.NewFromInt(250),
					},
				},
			},
			contains: []string{
				"Highest Value: Dynamic ends 25000 € above Balanced",
				"Highest Income: Dynamic pays 80.00 € more per month",
				"Most Cautious: Conservative gives up 15000 €",
			},
		},
		{
			name: "base already best and no withdrawals",
			compSet: &ComparisonSet{
				BaseResult: &ComparisonResult{
					ScenarioName:    "Dynamic",
					AnnualReturnPct: decimal.NewFromFloat(3),
					FutureValue:     decimal.NewFromInt(100000),
				},
				AlternativeResults: []ComparisonResult{
					{
						ScenarioName:    "Balanced",
						AnnualReturnPct: decimal.NewFromFloat(4),
						FutureValue:     decimal.NewFromInt(90000),
					},
				},
			},
			contains: []string{"Highest Value: Dynamic already gives the highest future value"},
			absent:   []string{"Highest Income", "Most Cautious"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := GenerateRecommendations(tt.compSet)
			joined := ""
			for _, r := range recs {
				joined += r + "\n"
			}
			for _, want := range tt.contains {
				assert.Contains(t, joined, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, joined, unwanted)
			}
		})
	}
}

func TestGenerateRecommendations_NoAlternatives(t *testing.T) {
	recs := GenerateRecommendations(&ComparisonSet{BaseResult: &ComparisonResult{}})
	require.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestComparisonSet_All(t *testing.T) {
	cs := &ComparisonSet{
		BaseResult:         &ComparisonResult{ScenarioName: "base"},
		AlternativeResults: []ComparisonResult{{ScenarioName: "a"}, {ScenarioName: "b"}},
	}
	all := cs.All()
	require.Len(t, all, 3)
	assert.Equal(t, "base", all[0].ScenarioName)
	assert.Equal(t, "b", all[2].ScenarioName)

	assert.Len(t, (&ComparisonSet{}).All(), 0)
}

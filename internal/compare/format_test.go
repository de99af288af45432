package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() calculation.ProjectionInput {
	return calculation.ProjectionInput{
		Name:    "Camille",
		Catalog: catalog.Default(),
		Age:     35,
		Profile: domain.ProfileBalanced,
		Parameters: domain.SimulationParameters{
			Years:                25,
			MonthlyContribution:  320,
			InitialAmount:        320,
			InflationRatePct:     2,
			WithdrawalRatePct:    4,
			YearsUntilWithdrawal: 20,
		},
	}
}

func runCompare(t *testing.T, in calculation.ProjectionInput, opts CompareOptions) *ComparisonSet {
	t.Helper()
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	compSet, err := engine.Compare(context.Background(), in, opts)
	require.NoError(t, err)
	return compSet
}

func TestCompareEngine_Compare(t *testing.T) {
	compSet := runCompare(t, testInput(), CompareOptions{ConfigPath: "plan.yaml"})

	assert.Equal(t, "Camille", compSet.PlanName)
	assert.Equal(t, "Balanced", compSet.BaseScenarioName)
	assert.Equal(t, "plan.yaml", compSet.ConfigPath)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "Balanced allocation for ages 35-39", compSet.BaseResult.Description)

	require.Len(t, compSet.AlternativeResults, 2, "the base profile is not repeated")
	names := []string{compSet.AlternativeResults[0].ScenarioName, compSet.AlternativeResults[1].ScenarioName}
	assert.Equal(t, []string{"Conservative", "Dynamic"}, names)

	conservative := compSet.AlternativeResults[0]
	dynamic := compSet.AlternativeResults[1]
	assert.True(t, conservative.ReturnDiffFromBase.IsNegative())
	assert.True(t, dynamic.ReturnDiffFromBase.IsPositive())
	assert.True(t, dynamic.FutureValueDiffFromBase.IsPositive())
	assert.True(t, dynamic.FutureValue.Sub(compSet.BaseResult.FutureValue).Equal(dynamic.FutureValueDiffFromBase))

	// contributions do not depend on the profile
	assert.True(t, dynamic.InvestedTotal.Equal(compSet.BaseResult.InvestedTotal))

	assert.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Highest Value: Dynamic")
}

func TestCompareEngine_CustomBaseCompetesWithOwnProfile(t *testing.T) {
	in := testInput()
	in.CustomAllocation = domain.AllocationMap{"Money Market": 1}

	compSet := runCompare(t, in, CompareOptions{})

	assert.Equal(t, "Balanced (custom)", compSet.BaseScenarioName)
	assert.True(t, compSet.BaseResult.Custom)
	assert.Equal(t, "hand-edited allocation over 1 assets", compSet.BaseResult.Description)
	require.Len(t, compSet.AlternativeResults, 3)
	for _, alt := range compSet.AlternativeResults {
		assert.False(t, alt.Custom)
		assert.True(t, alt.FutureValueDiffFromBase.IsPositive(), "%s should beat an all money-market allocation", alt.ScenarioName)
	}
	assert.Equal(t, "1.50", compSet.BaseResult.AnnualReturnPct.StringFixed(2))
}

func TestCompareEngine_SelectedProfiles(t *testing.T) {
	compSet := runCompare(t, testInput(), CompareOptions{Profiles: []domain.InvestorProfile{domain.ProfileDynamic}})
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, domain.ProfileDynamic, compSet.AlternativeResults[0].Profile)
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	_, err := engine.Compare(context.Background(), testInput(), CompareOptions{
		Profiles: []domain.InvestorProfile{"reckless"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown investor profile")

	in := testInput()
	in.CustomAllocation = domain.AllocationMap{"Crypto": 1}
	_, err = engine.Compare(context.Background(), in, CompareOptions{})
	require.Error(t, err)
	var missing *calculation.MissingAssetReturnError
	assert.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "failed to calculate base scenario")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.Compare(ctx, testInput(), CompareOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		PlanName:         "Camille",
		BaseScenarioName: "Balanced",
		ConfigPath:       "/path/to/plan.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:    "Balanced",
			Profile:         domain.ProfileBalanced,
			AnnualReturnPct: decimal.NewFromFloat(5.2),
			FutureValue:     decimal.NewFromInt(250000),
			CapitalGain:     decimal.NewFromInt(90000),
			InvestedTotal:   decimal.NewFromInt(160000),
			MonthlyIncome:   decimal.NewFromInt(800),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:              "Conservative Portfolio With A Long Name",
				Profile:                   domain.ProfileConservative,
				AnnualReturnPct:           decimal.NewFromFloat(4.1),
				FutureValue:               decimal.NewFromInt(210000),
				CapitalGain:               decimal.NewFromInt(50000),
				InvestedTotal:             decimal.NewFromInt(160000),
				MonthlyIncome:             decimal.NewFromInt(680),
				ReturnDiffFromBase:        decimal.NewFromFloat(-1.1),
				FutureValueDiffFromBase:   decimal.NewFromInt(-40000),
				FutureValuePctFromBase:    decimal.NewFromFloat(-16),
				MonthlyIncomeDiffFromBase: decimal.NewFromInt(-120),
			},
			{
				ScenarioName:              "Dynamic",
				Profile:                   domain.ProfileDynamic,
				AnnualReturnPct:           decimal.NewFromFloat(6.3),
				FutureValue:               decimal.NewFromInt(1500000),
				CapitalGain:               decimal.NewFromInt(1340000),
				InvestedTotal:             decimal.NewFromInt(160000),
				MonthlyIncome:             decimal.NewFromInt(950),
				ReturnDiffFromBase:        decimal.NewFromFloat(1.1),
				FutureValueDiffFromBase:   decimal.NewFromInt(1250000),
				FutureValuePctFromBase:    decimal.NewFromInt(500),
				MonthlyIncomeDiffFromBase: decimal.NewFromInt(150),
			},
		},
		Recommendations: []string{"Highest Value: Dynamic ends 1250000 € above Balanced"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())

	assert.Contains(t, out, "INVESTOR PROFILE COMPARISON")
	assert.Contains(t, out, "Plan: Camille")
	assert.Contains(t, out, "Base Scenario: Balanced")
	assert.Contains(t, out, "Configuration: /path/to/plan.yaml")
	assert.Contains(t, out, "Balanced (base)")
	assert.Contains(t, out, "Conservative Portfo...")
	assert.Contains(t, out, "250.0K €")
	assert.Contains(t, out, "1.50M €")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "-1.10 pts")
	assert.Contains(t, out, "-40.0K € (-16.0%)")
	assert.Contains(t, out, "+1.25M € (500.0%)")
	assert.Contains(t, out, "+150.00 €")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "• Highest Value: Dynamic")
}

func TestTableFormatter_NoAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil
	set.ConfigPath = ""

	out := (&TableFormatter{}).Format(set)
	assert.NotContains(t, out, "COMPARISON TO BASE")
	assert.NotContains(t, out, "RECOMMENDATIONS")
	assert.NotContains(t, out, "Configuration:")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(sampleSet())
	assert.Equal(t, "Base: Balanced | Conservative Portfolio With A Long Name: -40.0K € | Dynamic: +1.25M €", out)
}

func TestTableFormatter_FormatDecimal(t *testing.T) {
	tf := &TableFormatter{}
	tests := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(999), "999"},
		{decimal.NewFromInt(1000), "1.0K"},
		{decimal.NewFromInt(45678), "45.7K"},
		{decimal.NewFromInt(2500000), "2.50M"},
		{decimal.NewFromInt(-3000), "-3.0K"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tf.formatDecimal(tt.in))
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Len(t, records[0], 12)
	assert.Equal(t, []string{"Balanced", "base", "balanced", "5.20", "250000.00"}, records[1][:5])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "-40000.00", records[2][9])
	assert.Equal(t, "150.00", records[3][11])
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(sampleSet())
		require.NoError(t, err)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "Camille", decoded["planName"])
		alts, ok := decoded["alternativeResults"].([]any)
		require.True(t, ok)
		assert.Len(t, alts, 2)
	}
}

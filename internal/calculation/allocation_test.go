package calculation

import (
	"testing"

	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAllocation_SumsToOneForEveryBracketAndProfile(t *testing.T) {
	c := catalog.Default()

	for _, bracket := range domain.AllAgeBrackets() {
		age, _ := bracket.Bounds()
		for _, profile := range domain.Profiles() {
			allocation := ResolveAllocation(c, age, profile)
			assert.Len(t, allocation, len(c.Rows))
			assert.InDelta(t, 1.0, allocation.Sum(), 0.02, "age %d (%s), profile %s", age, bracket, profile)
		}
	}
}

func TestResolveAllocation_EveryAge(t *testing.T) {
	c := catalog.Default()
	for age := 0; age <= 110; age++ {
		for _, profile := range domain.Profiles() {
			allocation := ResolveAllocation(c, age, profile)
			assert.InDelta(t, 1.0, allocation.Sum(), 0.02, "age %d, profile %s", age, profile)
			for asset, fraction := range allocation {
				assert.GreaterOrEqual(t, fraction, 0.0, "age %d, %s, %s", age, profile, asset)
				assert.LessOrEqual(t, fraction, 1.0, "age %d, %s, %s", age, profile, asset)
			}
		}
	}
}

func TestResolveAllocation_BracketSelection(t *testing.T) {
	c := catalog.Default()
	equities, ok := c.Row("Global Equities")
	require.True(t, ok)

	tests := []struct {
		age     int
		bracket domain.AgeBracket
	}{
		{20, domain.Bracket20to24},
		{24, domain.Bracket20to24},
		{25, domain.Bracket25to29},
		{30, domain.Bracket30to34},
		{44, domain.Bracket40to44},
		{59, domain.Bracket55to59},
		{64, domain.Bracket60to64},
		{65, domain.Bracket65Plus},
		{90, domain.Bracket65Plus},
		{18, domain.Bracket65Plus},
	}

	for _, tt := range tests {
		allocation := ResolveAllocation(c, tt.age, domain.ProfileBalanced)
		assert.Equal(t, equities.Balanced[tt.bracket], allocation["Global Equities"], "age %d", tt.age)
	}
}

func TestResolveAllocation_ProfileDeltas(t *testing.T) {
	c := catalog.Default()
	row, ok := c.Row("Global Equities")
	require.True(t, ok)

	balanced := ResolveAllocation(c, 30, domain.ProfileBalanced)
	prudent := ResolveAllocation(c, 30, domain.ProfileConservative)
	dynamic := ResolveAllocation(c, 30, domain.ProfileDynamic)

	assert.InDelta(t, balanced["Global Equities"]+row.PrudentDelta, prudent["Global Equities"], 1e-9)
	assert.InDelta(t, balanced["Global Equities"]+row.DynamicDelta, dynamic["Global Equities"], 1e-9)
	assert.Less(t, prudent["Global Equities"], dynamic["Global Equities"])
}

func TestResolveAllocation_RoundsToTwoDecimals(t *testing.T) {
	var balanced [domain.NumAgeBrackets]float64
	balanced[domain.Bracket30to34] = 0.125
	c := domain.Catalog{Rows: []domain.AssetCatalogRow{
		{Asset: "A", Balanced: balanced, PrudentDelta: 0.0049, DynamicDelta: -0.004},
	}}

	assert.Equal(t, 0.12, ResolveAllocation(c, 32, domain.ProfileBalanced)["A"], "ties round to even")
	assert.Equal(t, 0.13, ResolveAllocation(c, 32, domain.ProfileConservative)["A"])
	assert.Equal(t, 0.12, ResolveAllocation(c, 32, domain.ProfileDynamic)["A"])
}

func TestResolveAllocation_HalfToEvenOnBinaryValue(t *testing.T) {
	tests := []struct {
		fraction float64
		want     float64
	}{
		{0.125, 0.12},
		{0.145, 0.14}, // 14.499999999999998 after scaling
		{0.375, 0.38},
		{0.005, 0.00},
		{0.135, 0.14},
	}
	for _, tt := range tests {
		var balanced [domain.NumAgeBrackets]float64
		balanced[domain.Bracket30to34] = tt.fraction
		c := domain.Catalog{Rows: []domain.AssetCatalogRow{{Asset: "A", Balanced: balanced}}}

		assert.Equal(t, tt.want, ResolveAllocation(c, 30, domain.ProfileBalanced)["A"], "fraction %v", tt.fraction)
	}
}

func TestResolveAllocation_EmptyCatalog(t *testing.T) {
	allocation := ResolveAllocation(domain.Catalog{}, 30, domain.ProfileBalanced)
	assert.Empty(t, allocation)
}

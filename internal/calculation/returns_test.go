package calculation

import (
	"errors"
	"testing"

	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedReturn(t *testing.T) {
	returns := domain.ReturnTable{"Equities": 0.08, "Bonds": 0.03, "Cash": 0.01}

	tests := []struct {
		name       string
		allocation domain.AllocationMap
		want       float64
	}{
		{"all equities", domain.AllocationMap{"Equities": 1}, 0.08},
		{"split", domain.AllocationMap{"Equities": 0.6, "Bonds": 0.4}, 0.06},
		{"three assets", domain.AllocationMap{"Equities": 0.5, "Bonds": 0.3, "Cash": 0.2}, 0.051},
		{"empty", domain.AllocationMap{}, 0},
		{"zero weights", domain.AllocationMap{"Equities": 0, "Bonds": 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeightedReturn(returns, tt.allocation)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestWeightedReturn_Linearity(t *testing.T) {
	c := catalog.Default()
	returns := c.ReturnTable()
	allocation := ResolveAllocation(c, 37, domain.ProfileDynamic)

	base, err := WeightedReturn(returns, allocation)
	require.NoError(t, err)

	for _, k := range []float64{0, 0.5, 2, 3} {
		scaled := make(domain.AllocationMap, len(allocation))
		for asset, fraction := range allocation {
			scaled[asset] = fraction * k
		}
		got, err := WeightedReturn(returns, scaled)
		require.NoError(t, err)
		assert.InDelta(t, k*base, got, 1e-12, "k=%v", k)
	}
}

func TestWeightedReturn_Deterministic(t *testing.T) {
	c := catalog.Default()
	allocation := ResolveAllocation(c, 52, domain.ProfileConservative)

	first, err := WeightedReturn(c.ReturnTable(), allocation)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		got, err := WeightedReturn(c.ReturnTable(), allocation.Clone())
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestWeightedReturn_MissingAsset(t *testing.T) {
	returns := domain.ReturnTable{"Equities": 0.08}
	allocation := domain.AllocationMap{"Equities": 0.7, "Crypto": 0.3}

	got, err := WeightedReturn(returns, allocation)
	require.Error(t, err)
	assert.Zero(t, got, "no partial sum on error")
	assert.True(t, errors.Is(err, ErrMissingAssetReturn))

	var missing *MissingAssetReturnError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Crypto", missing.Asset)
	assert.Contains(t, err.Error(), `"Crypto"`)
}

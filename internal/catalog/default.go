package catalog

import "github.com/holdi/holdi/internal/domain"

// Default returns the built-in fund catalog. Balanced columns run from the
// 20-24 bracket to 65+; each column sums to 1.00 and both profile delta
// columns sum to zero.
func Default() domain.Catalog {
	return domain.Catalog{Rows: []domain.AssetCatalogRow{
		{
			Asset:          "Global Equities",
			Balanced:       [domain.NumAgeBrackets]float64{0.35, 0.33, 0.31, 0.29, 0.27, 0.24, 0.21, 0.18, 0.15, 0.12},
			PrudentDelta:   -0.05,
			DynamicDelta:   0.05,
			ExpectedReturn: 0.07,
		},
		{
			Asset:          "European Equities",
			Balanced:       [domain.NumAgeBrackets]float64{0.15, 0.15, 0.14, 0.13, 0.12, 0.11, 0.10, 0.08, 0.07, 0.05},
			PrudentDelta:   -0.03,
			DynamicDelta:   0.03,
			ExpectedReturn: 0.065,
		},
		{
			Asset:          "Emerging Markets Equities",
			Balanced:       [domain.NumAgeBrackets]float64{0.10, 0.09, 0.08, 0.07, 0.06, 0.05, 0.04, 0.03, 0.02, 0.02},
			PrudentDelta:   -0.02,
			DynamicDelta:   0.02,
			ExpectedReturn: 0.08,
		},
		{
			Asset:          "Real Estate",
			Balanced:       [domain.NumAgeBrackets]float64{0.10, 0.10, 0.11, 0.11, 0.11, 0.11, 0.10, 0.10, 0.09, 0.08},
			PrudentDelta:   -0.01,
			DynamicDelta:   0.01,
			ExpectedReturn: 0.045,
		},
		{
			Asset:          "Government Bonds",
			Balanced:       [domain.NumAgeBrackets]float64{0.08, 0.09, 0.10, 0.11, 0.12, 0.13, 0.15, 0.16, 0.17, 0.18},
			PrudentDelta:   0.03,
			DynamicDelta:   -0.03,
			ExpectedReturn: 0.025,
		},
		{
			Asset:          "Corporate Bonds",
			Balanced:       [domain.NumAgeBrackets]float64{0.10, 0.10, 0.11, 0.12, 0.13, 0.14, 0.14, 0.15, 0.15, 0.15},
			PrudentDelta:   0.02,
			DynamicDelta:   -0.02,
			ExpectedReturn: 0.035,
		},
		{
			Asset:          "Guaranteed Euro Fund",
			Balanced:       [domain.NumAgeBrackets]float64{0.07, 0.09, 0.10, 0.12, 0.14, 0.17, 0.20, 0.23, 0.27, 0.30},
			PrudentDelta:   0.04,
			DynamicDelta:   -0.04,
			ExpectedReturn: 0.02,
		},
		{
			Asset:          "Money Market",
			Balanced:       [domain.NumAgeBrackets]float64{0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.06, 0.07, 0.08, 0.10},
			PrudentDelta:   0.02,
			DynamicDelta:   -0.02,
			ExpectedReturn: 0.015,
		},
	}}
}

package domain

import (
	"fmt"
	"sort"
)

// AgeBracket identifies one of the ten age ranges used to select the baseline
// allocation column of the asset catalog.
type AgeBracket int

const (
	Bracket20to24 AgeBracket = iota
	Bracket25to29
	Bracket30to34
	Bracket35to39
	Bracket40to44
	Bracket45to49
	Bracket50to54
	Bracket55to59
	Bracket60to64
	Bracket65Plus
)

// NumAgeBrackets is the number of baseline allocation columns in a catalog row.
const NumAgeBrackets = 10

const (
	firstBracketAge = 20
	bracketSpan     = 5
	lastClosedAge   = 64
)

// BracketForAge maps an age to its bracket. Every age the nine closed ranges do
// not cover (65 and above, and anything below 20) falls into Bracket65Plus.
func BracketForAge(age int) AgeBracket {
	if age >= firstBracketAge && age <= lastClosedAge {
		return AgeBracket((age - firstBracketAge) / bracketSpan)
	}
	return Bracket65Plus
}

// AllAgeBrackets returns the brackets in ascending order.
func AllAgeBrackets() []AgeBracket {
	brackets := make([]AgeBracket, NumAgeBrackets)
	for i := range brackets {
		brackets[i] = AgeBracket(i)
	}
	return brackets
}

// Bounds returns the inclusive age range of the bracket. The open-ended
// bracket reports max = -1.
func (b AgeBracket) Bounds() (min, max int) {
	if b == Bracket65Plus {
		return lastClosedAge + 1, -1
	}
	min = firstBracketAge + int(b)*bracketSpan
	return min, min + bracketSpan - 1
}

// String returns a short label such as "20-24" or "65+".
func (b AgeBracket) String() string {
	if b < 0 || int(b) >= NumAgeBrackets {
		return "unknown"
	}
	min, max := b.Bounds()
	if max < 0 {
		return fmt.Sprintf("%d+", min)
	}
	return fmt.Sprintf("%d-%d", min, max)
}

// AssetCatalogRow is one asset of the allocation table.
type AssetCatalogRow struct {
	Asset          string                  `json:"asset" yaml:"asset"`
	Balanced       [NumAgeBrackets]float64 `json:"balanced" yaml:"balanced"`
	PrudentDelta   float64                 `json:"prudentDelta" yaml:"prudent_delta"`
	DynamicDelta   float64                 `json:"dynamicDelta" yaml:"dynamic_delta"`
	ExpectedReturn float64                 `json:"expectedReturn" yaml:"expected_return"`
}

// Delta returns the profile shift applied on top of the balanced fraction.
func (r AssetCatalogRow) Delta(profile InvestorProfile) float64 {
	switch profile {
	case ProfileConservative:
		return r.PrudentDelta
	case ProfileDynamic:
		return r.DynamicDelta
	default:
		return 0
	}
}

// Catalog is the static allocation table, one row per asset.
type Catalog struct {
	Rows []AssetCatalogRow `json:"rows" yaml:"rows"`
}

// Assets returns the asset identifiers in catalog order.
func (c Catalog) Assets() []string {
	assets := make([]string, 0, len(c.Rows))
	for _, row := range c.Rows {
		assets = append(assets, row.Asset)
	}
	return assets
}

// Row looks up a catalog row by asset identifier.
func (c Catalog) Row(asset string) (AssetCatalogRow, bool) {
	for _, row := range c.Rows {
		if row.Asset == asset {
			return row, true
		}
	}
	return AssetCatalogRow{}, false
}

// ReturnTable derives the asset -> expected annual return mapping.
func (c Catalog) ReturnTable() ReturnTable {
	returns := make(ReturnTable, len(c.Rows))
	for _, row := range c.Rows {
		returns[row.Asset] = row.ExpectedReturn
	}
	return returns
}

// BracketSum sums the balanced fractions of all assets for one bracket.
func (c Catalog) BracketSum(bracket AgeBracket) float64 {
	var sum float64
	for _, row := range c.Rows {
		sum += row.Balanced[bracket]
	}
	return sum
}

// AllocationMap maps an asset identifier to its fraction of the portfolio.
type AllocationMap map[string]float64

// Assets returns the allocation's asset identifiers sorted by name, giving a
// stable iteration order for floating point sums.
func (a AllocationMap) Assets() []string {
	assets := make([]string, 0, len(a))
	for asset := range a {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// Sum returns the total of all fractions.
func (a AllocationMap) Sum() float64 {
	var sum float64
	for _, asset := range a.Assets() {
		sum += a[asset]
	}
	return sum
}

// Clone returns an independent copy.
func (a AllocationMap) Clone() AllocationMap {
	out := make(AllocationMap, len(a))
	for asset, fraction := range a {
		out[asset] = fraction
	}
	return out
}

// ReturnTable maps an asset identifier to its expected annual return fraction.
type ReturnTable map[string]float64

package catalog

import (
	"fmt"
	"strings"

	"github.com/holdi/holdi/internal/domain"
)

// Canonical column names used when a catalog is written out.
const (
	ColumnAsset          = "asset"
	ColumnPrudentDelta   = "prudent_delta"
	ColumnDynamicDelta   = "dynamic_delta"
	ColumnExpectedReturn = "expected_return"
)

// TableName is the database table holding the catalog.
const TableName = "assets_return_allocation"

// French headers of the HOLDi fund table, in the order they are written to a
// database.
const (
	frenchAsset          = "FONDS PROPOSÉS A TERME"
	frenchPrudentDelta   = "Profil Prudent"
	frenchDynamicDelta   = "Profil Dynamique"
	frenchExpectedReturn = "Taux"
)

// column is a position in the normalized catalog layout: the asset name, ten
// bracket columns, two deltas and the expected return.
type column int

const (
	colAsset column = iota
	colBracketFirst
	colPrudentDelta = colBracketFirst + domain.NumAgeBrackets
	colDynamicDelta = colPrudentDelta + 1
	colReturn       = colDynamicDelta + 1
	numColumns      = colReturn + 1
)

var columnAliases = buildColumnAliases()

func buildColumnAliases() map[string]column {
	aliases := map[string]column{
		"asset":                  colAsset,
		"fund":                   colAsset,
		"fonds":                  colAsset,
		"fonds proposés a terme": colAsset,
		"fonds proposes a terme": colAsset,
		"fonds proposés à terme": colAsset,
		"prudent_delta":          colPrudentDelta,
		"conservative_delta":     colPrudentDelta,
		"profil prudent":         colPrudentDelta,
		"dynamic_delta":          colDynamicDelta,
		"profil dynamique":       colDynamicDelta,
		"expected_return":        colReturn,
		"return":                 colReturn,
		"taux":                   colReturn,
	}
	for _, b := range domain.AllAgeBrackets() {
		col := colBracketFirst + column(b)
		aliases[normalizeHeader(b.String())] = col
		aliases[normalizeHeader(frenchBracketHeader(b))] = col
	}
	return aliases
}

// frenchBracketHeader returns headers such as "20 à 24 ans" and "65 ans et +".
func frenchBracketHeader(b domain.AgeBracket) string {
	min, max := b.Bounds()
	if max < 0 {
		return fmt.Sprintf("%d ans et +", min)
	}
	return fmt.Sprintf("%d à %d ans", min, max)
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.Trim(strings.TrimSpace(h), `"`)
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}

// mapColumns locates every required column in header. Unknown columns are
// ignored so exports carrying extra fields still load.
func mapColumns(header []string) ([numColumns]int, error) {
	var idx [numColumns]int
	for i := range idx {
		idx[i] = -1
	}
	for i, h := range header {
		col, ok := columnAliases[normalizeHeader(h)]
		if !ok {
			continue
		}
		if idx[col] >= 0 {
			return idx, fmt.Errorf("column %q appears twice", h)
		}
		idx[col] = i
	}

	var missing []string
	for col, pos := range idx {
		if pos < 0 {
			missing = append(missing, canonicalHeader(column(col)))
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func canonicalHeader(col column) string {
	switch {
	case col == colAsset:
		return ColumnAsset
	case col == colPrudentDelta:
		return ColumnPrudentDelta
	case col == colDynamicDelta:
		return ColumnDynamicDelta
	case col == colReturn:
		return ColumnExpectedReturn
	default:
		return domain.AgeBracket(col - colBracketFirst).String()
	}
}

// CanonicalHeader returns the English header row used by WriteCSV.
func CanonicalHeader() []string {
	header := make([]string, numColumns)
	for col := range header {
		header[col] = canonicalHeader(column(col))
	}
	return header
}

// FrenchHeader returns the header row of the HOLDi database table.
func FrenchHeader() []string {
	header := make([]string, 0, numColumns)
	header = append(header, frenchAsset)
	for _, b := range domain.AllAgeBrackets() {
		header = append(header, frenchBracketHeader(b))
	}
	return append(header, frenchPrudentDelta, frenchDynamicDelta, frenchExpectedReturn)
}

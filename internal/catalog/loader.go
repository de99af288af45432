package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/holdi/holdi/internal/domain"
	"gopkg.in/yaml.v3"
)

// Load reads a catalog file, choosing the decoder from its extension:
// .csv, .yaml/.yml, or .db/.sqlite/.sqlite3 for a database.
func Load(ctx context.Context, path string) (domain.Catalog, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return domain.Catalog{}, fmt.Errorf("unsupported catalog file %s (expected .csv, .yaml, .yml, .db or .sqlite)", path)
	}
}

// LoadSource resolves a plan's catalog source. An empty source yields the
// built-in catalog.
func LoadSource(ctx context.Context, src domain.CatalogSource) (domain.Catalog, error) {
	switch {
	case src.SQLite != "":
		return LoadSQLite(ctx, src.SQLite)
	case src.Path != "":
		return Load(ctx, src.Path)
	default:
		return Default(), nil
	}
}

// LoadCSV reads a catalog from a CSV file.
func LoadCSV(path string) (domain.Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	c, err := ReadCSV(file)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return c, nil
}

// ReadCSV decodes a catalog from CSV. The header may use the English column
// names or the French ones, in any order. Both "," and ";" are accepted as
// separators, and values may carry a decimal comma or a trailing "%".
func ReadCSV(r io.Reader) (domain.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Catalog{}, err
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = sniffSeparator(data)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) < 2 {
		return domain.Catalog{}, fmt.Errorf("insufficient data: need a header and at least one asset row")
	}

	idx, err := mapColumns(records[0])
	if err != nil {
		return domain.Catalog{}, err
	}

	c := domain.Catalog{Rows: make([]domain.AssetCatalogRow, 0, len(records)-1)}
	for i, record := range records[1:] {
		line := i + 2
		if isBlank(record) {
			continue
		}
		cells := make([]string, numColumns)
		for col, pos := range idx {
			if pos >= len(record) {
				return domain.Catalog{}, fmt.Errorf("line %d: expected at least %d fields, got %d", line, pos+1, len(record))
			}
			cells[col] = record[pos]
		}
		row, err := parseRow(cells)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("line %d: %w", line, err)
		}
		c.Rows = append(c.Rows, row)
	}
	return c, nil
}

// WriteCSV encodes the catalog with the canonical English header.
func WriteCSV(w io.Writer, c domain.Catalog) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CanonicalHeader()); err != nil {
		return err
	}
	for _, row := range c.Rows {
		if err := writer.Write(rowCells(row)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// LoadYAML reads a catalog from a YAML document with a top-level rows list.
func LoadYAML(path string) (domain.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var c domain.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}
	if len(c.Rows) == 0 {
		return domain.Catalog{}, fmt.Errorf("catalog %s has no rows", path)
	}
	return c, nil
}

func parseRow(cells []string) (domain.AssetCatalogRow, error) {
	row := domain.AssetCatalogRow{Asset: strings.TrimSpace(cells[colAsset])}
	if row.Asset == "" {
		return row, fmt.Errorf("empty asset name")
	}

	for b := 0; b < domain.NumAgeBrackets; b++ {
		v, err := parseFraction(cells[int(colBracketFirst)+b])
		if err != nil {
			return row, fmt.Errorf("%s, bracket %s: %w", row.Asset, domain.AgeBracket(b), err)
		}
		row.Balanced[b] = v
	}

	var err error
	if row.PrudentDelta, err = parseFraction(cells[colPrudentDelta]); err != nil {
		return row, fmt.Errorf("%s, %s: %w", row.Asset, ColumnPrudentDelta, err)
	}
	if row.DynamicDelta, err = parseFraction(cells[colDynamicDelta]); err != nil {
		return row, fmt.Errorf("%s, %s: %w", row.Asset, ColumnDynamicDelta, err)
	}
	if row.ExpectedReturn, err = parseFraction(cells[colReturn]); err != nil {
		return row, fmt.Errorf("%s, %s: %w", row.Asset, ColumnExpectedReturn, err)
	}
	return row, nil
}

func rowCells(row domain.AssetCatalogRow) []string {
	cells := make([]string, 0, numColumns)
	cells = append(cells, row.Asset)
	for _, v := range row.Balanced {
		cells = append(cells, formatFraction(v))
	}
	return append(cells,
		formatFraction(row.PrudentDelta),
		formatFraction(row.DynamicDelta),
		formatFraction(row.ExpectedReturn))
}

// parseFraction accepts "0.25", "0,25" and "25%". An empty cell is zero.
func parseFraction(s string) (float64, error) {
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return 0, nil
	}
	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.Replace(s, ",", ".", 1)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if percent {
		v /= 100
	}
	return v, nil
}

func formatFraction(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// sniffSeparator picks ";" when the header line has more semicolons than
// commas, which is how spreadsheet exports with decimal commas look.
func sniffSeparator(data []byte) rune {
	header := string(data)
	if i := strings.IndexByte(header, '\n'); i >= 0 {
		header = header[:i]
	}
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}
	return ','
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

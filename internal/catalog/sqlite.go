package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/holdi/holdi/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

// LoadSQLite reads the assets_return_allocation table of a HOLDi database.
func LoadSQLite(ctx context.Context, path string) (domain.Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return domain.Catalog{}, fmt.Errorf("catalog database %s: %w", path, err)
	}

	db, err := openSQLite(ctx, path)
	if err != nil {
		return domain.Catalog{}, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+TableName)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to query %s: %w", TableName, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to read columns: %w", err)
	}
	idx, err := mapColumns(names)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("table %s: %w", TableName, err)
	}

	values := make([]any, len(names))
	dest := make([]any, len(names))
	for i := range values {
		dest[i] = &values[i]
	}

	var c domain.Catalog
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return domain.Catalog{}, fmt.Errorf("failed to scan row: %w", err)
		}
		cells := make([]string, numColumns)
		for col, pos := range idx {
			cells[col] = cellString(values[pos])
		}
		row, err := parseRow(cells)
		if err != nil {
			return domain.Catalog{}, fmt.Errorf("table %s, row %d: %w", TableName, len(c.Rows)+1, err)
		}
		c.Rows = append(c.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to iterate rows: %w", err)
	}
	if len(c.Rows) == 0 {
		return domain.Catalog{}, fmt.Errorf("table %s is empty", TableName)
	}
	return c, nil
}

// SaveSQLite replaces the assets_return_allocation table of the database at
// path with the catalog, creating the file when needed. Columns use the
// French headers so the table matches what the HOLDi forms read.
func SaveSQLite(ctx context.Context, path string, c domain.Catalog) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	header := FrenchHeader()
	quoted := make([]string, len(header))
	defs := make([]string, len(header))
	for i, h := range header {
		quoted[i] = strconv.Quote(h)
		if i == 0 {
			defs[i] = quoted[i] + " TEXT NOT NULL"
		} else {
			defs[i] = quoted[i] + " REAL NOT NULL"
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+TableName); err != nil {
		return fmt.Errorf("failed to drop %s: %w", TableName, err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", TableName, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create %s: %w", TableName, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(header)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", TableName, strings.Join(quoted, ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range c.Rows {
		args := make([]any, 0, len(header))
		args = append(args, row.Asset)
		for _, v := range row.Balanced {
			args = append(args, v)
		}
		args = append(args, row.PrudentDelta, row.DynamicDelta, row.ExpectedReturn)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert %s: %w", row.Asset, err)
		}
	}

	return tx.Commit()
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return formatFraction(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []byte:
		return string(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, check and import asset catalogs",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show [catalog-file]",
	Short: "Print the allocation table",
	Long: `Print the allocation table: the balanced fraction of every asset per
age bracket, the conservative and dynamic deltas and the expected return.
Without a file the built-in catalog is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogFromArgs(cmd, args)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "csv":
			return catalog.WriteCSV(cmd.OutOrStdout(), cat)
		case "table", "":
			fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(cat))
			return nil
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, csv)", format)
		}
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [catalog-file]",
	Short: "Check a catalog for data-quality problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogFromArgs(cmd, args)
		if err != nil {
			return err
		}

		issues := catalog.Validate(cat)
		for _, issue := range issues {
			fmt.Fprintln(cmd.OutOrStdout(), issue)
		}
		if catalog.HasErrors(issues) {
			return errors.New("catalog has errors")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Catalog is valid (%d assets, %d warnings)\n", len(cat.Rows), len(issues))
		return nil
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import [catalog-file] [database]",
	Short: "Store a CSV or YAML catalog in a SQLite database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if issues := catalog.Validate(cat); catalog.HasErrors(issues) {
			for _, issue := range issues {
				fmt.Fprintln(cmd.ErrOrStderr(), issue)
			}
			return errors.New("refusing to import a catalog with errors")
		}
		if err := catalog.SaveSQLite(cmd.Context(), args[1], cat); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d assets into %s\n", len(cat.Rows), args[1])
		return nil
	},
}

func catalogFromArgs(cmd *cobra.Command, args []string) (domain.Catalog, error) {
	if len(args) == 0 {
		return catalog.Default(), nil
	}
	return catalog.Load(cmd.Context(), args[0])
}

// renderCatalog lays the catalog out like the allocation admin page
func renderCatalog(cat domain.Catalog) string {
	headers := []string{"Asset"}
	for _, b := range domain.AllAgeBrackets() {
		headers = append(headers, b.String())
	}
	headers = append(headers, "Cons. Δ", "Dyn. Δ", "Return")

	pct := func(v float64) string { return strconv.FormatFloat(v*100, 'f', 0, 64) }

	rows := make([][]string, 0, len(cat.Rows)+1)
	for _, row := range cat.Rows {
		cells := []string{row.Asset}
		for _, v := range row.Balanced {
			cells = append(cells, pct(v))
		}
		cells = append(cells,
			pct(row.PrudentDelta),
			pct(row.DynamicDelta),
			strconv.FormatFloat(row.ExpectedReturn*100, 'f', 2, 64))
		rows = append(rows, cells)
	}

	totals := []string{"Total"}
	for _, b := range domain.AllAgeBrackets() {
		totals = append(totals, pct(cat.BracketSum(b)))
	}
	rows = append(rows, append(totals, "", "", ""))

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		}).
		String()
}

func init() {
	catalogShowCmd.Flags().StringP("format", "f", "table", "Output format (table, csv)")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

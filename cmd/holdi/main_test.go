package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/compare"
	"github.com/holdi/holdi/internal/config"
	"github.com/holdi/holdi/internal/domain"
)

// resetFlags restores every flag to its default, since the commands are
// package-level and keep flag values between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func writePlan(t *testing.T, plan *domain.Plan) string {
	t.Helper()
	data, err := config.NewInputParser().Marshal(plan)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "holdi", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
}

func TestCommandSubcommands(t *testing.T) {
	expected := []string{"calculate", "allocation", "compare", "validate", "init", "catalog", "serve", "tui", "version"}

	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, registered[name], "command %q should be registered", name)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "holdi dev")
}

func TestCalculate_DefaultPlan(t *testing.T) {
	out, err := execute(t, "calculate", "--format", "json")
	require.NoError(t, err)

	var report domain.ProjectionReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 30, report.Parameters.Years)
	assert.Equal(t, 425.0, report.Parameters.MonthlyContribution)
	assert.Equal(t, domain.ProfileBalanced, report.Profile)
}

func TestCalculate_PlanFileAndProfileOverride(t *testing.T) {
	plan := config.DefaultPlan()
	plan.Name = "Camille"
	plan.Investor.Age = 35
	path := writePlan(t, plan)

	out, err := execute(t, "calculate", path, "--profile", "dynamique", "--format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 25+1, "header plus one row per year")
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"calculate", "--format", "xml"}, "unknown output format"},
		{"pdf to terminal", []string{"calculate", "--format", "pdf"}, "needs --output"},
		{"unknown profile", []string{"calculate", "--profile", "reckless"}, "unknown investor profile"},
		{"missing file", []string{"calculate", "does-not-exist.yaml"}, "does-not-exist.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCalculate_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	out, err := execute(t, "calculate", "--format", "pdf", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestAllocationCommand(t *testing.T) {
	out, err := execute(t, "allocation", "--age", "42", "--profile", "prudent")
	require.NoError(t, err)
	assert.Contains(t, out, "bracket 40-44")
	assert.Contains(t, out, "Conservative profile")
	assert.Contains(t, out, "Estimated annual return")

	_, err = execute(t, "allocation", "--age", "500")
	assert.ErrorIs(t, err, config.ErrInvalidParameter)
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "--format", "json")
	require.NoError(t, err)

	var set compare.ComparisonSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, "Balanced", set.BaseScenarioName)
	assert.Len(t, set.AlternativeResults, 2)

	out, err = execute(t, "compare", "--profiles", "dynamic")
	require.NoError(t, err)
	assert.Contains(t, out, "INVESTOR PROFILE COMPARISON")
	assert.NotContains(t, out, "Conservative")

	_, err = execute(t, "compare", "--format", "yaml")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	path := writePlan(t, config.DefaultPlan())
	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("investor:\n  age: -3\n  savings_rate_pct: 150\n"), 0o644))
	_, err = execute(t, "validate", bad)
	assert.ErrorIs(t, err, config.ErrInvalidParameter)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	_, err := execute(t, "init", path)
	require.NoError(t, err)

	plan, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPlan().Investor, plan.Investor)

	_, err = execute(t, "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", path, "--force")
	assert.NoError(t, err)
}

func TestCatalogCommands(t *testing.T) {
	out, err := execute(t, "catalog", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Money Market")
	assert.Contains(t, out, "65+")

	out, err = execute(t, "catalog", "show", "--format", "csv")
	require.NoError(t, err)
	parsed, err := catalog.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Assets(), parsed.Assets())

	out, err = execute(t, "catalog", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is valid")
}

func TestCatalogImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "catalog.csv")
	f, err := os.Create(src)
	require.NoError(t, err)
	require.NoError(t, catalog.WriteCSV(f, catalog.Default()))
	require.NoError(t, f.Close())

	db := filepath.Join(dir, "catalog.db")
	out, err := execute(t, "catalog", "import", src, db)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported")

	out, err = execute(t, "allocation", "--catalog", db, "--age", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Money Market")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/compare"
	"github.com/holdi/holdi/internal/config"
	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/logging"
	"github.com/holdi/holdi/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "holdi %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.GoVersion + " " + bi.Main.Path
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "holdi",
	Short: "Long-term savings projection calculator",
	Long: `Projects a monthly savings plan invested in an age- and risk-based
asset allocation, and reports the future value, capital gain and
monthly income it would produce.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newLogger builds the process logger from --log-level and --debug. Logs go
// to stderr so reports on stdout stay clean.
func newLogger(cmd *cobra.Command) (*logging.ZapLogger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	return logging.NewZapLoggerWithWriter(level, cmd.ErrOrStderr())
}

// newEngine builds a calculation engine logging through the process logger
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, *logging.ZapLogger, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logger)
	engine.Debug, _ = cmd.Flags().GetBool("debug")
	return engine, logger, nil
}

// loadPlan reads the plan file, or starts from the default plan when path is
// empty, and applies the --profile flag.
func loadPlan(cmd *cobra.Command, path string) (*domain.Plan, error) {
	parser := config.NewInputParser()
	plan := config.DefaultPlan()
	if path != "" {
		var err error
		if plan, err = parser.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if flag := cmd.Flags().Lookup("profile"); flag != nil && flag.Changed {
		profile, err := domain.ParseInvestorProfile(flag.Value.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrInvalidParameter, err)
		}
		plan.Profile = profile
	}
	return plan, nil
}

// loadCatalog resolves --catalog, then the plan's own source, then the
// built-in catalog.
func loadCatalog(ctx context.Context, cmd *cobra.Command, plan *domain.Plan) (domain.Catalog, error) {
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		return catalog.Load(ctx, path)
	}
	if plan == nil {
		return catalog.Default(), nil
	}
	return config.LoadCatalog(ctx, plan)
}

// projectionInput loads everything a projection needs from the command line
func projectionInput(cmd *cobra.Command, args []string) (calculation.ProjectionInput, string, error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	plan, err := loadPlan(cmd, path)
	if err != nil {
		return calculation.ProjectionInput{}, "", err
	}
	cat, err := loadCatalog(cmd.Context(), cmd, plan)
	if err != nil {
		return calculation.ProjectionInput{}, "", err
	}
	params, err := config.NewInputParser().ResolveParameters(plan)
	if err != nil {
		return calculation.ProjectionInput{}, "", err
	}
	return calculation.InputFromPlan(plan, cat, params), path, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [plan-file]",
	Short: "Project a savings plan",
	Long: `Project a savings plan and print the report.

Without a plan file the default investor (2 500 € salary, age 30,
17% savings rate, balanced profile) is projected.

Examples:
  holdi calculate plan.yaml
  holdi calculate plan.yaml --format csv
  holdi calculate plan.yaml --format pdf --output report.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, _, err := projectionInput(cmd, args)
		if err != nil {
			return err
		}
		engine, logger, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		report, err := engine.Project(cmd.Context(), in)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		outputFile, _ := cmd.Flags().GetString("output")
		if output.GetFormatterByName(format) == nil {
			return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", format,
				strings.Join(output.AvailableFormatterNames(), ", "), strings.Join(output.AvailableFormatAliases(), ", "))
		}
		if outputFile != "" {
			if err := output.SaveReport(outputFile, report, format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputFile)
			return nil
		}
		if output.IsBinary(format) {
			return fmt.Errorf("%s output needs --output", output.NormalizeFormatName(format))
		}
		return output.GenerateReport(cmd.OutOrStdout(), report, format)
	},
}

var allocationCmd = &cobra.Command{
	Use:   "allocation",
	Short: "Show the allocation for an age and investor profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		age, _ := cmd.Flags().GetInt("age")
		profileName, _ := cmd.Flags().GetString("profile")
		profile, err := domain.ParseInvestorProfile(profileName)
		if err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalidParameter, err)
		}
		if age < 0 || age > config.MaxAge {
			return fmt.Errorf("%w: age must be between 0 and %d", config.ErrInvalidParameter, config.MaxAge)
		}

		cat, err := loadCatalog(cmd.Context(), cmd, nil)
		if err != nil {
			return err
		}
		allocation := calculation.ResolveAllocation(cat, age, profile)
		weighted, err := calculation.WeightedReturn(cat.ReturnTable(), allocation)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ALLOCATION: age %d (bracket %s), %s profile\n", age, domain.BracketForAge(age), profile.DisplayName())
		fmt.Fprintln(out, strings.Repeat("=", 60))
		for _, asset := range cat.Assets() {
			if v, ok := allocation[asset]; ok {
				fmt.Fprintf(out, "  %-40s %8s\n", asset, output.FormatFraction(v))
			}
		}
		fmt.Fprintln(out, strings.Repeat("-", 60))
		fmt.Fprintf(out, "  %-40s %8s\n", "Total", output.FormatFraction(allocation.Sum()))
		fmt.Fprintf(out, "  %-40s %8s\n", "Estimated annual return", output.FormatFraction(weighted))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file and the catalog it uses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if err := parser.ValidatePlan(plan); err != nil {
			return err
		}
		cat, err := loadCatalog(cmd.Context(), cmd, plan)
		if err != nil {
			return err
		}
		issues := catalog.Validate(cat)
		for _, issue := range issues {
			fmt.Fprintln(cmd.ErrOrStderr(), issue)
		}
		if catalog.HasErrors(issues) {
			return errors.New("catalog has errors")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Plan file %s is valid\n", args[0])
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare a plan under the three investor profiles",
	Long: `Project the plan as written, then again under each investor profile,
and report the differences.

Examples:
  holdi compare plan.yaml
  holdi compare plan.yaml --profiles dynamic --format csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, path, err := projectionInput(cmd, args)
		if err != nil {
			return err
		}
		engine, logger, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		profileNames, _ := cmd.Flags().GetStringSlice("profiles")
		var profiles []domain.InvestorProfile
		for _, name := range profileNames {
			p, err := domain.ParseInvestorProfile(name)
			if err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidParameter, err)
			}
			profiles = append(profiles, p)
		}

		comparisonSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), in, compare.CompareOptions{
			Profiles:   profiles,
			ConfigPath: path,
		})
		if err != nil {
			return fmt.Errorf("comparison failed: %w", err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()
		switch strings.ToLower(outputFormat) {
		case "csv":
			s, err := (&compare.CSVFormatter{}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(out, s)
		case "json":
			s, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(out, s)
		case "compact":
			fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(comparisonSet))
		case "table", "console", "":
			fmt.Fprint(out, (&compare.TableFormatter{}).Format(comparisonSet))
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init [output-file]",
	Short: "Write a plan file with the default investor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(args[0]); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
		}
		data, err := config.NewInputParser().Marshal(config.DefaultPlan())
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plan written to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging, including every simulated year")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, csv, json, html, pdf)")
	calculateCmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	calculateCmd.Flags().String("profile", "", "Override the plan's investor profile")
	calculateCmd.Flags().String("catalog", "", "Asset catalog file (.csv, .yaml, .db)")

	allocationCmd.Flags().Int("age", config.DefaultAge, "Investor age")
	allocationCmd.Flags().String("profile", string(domain.ProfileBalanced), "Investor profile (conservative, balanced, dynamic)")
	allocationCmd.Flags().String("catalog", "", "Asset catalog file (.csv, .yaml, .db)")

	validateCmd.Flags().String("catalog", "", "Asset catalog file (.csv, .yaml, .db)")

	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().StringSlice("profiles", nil, "Profiles to compare against (default: all three)")
	compareCmd.Flags().String("profile", "", "Override the plan's investor profile")
	compareCmd.Flags().String("catalog", "", "Asset catalog file (.csv, .yaml, .db)")

	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(allocationCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

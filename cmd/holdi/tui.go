package main

import (
	"github.com/spf13/cobra"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [plan-file]",
	Short: "Edit and project a plan interactively",
	Long: `Open the interactive simulator: move the investor and simulation
sliders, pick a profile, edit the allocation and watch the projection
update. ctrl+s writes the plan back to the file (or holdi-plan.yaml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		}
		plan, err := loadPlan(cmd, path)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cmd.Context(), cmd, plan)
		if err != nil {
			return err
		}

		// The screen belongs to the TUI, so the engine stays quiet.
		return tui.Run(tui.Options{
			Plan:     plan,
			Catalog:  cat,
			PlanPath: path,
			Engine:   calculation.NewCalculationEngine(),
		})
	},
}

func init() {
	tuiCmd.Flags().String("profile", "", "Override the plan's investor profile")
	tuiCmd.Flags().String("catalog", "", "Asset catalog file (.csv, .yaml, .db)")
	rootCmd.AddCommand(tuiCmd)
}

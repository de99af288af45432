package compare

import (
	"context"
	"fmt"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CompareEngine runs one plan under several investor profiles
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// Profiles to run as alternatives. Empty means all three.
	Profiles   []domain.InvestorProfile
	ConfigPath string
}

// Compare projects the input as given (the base) and then, concurrently, under
// each alternative profile. Alternatives always use the age/profile allocation; a
// custom allocation only applies to the base, which then competes with every
// profile including its own.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	in calculation.ProjectionInput,
	options CompareOptions,
) (*ComparisonSet, error) {
	profiles := options.Profiles
	if len(profiles) == 0 {
		profiles = domain.Profiles()
	}

	baseReport, err := ce.CalcEngine.Project(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseReport)
	baseResult.Description = describe(baseReport)

	var runs []domain.InvestorProfile
	for _, profile := range profiles {
		if !profile.IsValid() {
			return nil, fmt.Errorf("unknown investor profile %q", profile)
		}
		if profile == in.Profile && len(in.CustomAllocation) == 0 {
			continue
		}
		runs = append(runs, profile)
	}

	// Each alternative writes only its own slot, so the order follows profiles.
	alternatives := make([]ComparisonResult, len(runs))
	g, gctx := errgroup.WithContext(ctx)
	for i, profile := range runs {
		g.Go(func() error {
			alt := in
			alt.Profile = profile
			alt.CustomAllocation = nil
			report, err := ce.CalcEngine.Project(gctx, alt)
			if err != nil {
				return fmt.Errorf("failed to calculate %s scenario: %w", profile, err)
			}
			altResult := ce.MetricsCalculator.CalculateMetrics(report)
			altResult.Description = describe(report)
			alternatives[i] = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		PlanName:           in.Name,
		BaseScenarioName:   baseResult.ScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func describe(report *domain.ProjectionReport) string {
	if report.CustomAllocation {
		return fmt.Sprintf("hand-edited allocation over %d assets", len(report.Allocation))
	}
	return fmt.Sprintf("%s allocation for ages %s", report.Profile.DisplayName(), report.Bracket)
}

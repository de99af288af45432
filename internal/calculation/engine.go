package calculation

import (
	"context"
	"fmt"

	"github.com/holdi/holdi/internal/domain"
)

// CalculationEngine runs the allocation → return → simulation pipeline.
// It holds no per-run state and may be shared between goroutines.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // log every simulated year
}

// NewCalculationEngine creates an engine with a no-op logger.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger installs l, or the no-op logger when l is nil.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// ProjectionInput is one fully resolved projection request.
type ProjectionInput struct {
	Name    string
	Catalog domain.Catalog
	Age     int
	Profile domain.InvestorProfile

	// CustomAllocation replaces the age/profile allocation when non-empty.
	CustomAllocation domain.AllocationMap

	Parameters domain.SimulationParameters
}

// InputFromPlan builds a ProjectionInput from a plan whose parameters have
// already been resolved and validated.
func InputFromPlan(plan *domain.Plan, catalog domain.Catalog, params domain.SimulationParameters) ProjectionInput {
	return ProjectionInput{
		Name:             plan.DisplayName(),
		Catalog:          catalog,
		Age:              plan.Investor.Age,
		Profile:          plan.Profile,
		CustomAllocation: plan.CustomAllocation,
		Parameters:       params,
	}
}

// Project resolves the allocation, aggregates the weighted annual return and
// simulates the plan. A MissingAssetReturnError from the aggregation is
// returned wrapped and unrecovered.
func (ce *CalculationEngine) Project(ctx context.Context, in ProjectionInput) (*domain.ProjectionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := ce.logger()

	allocation := ResolveAllocation(in.Catalog, in.Age, in.Profile)
	custom := len(in.CustomAllocation) > 0
	if custom {
		allocation = in.CustomAllocation.Clone()
		log.Debugf("%s: using custom allocation over %d assets", in.Name, len(allocation))
	}
	log.Debugf("%s: age %d (bracket %s), profile %s, allocation sum %.4f",
		in.Name, in.Age, domain.BracketForAge(in.Age), in.Profile, allocation.Sum())

	weighted, err := WeightedReturn(in.Catalog.ReturnTable(), allocation)
	if err != nil {
		log.Errorf("%s: %v", in.Name, err)
		return nil, fmt.Errorf("failed to compute weighted return for %s: %w", in.Name, err)
	}
	log.Infof("%s: weighted annual return %.4f%%", in.Name, weighted*100)

	result := Simulate(in.Parameters, weighted)
	if ce.Debug {
		for y := 0; y < result.Years(); y++ {
			log.Debugf("%s: year %d invested=%.2f earnings=%.2f balance=%.2f withdrawn=%.2f",
				in.Name, y+1, result.Invested[y], result.Earnings[y], result.Balances[y], result.Withdrawals[y])
		}
	}

	return &domain.ProjectionReport{
		Name:                 in.Name,
		Age:                  in.Age,
		Bracket:              domain.BracketForAge(in.Age).String(),
		Profile:              in.Profile,
		CustomAllocation:     custom,
		Allocation:           allocation,
		WeightedAnnualReturn: weighted,
		Parameters:           in.Parameters,
		Result:               result,
		Summary:              Summarize(result, in.Parameters.InitialAmount),
	}, nil
}

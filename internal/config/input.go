package config

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/holdi/holdi/internal/catalog"
	"github.com/holdi/holdi/internal/domain"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the investor form leaves a value out.
const (
	DefaultMonthlyNetSalary     = 2500
	DefaultAge                  = 30
	DefaultSavingsRatePct       = 17
	DefaultInflationRatePct     = 2
	DefaultWithdrawalRatePct    = 0
	DefaultYearsUntilWithdrawal = 5

	// TargetAge is the age the default horizon runs to.
	TargetAge = 60
	// MinDefaultYears and MaxDefaultYears bound the derived horizon.
	MinDefaultYears = 3
	MaxDefaultYears = 50

	// MaxYears bounds an explicit horizon override.
	MaxYears = 100
	MaxAge   = 120
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultPlan returns the plan a new investor starts from.
func DefaultPlan() *domain.Plan {
	return &domain.Plan{
		Investor: domain.InvestorDetails{
			MonthlyNetSalary: DefaultMonthlyNetSalary,
			Age:              DefaultAge,
			SavingsRatePct:   DefaultSavingsRatePct,
			Status:           domain.StatusIndividual,
		},
		Profile: domain.ProfileBalanced,
	}
}

// LoadFromFile loads a plan from a YAML or JSON file and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	if err := ip.ValidatePlan(plan); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return plan, nil
}

// Parse decodes a plan document and normalizes its profile and status
// labels. It does not validate numeric ranges.
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := Normalize(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Normalize resolves profile and status aliases in place. An empty profile
// becomes balanced.
func Normalize(plan *domain.Plan) error {
	if plan.Profile == "" {
		plan.Profile = domain.ProfileBalanced
	} else {
		profile, err := domain.ParseInvestorProfile(string(plan.Profile))
		if err != nil {
			return fmt.Errorf("%w: profile: %v", ErrInvalidParameter, err)
		}
		plan.Profile = profile
	}

	status, err := domain.ParseLegalStatus(string(plan.Investor.Status))
	if err != nil {
		return fmt.Errorf("%w: investor.status: %v", ErrInvalidParameter, err)
	}
	plan.Investor.Status = status
	return nil
}

// Marshal encodes a plan as YAML.
func (ip *InputParser) Marshal(plan *domain.Plan) ([]byte, error) {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	return data, nil
}

// ValidatePlan checks every field of the plan and reports all problems at
// once as ValidationErrors.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if plan == nil {
		return fmt.Errorf("%w: plan is required", ErrInvalidParameter)
	}

	var errs ValidationErrors
	inv := plan.Investor
	if !finite(inv.MonthlyNetSalary) || inv.MonthlyNetSalary < 0 {
		errs.add("investor.monthly_net_salary", "must be a non-negative amount")
	}
	if inv.Age < 0 || inv.Age > MaxAge {
		errs.add("investor.age", fmt.Sprintf("must be between 0 and %d", MaxAge))
	}
	if !finite(inv.SavingsRatePct) || inv.SavingsRatePct < 0 || inv.SavingsRatePct > 100 {
		errs.add("investor.savings_rate_pct", "must be between 0 and 100")
	}
	if !plan.Profile.IsValid() {
		errs.add("profile", fmt.Sprintf("unknown profile %q", plan.Profile))
	}

	for _, asset := range plan.CustomAllocation.Assets() {
		fraction := plan.CustomAllocation[asset]
		if asset == "" {
			errs.add("custom_allocation", "asset name is required")
		} else if !finite(fraction) || fraction < 0 || fraction > 1 {
			errs.add("custom_allocation."+asset, "must be a fraction between 0 and 1")
		}
	}

	if _, err := ip.ResolveParameters(plan); err != nil {
		if verrs, ok := err.(ValidationErrors); ok {
			errs = append(errs, verrs...)
		} else {
			return err
		}
	}

	return errs.orNil()
}

// ResolveParameters derives the simulation parameters from the investor
// details and applies the plan's overrides.
//
// Both the initial amount and the monthly contribution default to the whole
// part of salary × savings rate; the horizon defaults to the years left until
// TargetAge, clamped to [MinDefaultYears, MaxDefaultYears].
func (ip *InputParser) ResolveParameters(plan *domain.Plan) (domain.SimulationParameters, error) {
	monthly := math.Trunc(plan.Investor.MonthlyNetSalary * (plan.Investor.SavingsRatePct / 100))
	params := domain.SimulationParameters{
		Years:                DefaultYears(plan.Investor.Age),
		MonthlyContribution:  monthly,
		InitialAmount:        monthly,
		InflationRatePct:     DefaultInflationRatePct,
		WithdrawalRatePct:    DefaultWithdrawalRatePct,
		YearsUntilWithdrawal: DefaultYearsUntilWithdrawal,
	}

	if o := plan.Parameters; o != nil {
		if o.Years != nil {
			params.Years = *o.Years
		}
		if o.MonthlyContribution != nil {
			params.MonthlyContribution = *o.MonthlyContribution
		}
		if o.InitialAmount != nil {
			params.InitialAmount = *o.InitialAmount
		}
		if o.InflationRatePct != nil {
			params.InflationRatePct = *o.InflationRatePct
		}
		if o.WithdrawalRatePct != nil {
			params.WithdrawalRatePct = *o.WithdrawalRatePct
		}
		if o.YearsUntilWithdrawal != nil {
			params.YearsUntilWithdrawal = *o.YearsUntilWithdrawal
		}
	}

	if err := ValidateParameters(params); err != nil {
		return domain.SimulationParameters{}, err
	}
	return params, nil
}

// DefaultYears returns the default investment horizon for an age.
func DefaultYears(age int) int {
	years := TargetAge - age
	if years < MinDefaultYears {
		return MinDefaultYears
	}
	if years > MaxDefaultYears {
		return MaxDefaultYears
	}
	return years
}

// ValidateParameters rejects parameters the simulator does not accept:
// negative or non-finite amounts, rates outside [0, 100] and horizons outside
// [0, MaxYears].
func ValidateParameters(params domain.SimulationParameters) error {
	var errs ValidationErrors
	if params.Years < 0 || params.Years > MaxYears {
		errs.add("years", fmt.Sprintf("must be between 0 and %d", MaxYears))
	}
	if !finite(params.MonthlyContribution) || params.MonthlyContribution < 0 {
		errs.add("monthly_contribution", "must be a non-negative amount")
	}
	if !finite(params.InitialAmount) || params.InitialAmount < 0 {
		errs.add("initial_amount", "must be a non-negative amount")
	}
	if !finite(params.InflationRatePct) || params.InflationRatePct < 0 || params.InflationRatePct > 100 {
		errs.add("inflation_rate_pct", "must be between 0 and 100")
	}
	if !finite(params.WithdrawalRatePct) || params.WithdrawalRatePct < 0 || params.WithdrawalRatePct > 100 {
		errs.add("withdrawal_rate_pct", "must be between 0 and 100")
	}
	if params.YearsUntilWithdrawal < 0 {
		errs.add("years_until_withdrawal", "cannot be negative")
	}
	return errs.orNil()
}

// LoadCatalog loads the catalog a plan points at, or the built-in one.
func LoadCatalog(ctx context.Context, plan *domain.Plan) (domain.Catalog, error) {
	c, err := catalog.LoadSource(ctx, plan.Catalog)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

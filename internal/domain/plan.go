package domain

import "time"

// InvestorDetails is the profile form: who invests and how much they save.
type InvestorDetails struct {
	Name             string      `json:"name,omitempty" yaml:"name,omitempty"`
	MonthlyNetSalary float64     `json:"monthlyNetSalary" yaml:"monthly_net_salary"`
	Age              int         `json:"age" yaml:"age"`
	SavingsRatePct   float64     `json:"savingsRatePct" yaml:"savings_rate_pct"`
	Status           LegalStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// ParameterOverrides replaces individual derived simulation parameters.
// Nil fields keep the value derived from the investor details.
type ParameterOverrides struct {
	Years                *int     `json:"years,omitempty" yaml:"years,omitempty"`
	MonthlyContribution  *float64 `json:"monthlyContribution,omitempty" yaml:"monthly_contribution,omitempty"`
	InitialAmount        *float64 `json:"initialAmount,omitempty" yaml:"initial_amount,omitempty"`
	InflationRatePct     *float64 `json:"inflationRatePct,omitempty" yaml:"inflation_rate_pct,omitempty"`
	WithdrawalRatePct    *float64 `json:"withdrawalRatePct,omitempty" yaml:"withdrawal_rate_pct,omitempty"`
	YearsUntilWithdrawal *int     `json:"yearsUntilWithdrawal,omitempty" yaml:"years_until_withdrawal,omitempty"`
}

// Clone returns a copy that shares no pointers with o.
func (o *ParameterOverrides) Clone() *ParameterOverrides {
	if o == nil {
		return nil
	}
	return &ParameterOverrides{
		Years:                clonePtr(o.Years),
		MonthlyContribution:  clonePtr(o.MonthlyContribution),
		InitialAmount:        clonePtr(o.InitialAmount),
		InflationRatePct:     clonePtr(o.InflationRatePct),
		WithdrawalRatePct:    clonePtr(o.WithdrawalRatePct),
		YearsUntilWithdrawal: clonePtr(o.YearsUntilWithdrawal),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CatalogSource points at the asset catalog a plan is projected against.
// An empty source selects the built-in catalog.
type CatalogSource struct {
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`     // CSV or YAML file
	SQLite string `json:"sqlite,omitempty" yaml:"sqlite,omitempty"` // database file with assets_return_allocation
}

// IsZero reports whether no catalog source was configured.
func (s CatalogSource) IsZero() bool { return s.Path == "" && s.SQLite == "" }

// Plan is everything needed to run a projection: the investor, the chosen
// profile, parameter overrides and an optional hand-edited allocation.
type Plan struct {
	ID               string              `json:"id,omitempty" yaml:"id,omitempty"`
	Name             string              `json:"name,omitempty" yaml:"name,omitempty"`
	Investor         InvestorDetails     `json:"investor" yaml:"investor"`
	Profile          InvestorProfile     `json:"profile" yaml:"profile"`
	Parameters       *ParameterOverrides `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	CustomAllocation AllocationMap       `json:"customAllocation,omitempty" yaml:"custom_allocation,omitempty"`
	Catalog          CatalogSource       `json:"catalog,omitempty" yaml:"catalog,omitempty"`
	UpdatedAt        time.Time           `json:"updatedAt,omitempty" yaml:"-"`
}

// DisplayName returns the plan name, falling back to the investor name.
func (p *Plan) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Investor.Name != "" {
		return p.Investor.Name
	}
	return "Investment plan"
}

// Clone returns a deep copy of the plan, safe to hand to another goroutine
// while the original keeps being edited.
func (p *Plan) Clone() Plan {
	out := *p
	out.Parameters = p.Parameters.Clone()
	if p.CustomAllocation != nil {
		out.CustomAllocation = p.CustomAllocation.Clone()
	}
	return out
}

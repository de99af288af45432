package catalog

import (
	"fmt"
	"math"

	"github.com/holdi/holdi/internal/domain"
)

// SumTolerance is how far a bracket column may drift from 1.0 after the
// two-decimal rounding of its fractions.
const SumTolerance = 0.02

// Severity grades a catalog issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one data-quality finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Asset    string   `json:"asset,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Asset == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Asset, i.Message)
}

// Validate checks the catalog for the properties the projection relies on:
// unique named assets, finite values, bracket columns summing to 1.0 under
// every profile, and fractions that stay within [0, 1] once a profile delta is
// applied. Errors make projections meaningless; warnings flag suspicious but
// usable data.
func Validate(c domain.Catalog) []Issue {
	var issues []Issue
	add := func(sev Severity, asset, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Asset: asset, Message: fmt.Sprintf(format, args...)})
	}

	if len(c.Rows) == 0 {
		add(SeverityError, "", "catalog has no assets")
		return issues
	}

	seen := make(map[string]bool, len(c.Rows))
	for _, row := range c.Rows {
		if row.Asset == "" {
			add(SeverityError, "", "asset with empty name")
		} else if seen[row.Asset] {
			add(SeverityError, row.Asset, "duplicate asset")
		}
		seen[row.Asset] = true

		if !finite(row.PrudentDelta) || !finite(row.DynamicDelta) || !finite(row.ExpectedReturn) {
			add(SeverityError, row.Asset, "non-finite delta or return")
		}
		if row.ExpectedReturn <= -1 {
			add(SeverityError, row.Asset, "expected return %.4f would wipe out the position", row.ExpectedReturn)
		} else if row.ExpectedReturn < 0 || row.ExpectedReturn > 0.25 {
			add(SeverityWarning, row.Asset, "unusual expected return %.4f", row.ExpectedReturn)
		}

		for _, b := range domain.AllAgeBrackets() {
			for _, p := range domain.Profiles() {
				v := row.Balanced[b] + row.Delta(p)
				if !finite(v) {
					add(SeverityError, row.Asset, "non-finite fraction in bracket %s", b)
				} else if v < -1e-9 || v > 1+1e-9 {
					add(SeverityError, row.Asset, "%s fraction %.4f outside [0, 1] in bracket %s", p, v, b)
				}
			}
		}
	}

	for _, b := range domain.AllAgeBrackets() {
		for _, p := range domain.Profiles() {
			sum := columnSum(c, b, p)
			if math.Abs(sum-1) > SumTolerance {
				add(SeverityError, "", "%s allocation for bracket %s sums to %.4f", p, b, sum)
			}
		}
	}

	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

func columnSum(c domain.Catalog, b domain.AgeBracket, p domain.InvestorProfile) float64 {
	var sum float64
	for _, row := range c.Rows {
		sum += row.Balanced[b] + row.Delta(p)
	}
	return sum
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

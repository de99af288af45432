// Package tuimsg defines the messages scenes send to the root model.
package tuimsg

import (
	"github.com/holdi/holdi/internal/compare"
	"github.com/holdi/holdi/internal/domain"
)

// PlanChangedMsg signals the investor form, a parameter or the profile changed
type PlanChangedMsg struct {
	// InvestorChanged reports an edit of the profile form, which re-derives
	// every simulation parameter.
	InvestorChanged bool
}

// AllocationChangedMsg carries a hand-edited allocation. A nil allocation
// returns to the age/profile allocation.
type AllocationChangedMsg struct {
	Allocation domain.AllocationMap
}

// ProjectionCompleteMsg signals a projection has finished. Seq identifies
// the request so stale results can be dropped.
type ProjectionCompleteMsg struct {
	Seq    int
	Report *domain.ProjectionReport
	Err    error
}

// ComparisonRequestedMsg asks for the three-profile comparison
type ComparisonRequestedMsg struct{}

// ComparisonCompleteMsg signals a comparison has finished. Seq identifies
// the request like ProjectionCompleteMsg.Seq.
type ComparisonCompleteMsg struct {
	Seq int
	Set *compare.ComparisonSet
	Err error
}

// SavePlanMsg signals a request to write the plan back to its file
type SavePlanMsg struct{}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

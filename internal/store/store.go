// Package store persists investment plans between sessions.
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/holdi/holdi/internal/domain"
)

// ErrPlanNotFound is returned by Get and Delete for an unknown id.
var ErrPlanNotFound = errors.New("plan not found")

// PlanStore saves and retrieves plans by id.
type PlanStore interface {
	// Save stores the plan, assigning a new id when it has none, and returns
	// the stored copy.
	Save(ctx context.Context, plan domain.Plan) (domain.Plan, error)
	Get(ctx context.Context, id string) (domain.Plan, error)
	// List returns every stored plan, most recently updated first.
	List(ctx context.Context) ([]domain.Plan, error)
	Delete(ctx context.Context, id string) error
}

// prepare returns an independent copy of plan with an id and a fresh
// UpdatedAt stamp.
func prepare(plan domain.Plan, now func() time.Time) domain.Plan {
	out := plan.Clone()
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	out.UpdatedAt = now().UTC()
	return out
}

func sortByRecency(plans []domain.Plan) {
	sort.SliceStable(plans, func(i, j int) bool {
		if !plans[i].UpdatedAt.Equal(plans[j].UpdatedAt) {
			return plans[i].UpdatedAt.After(plans[j].UpdatedAt)
		}
		return plans[i].ID < plans[j].ID
	})
}

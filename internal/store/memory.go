package store

import (
	"context"
	"sync"
	"time"

	"github.com/holdi/holdi/internal/domain"
)

// MemoryPlanStore is an in-memory PlanStore, used by tests and when no Redis
// address is configured.
type MemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]domain.Plan
	now   func() time.Time
}

// NewMemoryPlanStore creates an empty in-memory store.
func NewMemoryPlanStore() *MemoryPlanStore {
	return &MemoryPlanStore{
		plans: make(map[string]domain.Plan),
		now:   time.Now,
	}
}

// Save stores a copy of the plan.
func (s *MemoryPlanStore) Save(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, err
	}
	stored := prepare(plan, s.now)

	s.mu.Lock()
	s.plans[stored.ID] = stored
	s.mu.Unlock()

	return stored.Clone(), nil
}

// Get returns a copy of the stored plan.
func (s *MemoryPlanStore) Get(ctx context.Context, id string) (domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return domain.Plan{}, err
	}
	s.mu.RLock()
	plan, ok := s.plans[id]
	s.mu.RUnlock()
	if !ok {
		return domain.Plan{}, ErrPlanNotFound
	}
	return plan.Clone(), nil
}

// List returns copies of all plans, most recently updated first.
func (s *MemoryPlanStore) List(ctx context.Context) ([]domain.Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	plans := make([]domain.Plan, 0, len(s.plans))
	for _, plan := range s.plans {
		plans = append(plans, plan.Clone())
	}
	s.mu.RUnlock()

	sortByRecency(plans)
	return plans, nil
}

// Delete removes a plan.
func (s *MemoryPlanStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return ErrPlanNotFound
	}
	delete(s.plans, id)
	return nil
}

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/holdi/holdi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(name string) domain.Plan {
	years := 25
	return domain.Plan{
		Name: name,
		Investor: domain.InvestorDetails{
			Name:             "Camille",
			MonthlyNetSalary: 3200,
			Age:              35,
			SavingsRatePct:   10,
			Status:           domain.StatusIndividual,
		},
		Profile:          domain.ProfileDynamic,
		Parameters:       &domain.ParameterOverrides{Years: &years},
		CustomAllocation: domain.AllocationMap{"Global Equities": 0.6, "Government Bonds": 0.4},
	}
}

// fakeClock returns strictly increasing times so recency ordering is stable.
func fakeClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

// runPlanStoreContract exercises the behavior every PlanStore shares.
func runPlanStoreContract(t *testing.T, s PlanStore) {
	ctx := context.Background()

	t.Run("save assigns id and timestamp", func(t *testing.T) {
		saved, err := s.Save(ctx, samplePlan("first"))
		require.NoError(t, err)
		_, err = uuid.Parse(saved.ID)
		assert.NoError(t, err, "generated ids are uuids")
		assert.False(t, saved.UpdatedAt.IsZero())

		got, err := s.Get(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Name)
		assert.Equal(t, domain.ProfileDynamic, got.Profile)
		assert.Equal(t, 35, got.Investor.Age)
		require.NotNil(t, got.Parameters)
		require.NotNil(t, got.Parameters.Years)
		assert.Equal(t, 25, *got.Parameters.Years)
		assert.InDelta(t, 0.6, got.CustomAllocation["Global Equities"], 1e-12)
	})

	t.Run("save keeps an explicit id", func(t *testing.T) {
		plan := samplePlan("explicit")
		plan.ID = "plan-explicit"
		saved, err := s.Save(ctx, plan)
		require.NoError(t, err)
		assert.Equal(t, "plan-explicit", saved.ID)

		plan.Name = "explicit v2"
		_, err = s.Save(ctx, plan)
		require.NoError(t, err)

		got, err := s.Get(ctx, "plan-explicit")
		require.NoError(t, err)
		assert.Equal(t, "explicit v2", got.Name)
	})

	t.Run("list is most recent first", func(t *testing.T) {
		latest, err := s.Save(ctx, samplePlan("latest"))
		require.NoError(t, err)

		plans, err := s.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(plans), 3)
		assert.Equal(t, latest.ID, plans[0].ID)
		for i := 1; i < len(plans); i++ {
			assert.False(t, plans[i].UpdatedAt.After(plans[i-1].UpdatedAt))
		}
	})

	t.Run("delete", func(t *testing.T) {
		saved, err := s.Save(ctx, samplePlan("doomed"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, saved.ID))
		_, err = s.Get(ctx, saved.ID)
		assert.ErrorIs(t, err, ErrPlanNotFound)
		assert.ErrorIs(t, s.Delete(ctx, saved.ID), ErrPlanNotFound)

		plans, err := s.List(ctx)
		require.NoError(t, err)
		for _, p := range plans {
			assert.NotEqual(t, saved.ID, p.ID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Get(ctx, "does-not-exist")
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestMemoryPlanStore(t *testing.T) {
	s := NewMemoryPlanStore()
	s.now = fakeClock()
	runPlanStoreContract(t, s)
}

func TestMemoryPlanStore_Isolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()

	plan := samplePlan("isolated")
	saved, err := s.Save(ctx, plan)
	require.NoError(t, err)

	// mutating the caller's copies must not leak into the store
	plan.CustomAllocation["Global Equities"] = 1
	saved.CustomAllocation["Government Bonds"] = 0
	*saved.Parameters.Years = 99

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got.CustomAllocation["Global Equities"], 1e-12)
	assert.InDelta(t, 0.4, got.CustomAllocation["Government Bonds"], 1e-12)
	assert.Equal(t, 25, *got.Parameters.Years)
}

func TestMemoryPlanStore_CanceledContext(t *testing.T) {
	s := NewMemoryPlanStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, samplePlan("x"))
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, "x"), context.Canceled)
}

func TestMemoryPlanStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPlanStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			saved, err := s.Save(ctx, samplePlan(fmt.Sprintf("plan-%d", i)))
			assert.NoError(t, err)
			_, err = s.Get(ctx, saved.ID)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	plans, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 20)
}

func TestPrepare(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))
	plan := prepare(domain.Plan{Name: "p"}, func() time.Time { return at })

	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, time.UTC, plan.UpdatedAt.Location())
	assert.True(t, plan.UpdatedAt.Equal(at))
}

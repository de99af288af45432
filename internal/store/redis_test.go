package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestRedisPlanStore runs against a live server when REDIS_ADDR is set.
func TestRedisPlanStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	s := NewRedisPlanStore(RedisOptions{
		Addr:      addr,
		KeyPrefix: "holdi-test-" + uuid.NewString(),
	})
	s.now = fakeClock()
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := s.client.Keys(ctx, s.prefix+":*").Result()
		if len(keys) > 0 {
			s.client.Del(ctx, keys...)
		}
		s.Close()
	})
	require.NoError(t, s.Ping(context.Background()))

	runPlanStoreContract(t, s)
}

func TestRedisPlanStore_Keys(t *testing.T) {
	s := NewRedisPlanStore(RedisOptions{Addr: "localhost:0"})
	defer s.Close()

	require.Equal(t, "holdi:plan:abc", s.planKey("abc"))
	require.Equal(t, "holdi:plans", s.indexKey())

	custom := NewRedisPlanStoreWithClient(s.client, "team", 0)
	require.Equal(t, "team:plan:abc", custom.planKey("abc"))
}

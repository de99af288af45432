package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/holdi/holdi/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "holdi"
	planKeySegment   = "plan"
	indexKeySegment  = "plans"
)

// RedisPlanStore keeps each plan as a JSON string under <prefix>:plan:<id>
// and indexes ids in the sorted set <prefix>:plans scored by update time.
type RedisPlanStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// RedisOptions configures NewRedisPlanStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix namespaces every key; empty means "holdi".
	KeyPrefix string
	// TTL expires plans that are not saved again; zero keeps them forever.
	TTL time.Duration
}

// NewRedisPlanStore creates a store backed by a new Redis client.
func NewRedisPlanStore(opts RedisOptions) *RedisPlanStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisPlanStoreWithClient(rdb, opts.KeyPrefix, opts.TTL)
}

// NewRedisPlanStoreWithClient wraps an existing client.
func NewRedisPlanStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisPlanStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisPlanStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Ping checks that the server is reachable.
func (s *RedisPlanStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the client's connections.
func (s *RedisPlanStore) Close() error {
	return s.client.Close()
}

func (s *RedisPlanStore) planKey(id string) string {
	return s.prefix + ":" + planKeySegment + ":" + id
}

func (s *RedisPlanStore) indexKey() string {
	return s.prefix + ":" + indexKeySegment
}

// Save writes the plan and its index entry in one transaction.
func (s *RedisPlanStore) Save(ctx context.Context, plan domain.Plan) (domain.Plan, error) {
	stored := prepare(plan, s.now)
	data, err := json.Marshal(stored)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("failed to encode plan %s: %w", stored.ID, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.planKey(stored.ID), data, s.ttl)
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{
			Score:  float64(stored.UpdatedAt.UnixNano()),
			Member: stored.ID,
		})
		return nil
	})
	if err != nil {
		return domain.Plan{}, fmt.Errorf("failed to save plan %s: %w", stored.ID, err)
	}
	return stored, nil
}

// Get loads one plan.
func (s *RedisPlanStore) Get(ctx context.Context, id string) (domain.Plan, error) {
	data, err := s.client.Get(ctx, s.planKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return decodePlan(id, data)
}

// List loads every indexed plan. Index entries whose plan expired are pruned.
func (s *RedisPlanStore) List(ctx context.Context) ([]domain.Plan, error) {
	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Plan{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.planKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}

	plans := make([]domain.Plan, 0, len(ids))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		plan, err := decodePlan(ids[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if len(stale) > 0 {
		if err := s.client.ZRem(ctx, s.indexKey(), stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune plan index: %w", err)
		}
	}

	sortByRecency(plans)
	return plans, nil
}

// Delete removes a plan and its index entry.
func (s *RedisPlanStore) Delete(ctx context.Context, id string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.planKey(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	if del.Val() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func decodePlan(id string, data []byte) (domain.Plan, error) {
	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("failed to decode plan %s: %w", id, err)
	}
	return plan, nil
}

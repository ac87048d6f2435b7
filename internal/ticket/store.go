package ticket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists tickets keyed by operator session. Get returns (nil, nil)
// when no well-formed ticket exists under the key — callers decide whether
// that means "reinitialize" (mutations) or "reject" (checkout).
type Store interface {
	Get(ctx context.Context, key string) (*Ticket, error)
	Set(ctx context.Context, key string, t *Ticket) error
	// Reset stores a fresh empty ticket under the key.
	Reset(ctx context.Context, key string) error
}

// RedisStore keeps tickets as JSON values with a TTL, so abandoned carts
// expire on their own.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Ticket, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var t Ticket
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		// Corrupt payload counts as "no ticket" rather than an error.
		return nil, nil
	}
	return t.Normalize(), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, t *Ticket) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.Set(ctx, key, New())
}

// MemoryStore is the in-process Store used by tests and single-node setups
// without Redis.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]*Ticket
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]*Ticket)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.m[key]
	if !ok {
		return nil, nil
	}
	// Copy through JSON so callers never mutate stored state in place.
	payload, err := json.Marshal(t)
	if err != nil {
		return nil, nil
	}
	var out Ticket
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, nil
	}
	return out.Normalize(), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, t *Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = t
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context, key string) error {
	return s.Set(ctx, key, New())
}

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Revoker remembers logged-out token IDs until the tokens would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const redisKeyPrefix = "auth:revoked:"

// RedisRevoker stores revocations as expiring keys so every instance sees them.
type RedisRevoker struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevoker parses a redis:// URL and checks the server is reachable.
func NewRedisRevoker(ctx context.Context, url string) (*RedisRevoker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewRedisRevokerWithClient(client), nil
}

// NewRedisRevokerWithClient wraps an existing client.
func NewRedisRevokerWithClient(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client, now: time.Now}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, redisKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set revocation: %w", err)
	}
	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, redisKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists revocation: %w", err)
	}
	return n > 0, nil
}

// Close releases the underlying connection pool.
func (r *RedisRevoker) Close() error {
	return r.client.Close()
}

// MemoryRevoker keeps revocations in process memory. It is safe for concurrent use.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryRevoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.pruneLocked(now)
	if until.After(now) {
		r.revoked[tokenID] = until
	}
	return nil
}

func (r *MemoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !until.After(r.now()) {
		delete(r.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (r *MemoryRevoker) pruneLocked(now time.Time) {
	for id, until := range r.revoked {
		if !until.After(now) {
			delete(r.revoked, id)
		}
	}
}

// Package gatecache caches positive compliance verdicts in Redis so the
// acceptance gate does not hit postgres on every request. Only "compliant"
// is ever cached; a miss always falls through to the real check. Entries
// are keyed under an epoch counter: publishing any version bumps the epoch,
// which orphans every cached verdict at once.
package gatecache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const epochKey = "legal:gate:epoch"

// RedisStore implements compliance verdict caching using Redis
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed gate cache
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		prefix: "legal:gate:compliant:",
	}, nil
}

// NewRedisStoreWithClient creates a store from an existing Redis client
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "legal:gate:compliant:",
	}
}

func (s *RedisStore) key(epoch int64, userID string) string {
	return fmt.Sprintf("%s%d:%s", s.prefix, epoch, userID)
}

func (s *RedisStore) epoch(ctx context.Context) (int64, error) {
	epoch, err := s.client.Get(ctx, epochKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read gate epoch: %w", err)
	}
	return epoch, nil
}

// IsCompliant reports whether a positive verdict is cached for the user
// under the current epoch.
func (s *RedisStore) IsCompliant(ctx context.Context, userID string) (bool, error) {
	epoch, err := s.epoch(ctx)
	if err != nil {
		return false, err
	}
	err = s.client.Get(ctx, s.key(epoch, userID)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read verdict: %w", err)
	}
	return true, nil
}

// MarkCompliant caches a positive verdict for the user with a TTL.
func (s *RedisStore) MarkCompliant(ctx context.Context, userID string, ttl time.Duration) error {
	epoch, err := s.epoch(ctx)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := s.client.Set(ctx, s.key(epoch, userID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("cache verdict: %w", err)
	}
	return nil
}

// Invalidate drops the cached verdict for one user.
func (s *RedisStore) Invalidate(ctx context.Context, userID string) error {
	epoch, err := s.epoch(ctx)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(epoch, userID)).Err(); err != nil {
		return fmt.Errorf("invalidate verdict: %w", err)
	}
	return nil
}

// Reset bumps the epoch, invalidating every cached verdict. Called after a
// version publish, when compliance must be re-evaluated for everyone.
func (s *RedisStore) Reset(ctx context.Context) error {
	if err := s.client.Incr(ctx, epochKey).Err(); err != nil {
		return fmt.Errorf("bump gate epoch: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

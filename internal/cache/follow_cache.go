package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	followersCountKeyPrefix = "social:followers:"
	followingCountKeyPrefix = "social:following:"

	countTTL = 10 * time.Minute
)

// FollowCache caches follow-graph cardinalities so profile views do not
// hit the database on every request.
type FollowCache interface {
	// GetFollowersCount returns (count, true, nil) on hit and
	// (0, false, nil) on miss.
	GetFollowersCount(ctx context.Context, userID string) (int64, bool, error)
	SetFollowersCount(ctx context.Context, userID string, count int64) error

	GetFollowingCount(ctx context.Context, userID string) (int64, bool, error)
	SetFollowingCount(ctx context.Context, userID string, count int64) error

	// Invalidate drops both counters for a user. Called on follow and
	// unfollow so the next read repopulates from the database.
	Invalidate(ctx context.Context, userID string) error

	Close() error
}

// RedisFollowCache implements FollowCache backed by Redis.
type RedisFollowCache struct {
	client *redis.Client
}

// NewRedisFollowCache creates a new Redis-backed follow cache.
func NewRedisFollowCache(address, password string, db int) (*RedisFollowCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisFollowCache{client: client}, nil
}

// NewRedisFollowCacheFromClient wraps an existing client. The caller owns
// the client lifecycle; Close on the cache is then a no-op.
func NewRedisFollowCacheFromClient(client *redis.Client) *RedisFollowCache {
	return &RedisFollowCache{client: client}
}

func followersCountKey(userID string) string {
	return followersCountKeyPrefix + userID
}

func followingCountKey(userID string) string {
	return followingCountKeyPrefix + userID
}

func (c *RedisFollowCache) getCount(ctx context.Context, key string) (int64, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis get count: %w", err)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse count: %w", err)
	}
	return count, true, nil
}

func (c *RedisFollowCache) setCount(ctx context.Context, key string, count int64) error {
	if err := c.client.Set(ctx, key, count, countTTL).Err(); err != nil {
		return fmt.Errorf("redis set count: %w", err)
	}
	return nil
}

// GetFollowersCount returns the cached followers count for a user.
func (c *RedisFollowCache) GetFollowersCount(ctx context.Context, userID string) (int64, bool, error) {
	return c.getCount(ctx, followersCountKey(userID))
}

// SetFollowersCount caches the followers count for a user.
func (c *RedisFollowCache) SetFollowersCount(ctx context.Context, userID string, count int64) error {
	return c.setCount(ctx, followersCountKey(userID), count)
}

// GetFollowingCount returns the cached following count for a user.
func (c *RedisFollowCache) GetFollowingCount(ctx context.Context, userID string) (int64, bool, error) {
	return c.getCount(ctx, followingCountKey(userID))
}

// SetFollowingCount caches the following count for a user.
func (c *RedisFollowCache) SetFollowingCount(ctx context.Context, userID string, count int64) error {
	return c.setCount(ctx, followingCountKey(userID), count)
}

// Invalidate drops both counters for a user.
func (c *RedisFollowCache) Invalidate(ctx context.Context, userID string) error {
	err := c.client.Del(ctx, followersCountKey(userID), followingCountKey(userID)).Err()
	if err != nil {
		return fmt.Errorf("redis invalidate counts: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (c *RedisFollowCache) Close() error {
	return c.client.Close()
}

// Ensure interface is satisfied at compile time.
var _ FollowCache = (*RedisFollowCache)(nil)

// NoopFollowCache satisfies FollowCache without caching anything. Used
// when Redis is not configured.
type NoopFollowCache struct{}

func (NoopFollowCache) GetFollowersCount(context.Context, string) (int64, bool, error) {
	return 0, false, nil
}
func (NoopFollowCache) SetFollowersCount(context.Context, string, int64) error { return nil }
func (NoopFollowCache) GetFollowingCount(context.Context, string) (int64, bool, error) {
	return 0, false, nil
}
func (NoopFollowCache) SetFollowingCount(context.Context, string, int64) error { return nil }
func (NoopFollowCache) Invalidate(context.Context, string) error               { return nil }
func (NoopFollowCache) Close() error                                           { return nil }

var _ FollowCache = NoopFollowCache{}

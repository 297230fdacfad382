package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent
var ErrCacheMiss = errors.New("cache miss")

// Cache TTLs
const (
	TTLThreadList = 30 * time.Second // listings churn quickly
	TTLThread     = 1 * time.Minute
	TTLDefault    = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixThread     = "thread:"
	PrefixThreadList = "threads:"
)

// ThreadKey builds the cache key for a single thread
func ThreadKey(id uint64) string {
	return fmt.Sprintf("%s%d", PrefixThread, id)
}

// ThreadListKey builds the cache key for one page of the unfiltered listing
func ThreadListKey(page, perPage int) string {
	return fmt.Sprintf("%sp%d:s%d", PrefixThreadList, page, perPage)
}

// Service Redis-backed cache for hot read paths
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error

	InvalidateThread(ctx context.Context, id uint64) error
	InvalidateThreadLists(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a Redis cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}

func (c *redisCache) InvalidateThread(ctx context.Context, id uint64) error {
	return c.Delete(ctx, ThreadKey(id))
}

func (c *redisCache) InvalidateThreadLists(ctx context.Context) error {
	return c.DeletePrefix(ctx, PrefixThreadList)
}

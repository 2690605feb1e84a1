package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// datasetCache keeps raw source bytes for remote data sources so a restart
// within the TTL does not refetch. A TTL of zero or less disables caching.
type datasetCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

type memoryCacheEntry struct {
	data []byte
	at   time.Time
}

type memoryCache struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]memoryCacheEntry
}

func newMemoryCache(ttl time.Duration) *memoryCache {
	return &memoryCache{ttl: ttl, now: time.Now, data: make(map[string]memoryCacheEntry)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.data[key]
	if !ok || c.now().Sub(e.at) >= c.ttl {
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, data []byte) error {
	if c.ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = memoryCacheEntry{data: data, at: c.now()}
	return nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisCache(redisURL string, ttl time.Duration) (*redisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
	}
	return &redisCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *redisCache) key(k string) string {
	return fmt.Sprintf("timeline:dataset:%s", k)
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, data []byte) error {
	// redis treats a zero expiration as "keep forever"
	if c.ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, c.key(key), data, c.ttl).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

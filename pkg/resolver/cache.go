package resolver

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// MemoryCache is the in-process tier.
type MemoryCache struct {
	cache *cache.Cache
}

func NewMemoryCache(ttl, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: cache.New(ttl, cleanupInterval)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	if x, found := m.cache.Get(key); found {
		return x.(string), true
	}
	return "", false
}

func (m *MemoryCache) Set(_ context.Context, key, value string) {
	m.cache.Set(key, value, cache.DefaultExpiration)
}

func (m *MemoryCache) Delete(_ context.Context, key string) {
	m.cache.Delete(key)
}

// RedisCache is shared between service instances. Errors count as misses.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(rdb *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key, value string) {
	r.rdb.Set(ctx, r.prefix+key, value, r.ttl)
}

func (r *RedisCache) Delete(ctx context.Context, key string) {
	r.rdb.Del(ctx, r.prefix+key)
}

// Tiered reads through its tiers in order and backfills the faster ones.
type Tiered struct {
	tiers []Cache
}

func NewTiered(tiers ...Cache) *Tiered {
	return &Tiered{tiers: tiers}
}

func (t *Tiered) Get(ctx context.Context, key string) (string, bool) {
	for i, tier := range t.tiers {
		if val, ok := tier.Get(ctx, key); ok {
			for _, faster := range t.tiers[:i] {
				faster.Set(ctx, key, val)
			}
			return val, true
		}
	}
	return "", false
}

func (t *Tiered) Set(ctx context.Context, key, value string) {
	for _, tier := range t.tiers {
		tier.Set(ctx, key, value)
	}
}

func (t *Tiered) Delete(ctx context.Context, key string) {
	for _, tier := range t.tiers {
		tier.Delete(ctx, key)
	}
}

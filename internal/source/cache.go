package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Cache stores serialized source results.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache implements Cache on a redis client.
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "wander"
	}
	return &RedisCache{rdb: rdb, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+":"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, c.prefix+":"+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// CachedSource memoizes another source's results. Cache failures are logged
// and bypassed; they never fail the fetch.
type CachedSource struct {
	inner  Source
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSource(inner Source, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CachedSource{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

func (s *CachedSource) Kind() domain.Source { return s.inner.Kind() }

// cacheKey rounds the centre to about 100 m so nearby requests share entries.
func cacheKey(kind domain.Source, q Query) string {
	return fmt.Sprintf("source:%s:%s:%.3f:%.3f:%.0f", kind, q.Mode, q.Center.Latitude, q.Center.Longitude, q.RadiusMeters)
}

func (s *CachedSource) Fetch(ctx context.Context, q Query) ([]Record, error) {
	key := cacheKey(s.inner.Kind(), q)

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "source cache read failed", "source", s.inner.Kind(), "error", err)
	}
	if ok {
		var records []Record
		if err := json.Unmarshal(raw, &records); err == nil {
			return records, nil
		}
		s.logger.WarnContext(ctx, "source cache entry unreadable", "source", s.inner.Kind(), "key", key)
	}

	records, err := s.inner.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(records)
	if err == nil {
		err = s.cache.Set(ctx, key, data, s.ttl)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "source cache write failed", "source", s.inner.Kind(), "error", err)
	}
	return records, nil
}

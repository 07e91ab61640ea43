package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nekogravitycat/courtmaster-backend/internal/events"
)

// Cache stores computed reports per generation. Invalidate starts a new generation;
// values written under an older one are never read again, so a report computed
// before a ledger change cannot outlive it.
type Cache interface {
	// Generation returns the current generation. Callers read it before the ledger.
	Generation(ctx context.Context) (int64, error)
	// Get reports a miss as (false, nil).
	Get(ctx context.Context, gen int64, field string, dst any) (bool, error)
	Set(ctx context.Context, gen int64, field string, v any) error
	Invalidate(ctx context.Context) error
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Generation(context.Context) (int64, error)             { return 0, nil }
func (NoopCache) Get(context.Context, int64, string, any) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, int64, string, any) error         { return nil }
func (NoopCache) Invalidate(context.Context) error                      { return nil }

// DefaultCacheKey prefixes the per-generation report hashes and the generation counter.
const DefaultCacheKey = "courtmaster:reports"

// RedisCache keeps the reports of one generation as fields of a single hash,
// "<key>:<gen>". The counter lives at "<key>:gen".
type RedisCache struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, key: DefaultCacheKey, ttl: ttl}
}

// GenerationKey is the Redis key of the generation counter.
func (c *RedisCache) GenerationKey() string { return c.key + ":gen" }

// HashKey is the Redis hash holding the reports of gen.
func (c *RedisCache) HashKey(gen int64) string { return fmt.Sprintf("%s:%d", c.key, gen) }

func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.GenerationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read report cache generation: %w", err)
	}
	return gen, nil
}

func (c *RedisCache) Get(ctx context.Context, gen int64, field string, dst any) (bool, error) {
	raw, err := c.client.HGet(ctx, c.HashKey(gen), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read report cache: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode cached report %s: %w", field, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, gen int64, field string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode report %s: %w", field, err)
	}

	key := c.HashKey(gen)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, field, raw)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write report cache: %w", err)
	}
	return nil
}

// Invalidate bumps the generation. Old hashes expire on their own.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.GenerationKey()).Err(); err != nil {
		return fmt.Errorf("invalidate report cache: %w", err)
	}
	return nil
}

// InvalidateOn returns a publisher that drops the cache on every ledger or settings event.
func InvalidateOn(cache Cache) events.Publisher {
	return events.PublisherFunc(func(ctx context.Context, _ events.Event) error {
		return cache.Invalidate(ctx)
	})
}

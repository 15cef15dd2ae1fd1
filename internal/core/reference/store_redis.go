// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/sabha/internal/platform/constants"
	"github.com/taibuivan/sabha/internal/platform/metrics"
)

// RedisLookup is a read-through cache in front of another [Lookup].
//
// Misses are cached as well (with [constants.RedisMissSentinel]) so a file full of
// misspelled names does not hammer Postgres. Redis failures are logged and the
// call falls through to the next lookup; the cache never fails a request.
type RedisLookup struct {
	client  redis.UniversalClient
	next    Lookup
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRedisLookup wraps next with a Redis cache whose entries live for ttl.
func NewRedisLookup(client redis.UniversalClient, next Lookup, ttl time.Duration, logger *slog.Logger, recorder *metrics.Metrics) *RedisLookup {
	return &RedisLookup{
		client:  client,
		next:    next,
		ttl:     ttl,
		logger:  logger,
		metrics: recorder,
	}
}

func cacheKey(variant Variant, name string) string {
	return constants.RedisPrefixReference + string(variant) + ":" + name
}

// FindIDByName implements [Lookup].
func (lookup *RedisLookup) FindIDByName(ctx context.Context, variant Variant, name string) (string, bool, error) {
	key := cacheKey(variant, name)

	// ── 1. Cache Read ─────────────────────────────────────────────────────
	cached, err := lookup.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		lookup.metrics.ReferenceLookup("cache", true)
		if cached == constants.RedisMissSentinel {
			return "", false, nil
		}
		return cached, true, nil
	case errors.Is(err, redis.Nil):
		lookup.metrics.ReferenceLookup("cache", false)
	default:
		lookup.logger.WarnContext(ctx, "reference_cache_read_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	// ── 2. Source Lookup ──────────────────────────────────────────────────
	id, found, err := lookup.next.FindIDByName(ctx, variant, name)
	if err != nil {
		return "", false, err
	}
	lookup.metrics.ReferenceLookup("store", found)

	// ── 3. Cache Fill ─────────────────────────────────────────────────────
	value := id
	if !found {
		value = constants.RedisMissSentinel
	}
	if err := lookup.client.Set(ctx, key, value, lookup.ttl).Err(); err != nil {
		lookup.logger.WarnContext(ctx, "reference_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	return id, found, nil
}

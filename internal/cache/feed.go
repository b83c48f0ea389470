// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// feed.go provides a Valkey-backed cache for composed feed JSON.
// The home and category views aggregate several queries each; caching
// the encoded response keeps the hot public endpoints off the database.
// Cache failures are never surfaced: a broken cache degrades to a miss.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// feedKeyPrefix is the Valkey key prefix for cached feed responses.
	feedKeyPrefix = "feed:"

	// DefaultFeedTTL is how long a composed feed stays cached. Writes
	// invalidate eagerly, the TTL only bounds staleness after missed
	// invalidations.
	DefaultFeedTTL = 5 * time.Minute
)

// FeedCache manages composed-feed JSON caching in Valkey.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedCache creates a new feed cache backed by the given Valkey client.
func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	if ttl == 0 {
		ttl = DefaultFeedTTL
	}
	return &FeedCache{client: client, ttl: ttl}
}

// Get retrieves a cached feed response by key.
func (fc *FeedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := fc.client.Get(ctx, feedKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("feed cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("feed cache hit", "key", key)
	return val, true
}

// Set stores an encoded feed response with the configured TTL.
func (fc *FeedCache) Set(ctx context.Context, key string, body []byte) {
	if err := fc.client.Set(ctx, feedKeyPrefix+key, body, fc.ttl).Err(); err != nil {
		slog.Warn("feed cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached feed by scanning for the prefix.
// Called after any post or category write; feeds aggregate across
// categories, so a single-key invalidation is never sufficient.
func (fc *FeedCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := fc.client.Scan(ctx, cursor, feedKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("feed cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := fc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("feed cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("feed cache cleared", "deleted", deleted)
	}
}

// HomeKey returns the cache key for the composed home feed.
func HomeKey() string {
	return "_home"
}

// CategoryKey returns the cache key for a category page feed.
func CategoryKey(slug string) string {
	return "category:" + slug
}

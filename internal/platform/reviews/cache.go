// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
)

// Cache is the subset of the go-redis command set used by [CachedClient].
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedClient keeps average-rating summaries in Redis for ttl.
//
// Cache errors never fail a lookup: a broken cache degrades to direct calls.
type CachedClient struct {
	*Client
	cache Cache
	ttl   time.Duration
}

// NewCachedClient wraps client with a Redis-backed summary cache.
func NewCachedClient(client *Client, cache Cache, ttl time.Duration) *CachedClient {
	return &CachedClient{Client: client, cache: cache, ttl: ttl}
}

// AverageRating returns the cached summary of bookID, fetching it on a miss.
func (cached *CachedClient) AverageRating(ctx context.Context, bookID string) (Summary, error) {
	logger := ctxutil.GetLogger(ctx)
	key := constants.RedisPrefixAverageRating + bookID

	raw, err := cached.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var summary Summary
		if json.Unmarshal(raw, &summary) == nil {
			return summary, nil
		}
	case !errors.Is(err, redis.Nil):
		logger.WarnContext(ctx, "rating_cache_read_failed", slog.String("book_id", bookID), slog.Any("error", err))
	}

	summary, err := cached.Client.AverageRating(ctx, bookID)
	if err != nil {
		return Summary{}, err
	}

	if payload, marshalErr := json.Marshal(summary); marshalErr == nil {
		if err := cached.cache.Set(ctx, key, payload, cached.ttl).Err(); err != nil {
			logger.WarnContext(ctx, "rating_cache_write_failed", slog.String("book_id", bookID), slog.Any("error", err))
		}
	}

	return summary, nil
}

// Forget drops the cached summary of bookID.
func (cached *CachedClient) Forget(ctx context.Context, bookID string) {
	if err := cached.cache.Del(ctx, constants.RedisPrefixAverageRating+bookID).Err(); err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "rating_cache_invalidate_failed",
			slog.String("book_id", bookID), slog.Any("error", err))
	}
}

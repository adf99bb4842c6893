// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reviews_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/platform/reviews"
)

const bookID = "0190f3c8-7d8a-7c3e-9a4b-2f1e5d6c7b8a"

func reviewServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/api/reviews/book/{id}/average-rating", func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
		if chi.URLParam(request, "id") != bookID {
			writer.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = writer.Write([]byte(`{"statusCode":200,"message":"ok","data":{"averageRating":4.5,"totalReviews":8}}`))
	})
	router.Get("/api/reviews/{id}", func(writer http.ResponseWriter, request *http.Request) {
		if chi.URLParam(request, "id") == "missing" {
			writer.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = writer.Write([]byte(`{"statusCode":200,"message":"ok","data":{"rating":2}}`))
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

/*
TestClient_AverageRating decodes the envelope and reports failures.
*/
func TestClient_AverageRating(t *testing.T) {
	var hits atomic.Int32
	client := reviews.NewClient(reviewServer(t, &hits).URL+"/", time.Second)

	summary, err := client.AverageRating(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, reviews.Summary{AverageRating: 4.5, TotalReviews: 8}, summary)

	_, err = client.AverageRating(context.Background(), "other")
	assert.Error(t, err)
}

/*
TestClient_PreviousRating distinguishes a missing review from a failure.
*/
func TestClient_PreviousRating(t *testing.T) {
	var hits atomic.Int32
	client := reviews.NewClient(reviewServer(t, &hits).URL, time.Second)

	rating, found, err := client.PreviousRating(context.Background(), "r-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, rating)

	_, found, err = client.PreviousRating(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

/*
TestClient_Unreachable surfaces transport errors.
*/
func TestClient_Unreachable(t *testing.T) {
	client := reviews.NewClient("http://127.0.0.1:1", 200*time.Millisecond)

	_, err := client.AverageRating(context.Background(), bookID)
	assert.Error(t, err)
}

type memoryCache struct {
	values map[string]string
}

func (cache *memoryCache) Get(ctx context.Context, key string) *redis.StringCmd {
	value, ok := cache.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (cache *memoryCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cache.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (cache *memoryCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(cache.values, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

/*
TestCachedClient serves repeated lookups from Redis until the entry is forgotten.
*/
func TestCachedClient(t *testing.T) {
	var hits atomic.Int32
	cache := &memoryCache{values: map[string]string{}}
	client := reviews.NewCachedClient(reviews.NewClient(reviewServer(t, &hits).URL, time.Second), cache, time.Minute)

	for range 3 {
		summary, err := client.AverageRating(context.Background(), bookID)
		require.NoError(t, err)
		assert.Equal(t, 8, summary.TotalReviews)
	}
	assert.Equal(t, int32(1), hits.Load())
	assert.Contains(t, cache.values, "reviews:avg:"+bookID)

	client.Forget(context.Background(), bookID)
	assert.Empty(t, cache.values)

	_, err := client.AverageRating(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

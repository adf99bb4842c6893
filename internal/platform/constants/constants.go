// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the catalog service.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Headers and cache prefixes shared between layers.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "bookcatalog-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Multipart uploads of several cover images need more than a JSON API would.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Uploads

const (
	// UploadField is the multipart field carrying book images.
	UploadField = "images"

	// MaxUploadFiles is the maximum number of images accepted per request.
	MaxUploadFiles = 5

	// UploadMemory is the in-memory budget for multipart parsing; larger parts spill to disk.
	UploadMemory = 8 << 20
)

// # Listing Defaults

const (
	// DefaultBookPageSize is the page size of book listings.
	DefaultBookPageSize = 12

	// DefaultReferencePageSize is the page size of author/category/publisher listings.
	DefaultReferencePageSize = 10
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixAverageRating caches review-service summaries per book id.
	RedisPrefixAverageRating = "reviews:avg:"
)

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics declares the Prometheus collectors of the catalog service.
//
// # Registration
//
// Collectors are created with promauto and therefore live in the default
// registry; [Handler] exposes that registry for scraping at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookcatalog"

// # HTTP

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "route"},
	)
)

// # Domain

var (
	// ImageCleanupFailures counts image files or records that could not be
	// removed during compensation or deletion.
	ImageCleanupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_cleanup_failures_total",
			Help:      "Image files or records left behind by failed cleanup.",
		},
	)

	// RatingEventsTotal counts applied rating events by action.
	RatingEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rating_events_total",
			Help:      "Rating events applied to book summaries by action.",
		},
		[]string{"action"},
	)

	// RatingLookupFailures counts review-service lookups that fell back to zero.
	RatingLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rating_lookup_failures_total",
			Help:      "Failed review-service rating lookups.",
		},
	)
)

// Handler returns the scrape endpoint for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

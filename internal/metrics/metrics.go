// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, path and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelsuite_http_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes request latency per route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hotelsuite_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// SyncUpserts counts catalog documents pushed to the search index.
	SyncUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelsuite_catalog_sync_upserts_total",
		Help: "Catalog product documents upserted into the search index.",
	})

	// SyncDeletes counts catalog documents removed from the search index.
	SyncDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelsuite_catalog_sync_deletes_total",
		Help: "Catalog product documents deleted from the search index.",
	})

	// SyncFailures counts write events that could not be mirrored.
	SyncFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hotelsuite_catalog_sync_failures_total",
		Help: "Catalog sync events that failed.",
	})

	// JobsProcessed counts queue jobs by type and outcome.
	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hotelsuite_jobs_processed_total",
		Help: "Queue jobs processed by the worker pool.",
	}, []string{"type", "outcome"})
)

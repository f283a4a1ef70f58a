// Package metrics registers the Prometheus instruments for the dashboard
// backend. Metrics are package-level so registration happens exactly once
// at import time regardless of how many components report into them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts cache reads that returned a live entry, labelled by
	// which cache answered ("table" or "statistics").
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_cache_hits_total",
		Help: "Total number of cache hits",
	}, []string{"cache"})

	// CacheMisses counts cache reads that fell through to a rebuild.
	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_cache_misses_total",
		Help: "Total number of cache misses",
	}, []string{"cache"})

	// UpstreamRequests counts page requests to the tabular store by table
	// and response class (2xx, 4xx, 5xx, 429, error).
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_upstream_requests_total",
		Help: "Total number of upstream page requests",
	}, []string{"table", "class"})

	// UpstreamRetries counts page requests that were retried after a
	// rate-limit, server error, or timeout.
	UpstreamRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulseboard_upstream_retries_total",
		Help: "Total number of retried upstream page requests",
	})

	// FetchLatency observes the end-to-end duration of a full table fetch,
	// including pagination and retries.
	FetchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulseboard_table_fetch_seconds",
		Help:    "Duration of full table fetches in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"table"})

	// StatisticsBuildDuration observes how long a full statistics document
	// assembly takes on a cache miss.
	StatisticsBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulseboard_statistics_build_seconds",
		Help:    "Duration of statistics document assembly in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// TablesDegraded counts table fetches inside an assembly that failed and
	// were downgraded to an empty record set.
	TablesDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulseboard_tables_degraded_total",
		Help: "Total number of table fetches degraded to empty during assembly",
	})

	// AutomationTriggers counts webhook trigger calls by action and outcome.
	AutomationTriggers = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_automation_triggers_total",
		Help: "Total number of automation webhook triggers",
	}, []string{"action", "outcome"})
)

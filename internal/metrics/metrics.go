package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TweetsScored tracks terminal outcomes by result (scored / null)
	TweetsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flamescan_tweets_scored_total",
			Help: "Total number of tweets resolved to a terminal outcome",
		},
		[]string{"result"},
	)

	// BackendRequests tracks scoring backend calls by status
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flamescan_backend_requests_total",
			Help: "Total number of scoring backend requests",
		},
		[]string{"status"},
	)

	// BackendLatency tracks scoring backend call latency
	BackendLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flamescan_backend_latency_seconds",
			Help:    "Scoring backend request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CacheRequests tracks response cache lookups by result (hit / miss)
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flamescan_cache_requests_total",
			Help: "Total number of response cache lookups",
		},
		[]string{"result"},
	)

	// StoreOutcomes tracks the number of outcomes currently persisted
	StoreOutcomes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flamescan_store_outcomes",
			Help: "Number of outcomes in the result store",
		},
	)

	// PendingTweets tracks tweets still waiting for a terminal outcome
	PendingTweets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flamescan_pending_tweets",
			Help: "Number of tweets not yet resolved in this run",
		},
	)

	// EventsEmitted tracks outcome events published by status
	EventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flamescan_events_emitted_total",
			Help: "Total number of outcome events emitted",
		},
		[]string{"status"},
	)

	// DBPoolUsage tracks connection pool utilization when the
	// PostgreSQL store is active
	DBPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flamescan_db_pool_usage_percent",
			Help: "Percentage of open database connections in use",
		},
	)
)

package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_queries_total",
		Help: "Total number of analytics queries by resolved analysis type",
	}, []string{"analysis_type"})

	QueriesDegradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analytics_queries_degraded_total",
		Help: "Total number of queries that returned a degraded result",
	})

	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_pipeline_duration_seconds",
		Help:    "Latency of aggregation pipeline execution",
		Buckets: prometheus.DefBuckets,
	}, []string{"analysis_type"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analytics_cache_hits_total",
		Help: "Total number of query results served from cache",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analytics_cache_misses_total",
		Help: "Total number of query cache misses",
	})

	DashboardRefreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analytics_dashboard_refresh_total",
		Help: "Total number of dashboard cache refreshes",
	})

	SnapshotRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "analytics_snapshot_rows",
		Help: "Row count per table in the published snapshot",
	}, []string{"table"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_published_total",
		Help: "Total number of events published to the broker",
	}, []string{"event_type"})

	EventsConsumedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_consumed_total",
		Help: "Total number of events consumed by the audit worker",
	}, []string{"event_type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_cadastro_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// ActiveConnections tracks in-flight requests
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cadastro_active_connections",
			Help: "Number of active connections",
		},
	)

	// CadastroResults counts registration attempts by outcome
	CadastroResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_registrations_total",
			Help: "Number of registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_cache_hits_total",
			Help: "Number of cache lookups by result",
		},
		[]string{"operation", "result"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// EventsPublished tracks registration events sent to Kafka
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_events_published_total",
			Help: "Number of registration events published",
		},
		[]string{"status"},
	)

	// OperationDuration tracks the duration of monitored service operations
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "app_cadastro_operation_duration_seconds",
			Help:    "Duration of service operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// DegradedMode is 1 while writes are refused because a dependency is down
	DegradedMode = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_cadastro_degraded_mode",
			Help: "Whether degraded mode is active (1) or not (0)",
		},
	)

	// RateLimited tracks requests rejected by the rate limiter
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_cadastro_rate_limited_total",
			Help: "Number of requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

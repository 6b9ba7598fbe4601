package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "snsproject_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsproject_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ServiceOperations counts service operations by name and outcome code.
	ServiceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsproject_service_operations_total",
		Help: "Total service operations by operation and result",
	}, []string{"operation", "result"})

	// AlarmsPublished counts alarm notifications by type and delivery outcome.
	AlarmsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "snsproject_alarms_published_total",
		Help: "Total alarm notifications published by type and outcome",
	}, []string{"type", "outcome"})
)

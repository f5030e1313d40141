package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Lifecycle
	RequirementOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requirement_operations_total",
			Help: "Requirement lifecycle operations by outcome",
		},
		[]string{"operation", "outcome"}, // outcome: ok|not_found|forbidden|locked|invalid|error
	)

	// Audit
	AuditWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Audit entries that could not be appended",
		},
	)
	AuditPublishFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_publish_failures_total",
			Help: "Audit entries that could not be mirrored to an external sink",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	// HTTP
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests by route pattern",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequirementOps)
		prometheus.MustRegister(AuditWriteFailures)
		prometheus.MustRegister(AuditPublishFailures)
		prometheus.MustRegister(WorkerQueueDepth)
		prometheus.MustRegister(HTTPLatency)
	})
}

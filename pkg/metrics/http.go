package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of API handlers by route
	HTTPRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "decision_http_request_latency_seconds",
		Help:    "Latency of decision API handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Total number of API requests by route and status
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "decision_http_requests_total",
		Help: "Total number of decision API requests",
	}, []string{"method", "route", "status"})

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestLatency,
			HTTPRequests,
		)
	})
}

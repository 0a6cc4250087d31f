package decision

import "github.com/prometheus/client_golang/prometheus"

var (
	DecisionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decision_requests_total",
			Help: "Count of scored decisions by type and status.",
		},
		[]string{"type", "status"},
	)

	DecisionScoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "decision_score_latency_seconds",
			Help:    "Latency of decision scoring inside the engine.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"type"},
	)

	AHPInconsistentWeightsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ahp_inconsistent_weights_total",
		Help: "Multi-criteria requests whose consistency ratio exceeded the threshold.",
	})
)

func init() {
	prometheus.MustRegister(DecisionRequestsTotal, DecisionScoreLatency, AHPInconsistentWeightsTotal)
}

package bandit

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BanditRecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_recommendations_total",
			Help: "Count of bandit recommendations by emotion and time bucket.",
		},
		[]string{"emotion", "time_bucket"},
	)

	BanditFeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bandit_feedback_events_total",
			Help: "Count of arm updates by source (assumed, outcome) and result.",
		},
		[]string{"source", "result"},
	)
)

func init() {
	prometheus.MustRegister(BanditRecommendationsTotal, BanditFeedbackEventsTotal)
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

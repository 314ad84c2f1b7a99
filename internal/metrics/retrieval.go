package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "retrieval_requests_total",
			Help:      "Total number of retrieval requests",
		},
		[]string{"corpus", "status"},
	)

	RetrievalResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outreach",
			Name:      "retrieval_results_returned",
			Help:      "Number of results returned per retrieval request",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"corpus"},
	)

	RetrievalCandidatesSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "retrieval_candidates_skipped_total",
			Help:      "Candidates dropped by the keyword filter",
		},
		[]string{"corpus"},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers Prometheus retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalRequestsTotal)
	prometheus.MustRegister(RetrievalResultsReturned)
	prometheus.MustRegister(RetrievalCandidatesSkipped)
	retrievalMetricsRegistered = true
}

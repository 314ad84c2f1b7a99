package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding pipeline metrics, shared by the provider transport and the
// cache decorator.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "embedding_requests_total",
			Help:      "Embedding requests by outcome",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outreach",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding provider round-trip latency",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "embedding_tokens_total",
			Help:      "Tokens billed by the embedding provider",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "embedding_errors_total",
			Help:      "Embedding failures by error class",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outreach",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var embeddingRegistered bool

// RegisterEmbeddingMetrics registers the embedding collectors. Called once
// from main; repeated calls are no-ops so tests can share a process.
func RegisterEmbeddingMetrics() {
	if embeddingRegistered {
		return
	}
	for _, c := range []prometheus.Collector{
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingTokensTotal,
		EmbeddingErrorsTotal,
		EmbeddingCacheTotal,
	} {
		prometheus.MustRegister(c)
	}
	embeddingRegistered = true
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// TEI backend Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tei_requests_total",
			Help:      "Total number of rerank requests sent to the TEI backend",
		},
		[]string{"status"}, // "success" / "error"
	)

	BackendRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tei_request_duration_seconds",
			Help:      "TEI rerank request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	BackendErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tei_errors_total",
			Help:      "Total TEI backend errors by type",
		},
		[]string{"error_type"},
	)

	RerankDocuments = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rerank_documents",
			Help:      "Number of documents per rerank request forwarded to TEI",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 6), // 1 .. 1024
		},
	)
)

// Backend error types.
const (
	ErrorTypeConnect        = "connect"
	ErrorTypeStatus         = "status"
	ErrorTypeRead           = "read"
	ErrorTypeDecode         = "decode"
	ErrorTypeLengthMismatch = "length_mismatch"
)

var backendMetricsRegistered bool

// RegisterBackendMetrics registers the TEI backend metrics. Must be called once from main.
func RegisterBackendMetrics() {
	if backendMetricsRegistered {
		return
	}
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(BackendErrorsTotal)
	prometheus.MustRegister(RerankDocuments)
	backendMetricsRegistered = true
}

// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GRPCServerHandlingSeconds is a histogram for gRPC server request latencies
	GRPCServerHandlingSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "grpc_server_handling_seconds",
			Help:    "Histogram of response latency (seconds) of gRPC that had been application-level handled by the server.",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "code"},
	)

	// InferenceLatencySeconds is a histogram for forward/Viterbi latency
	InferenceLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hmm_inference_latency_seconds",
			Help:    "Histogram of HMM inference latency (seconds) excluding gRPC overhead.",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"operation"},
	)

	// SequenceLength is a histogram of observation sequence lengths
	SequenceLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hmm_sequence_length",
			Help:    "Histogram of observation sequence lengths submitted for inference.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// CacheLookups counts decode cache lookups by result (hit, miss, error)
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hmm_cache_lookups_total",
			Help: "Number of decode cache lookups by result.",
		},
		[]string{"result"},
	)

	// HealthStatus is a gauge indicating the health status of the service
	HealthStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "health_status",
			Help: "Health status of the service (1 = healthy, 0 = unhealthy).",
		},
	)
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// RecordGRPCLatency records the latency of a gRPC method call
func RecordGRPCLatency(method, code string, seconds float64) {
	GRPCServerHandlingSeconds.WithLabelValues(method, code).Observe(seconds)
}

// RecordInferenceLatency records the latency of one inference pass
func RecordInferenceLatency(operation string, seconds float64) {
	InferenceLatencySeconds.WithLabelValues(operation).Observe(seconds)
}

// RecordSequenceLength records the length of an observation sequence
func RecordSequenceLength(n int) {
	SequenceLength.Observe(float64(n))
}

// RecordCacheLookup counts one cache lookup with the given result
func RecordCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

// SetHealthy sets the health status to healthy
func SetHealthy() {
	HealthStatus.Set(1)
}

// SetUnhealthy sets the health status to unhealthy
func SetUnhealthy() {
	HealthStatus.Set(0)
}

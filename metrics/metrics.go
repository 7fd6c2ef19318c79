// Package metrics provides Prometheus metrics collection for the MediCombine API.
// HTTP metrics track request volume, latency and concurrency per chi route pattern;
// domain metrics track the generation pipeline and interaction checks.
//
// All metrics are automatically registered with the Prometheus default registry
// during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Generation outcomes used as the "outcome" label
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeGenerationError = "generation_error"
	OutcomeMalformedOutput = "malformed_output"
)

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (client IPs not yet evicted)",
		},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Combination generation requests by outcome",
		},
		[]string{"outcome"},
	)

	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Latency of the upstream text generation call",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	CombinationsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "combinations_returned",
			Help:    "Number of combinations returned per successful generation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		},
	)

	InteractionPairsEvaluated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interaction_pairs_evaluated_total",
			Help: "Unordered drug pairs classified by the interaction estimator",
		},
	)

	InteractionSeverityTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_severity_total",
			Help: "Interaction classifications by severity",
		},
		[]string{"severity"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(GenerationRequestsTotal)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(CombinationsReturned)
	prometheus.MustRegister(InteractionPairsEvaluated)
	prometheus.MustRegister(InteractionSeverityTotal)
}

package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce            sync.Once
	apiRequestsTotal        *prometheus.CounterVec
	apiLatencySeconds       *prometheus.HistogramVec
	apiErrorsTotal          *prometheus.CounterVec
	evaluationSeconds       prometheus.Histogram
	stampsAwardedTotal      *prometheus.CounterVec
	notificationsPublished  *prometheus.CounterVec
	sseClientsActiveCurrent prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "passport_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "passport_evaluation_seconds",
			Help:    "Duration of single-student achievement evaluations.",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		})

		stampsAwardedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_stamps_awarded_total",
			Help: "Total number of stamps awarded, by core value.",
		}, []string{"value"})

		notificationsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "passport_notifications_published_total",
			Help: "Total number of notifications published, by type.",
		}, []string{"type"})

		sseClientsActiveCurrent = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "passport_sse_clients_active",
			Help: "Number of active SSE notification subscribers.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			evaluationSeconds,
			stampsAwardedTotal,
			notificationsPublished,
			sseClientsActiveCurrent,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// EvaluationDuration exposes the histogram of engine evaluation times.
func EvaluationDuration() prometheus.Histogram {
	RegisterMetrics()
	return evaluationSeconds
}

// StampsAwarded exposes the counter of awarded stamps.
func StampsAwarded() *prometheus.CounterVec {
	RegisterMetrics()
	return stampsAwardedTotal
}

// NotificationsPublished exposes the counter of published notifications.
func NotificationsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublished
}

// SSEClientsActive exposes the gauge of connected SSE subscribers.
func SSEClientsActive() prometheus.Gauge {
	RegisterMetrics()
	return sseClientsActiveCurrent
}

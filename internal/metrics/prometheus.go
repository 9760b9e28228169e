package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradebook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	HTTPRateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebook_http_rate_limited_total",
			Help: "Total number of rate-limited HTTP requests",
		},
		[]string{"route"},
	)

	// Analytics metrics
	MetricComputations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebook_metric_computations_total",
			Help: "Total number of analytics computations",
		},
		[]string{"kind", "status"}, // kind: dashboard|advanced|playbooks, status: success|error
	)

	MetricComputationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradebook_metric_computation_duration_seconds",
			Help:    "Analytics computation duration in seconds, storage fetch included",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"kind"},
	)

	TradesEvaluated = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradebook_trades_evaluated",
			Help:    "Number of trades fed into a single analytics computation",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"kind"},
	)

	// Database metrics
	DBQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradebook_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradebook_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
		},
		[]string{"operation"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	// HTTP metrics
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(HTTPRateLimited)

	// Analytics metrics
	prometheus.MustRegister(MetricComputations)
	prometheus.MustRegister(MetricComputationDuration)
	prometheus.MustRegister(TradesEvaluated)

	// Database metrics
	prometheus.MustRegister(DBQueries)
	prometheus.MustRegister(DBQueryDuration)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records a served HTTP request
func RecordHTTPRequest(route, method, status string, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, method, status).Inc()
	HTTPDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordComputation records an analytics computation
func RecordComputation(kind string, tradeCount int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	MetricComputations.WithLabelValues(kind, status).Inc()
	MetricComputationDuration.WithLabelValues(kind).Observe(duration.Seconds())

	if err == nil {
		TradesEvaluated.WithLabelValues(kind).Observe(float64(tradeCount))
	}
}

// RecordDBQuery records a database query
func RecordDBQuery(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	DBQueries.WithLabelValues(operation, status).Inc()
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

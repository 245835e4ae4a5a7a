package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the introspection API.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	bvhOperationsTotal   *prometheus.CounterVec
	bvhOperationDuration *prometheus.HistogramVec
	bvhLeaves            prometheus.Gauge
	bvhNodesAllocated    prometheus.Gauge
	bvhPoolCapacity      prometheus.Gauge

	authRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bvh_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bvh_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bvh_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		bvhOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bvh_operations_total",
				Help: "Total number of tree operations by kind",
			},
			[]string{"op", "status"},
		),

		bvhOperationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bvh_operation_duration_seconds",
				Help:    "Tree operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),

		bvhLeaves: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bvh_leaves",
				Help: "Number of items currently tracked by the tree",
			},
		),

		bvhNodesAllocated: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bvh_nodes_allocated",
				Help: "Number of live nodes (leaves plus interior) in the tree",
			},
		),

		bvhPoolCapacity: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "bvh_pool_capacity",
				Help: "Current capacity of the node pool",
			},
		),

		authRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bvh_auth_requests_total",
				Help: "Total number of authentication attempts",
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordOperation records a tree operation (insert, remove, rebuild, a
// query kind).
func (m *Metrics) RecordOperation(op string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.bvhOperationsTotal.WithLabelValues(op, status).Inc()
	m.bvhOperationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// UpdateTreeStats updates the gauges describing the tree's current shape.
// leaves is item count; nodes is total live nodes (2*leaves-1, or 0 when
// empty); capacity is the node pool's current capacity.
func (m *Metrics) UpdateTreeStats(leaves, nodes, capacity int) {
	m.bvhLeaves.Set(float64(leaves))
	m.bvhNodesAllocated.Set(float64(nodes))
	m.bvhPoolCapacity.Set(float64(capacity))
}

// RecordAuthRequest records an authentication attempt.
func (m *Metrics) RecordAuthRequest(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.authRequestsTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler wraps handler with request-count, duration, and
// in-flight metrics.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware.
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			hasAPIKey := apiKey != ""

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)

			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the HTTP layer metrics in Prometheus format. Evaluation
// metrics are recorded by the service layer and served from the same
// registry.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bigcalc_http_active_requests",
		Help: "Current number of requests being served",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigcalc_http_requests_total",
		Help: "Total number of requests by endpoint and status code",
	}, []string{"endpoint", "code"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bigcalc_http_request_duration_seconds",
		Help:    "Time spent serving requests",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"endpoint"})
	rateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bigcalc_http_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		handler: promhttp.Handler(),
	}
}

// IncrementActiveRequests increments the active requests gauge.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
}

// DecrementActiveRequests decrements the active requests gauge.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// ObserveRequest records a served request.
func (m *Metrics) ObserveRequest(endpoint string, status int, duration time.Duration) {
	totalRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// WritePrometheus writes metrics in Prometheus text format to the HTTP response.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// handleMetrics is the HTTP handler for the /metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethods(w, r, http.MethodGet) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// metricsMiddleware tracks active requests and per-endpoint outcomes.
func (s *Server) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := recorderFor(w)
		start := time.Now()
		next(rec, r)
		s.metrics.ObserveRequest(endpoint, rec.status, time.Since(start))
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the airline API
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	ReservationsCreatedTotal prometheus.Counter
	NotificationsFailedTotal prometheus.Counter
	ValidationFailuresTotal  *prometheus.CounterVec
	CascadeDeletedTotal      *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric on reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airline_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airline_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed by method",
			},
			[]string{"method"},
		),

		// Database Metrics
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_db_queries_total",
				Help: "Total read-side database queries by query type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airline_db_query_duration_seconds",
				Help:    "Read-side database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		ReservationsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airline_reservations_created_total",
				Help: "Total reservations persisted",
			},
		),
		NotificationsFailedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "airline_notifications_failed_total",
				Help: "Confirmation messages the gateway failed to deliver",
			},
		),
		ValidationFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_validation_failures_total",
				Help: "Rejected create/update operations by resource",
			},
			[]string{"resource"},
		),
		CascadeDeletedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airline_cascade_deleted_total",
				Help: "Dependent rows removed by cascading deletes",
			},
			[]string{"resource"},
		),
	}
}

// ObserveQuery records one read-side query.
func (m *MetricsRegistry) ObserveQuery(queryType string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(queryType).Inc()
	m.DBQueryDuration.WithLabelValues(queryType).Observe(seconds)
}

// ObserveCache records a cache lookup outcome.
func (m *MetricsRegistry) ObserveCache(pattern string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

// ValidationFailed counts a rejected operation on resource.
func (m *MetricsRegistry) ValidationFailed(resource string) {
	if m == nil {
		return
	}
	m.ValidationFailuresTotal.WithLabelValues(resource).Inc()
}

// ReservationCreated counts a persisted reservation.
func (m *MetricsRegistry) ReservationCreated() {
	if m == nil {
		return
	}
	m.ReservationsCreatedTotal.Inc()
}

// NotificationFailed counts a failed confirmation delivery.
func (m *MetricsRegistry) NotificationFailed() {
	if m == nil {
		return
	}
	m.NotificationsFailedTotal.Inc()
}

// CascadeDeleted counts n dependent rows of resource removed by a delete.
func (m *MetricsRegistry) CascadeDeleted(resource string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.CascadeDeletedTotal.WithLabelValues(resource).Add(float64(n))
}

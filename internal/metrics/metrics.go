package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors used for monitoring the application:
// request durations per handler, database query durations, and
// counters for mutations and exports.
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	EmployeesMutated    *prometheus.CounterVec
	ExportsTotal        *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffapi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler", "method", "status"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staffapi_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'insert_employee', 'list_employees', ...
		EmployeesMutated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffapi_employees_mutated_total",
			Help: "Total number of successful employee mutations.",
		}, []string{"operation"}),
		ExportsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staffapi_exports_total",
			Help: "Total number of export downloads.",
		}, []string{"format"}),
	}

	metrics.EmployeesMutated.WithLabelValues("create")
	metrics.EmployeesMutated.WithLabelValues("update")
	metrics.EmployeesMutated.WithLabelValues("delete")

	return metrics
}

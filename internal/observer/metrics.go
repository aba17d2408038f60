package observer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsEnabled = true // Flag to control metric collection

	// Labels for HTTP requests
	httpRequestLabels = []string{"method", "path", "status"}

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_dashboard_http_requests_total",
			Help: "Total number of HTTP requests handled, labeled by method, path and status code.",
		},
		httpRequestLabels,
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "call_dashboard_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		httpRequestLabels,
	)
)

// Labels for database operations
var (
	dbOperationLabels = []string{"operation", "entity", "status"}

	DatabaseOperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "call_dashboard_db_operation_duration_seconds",
			Help:    "Histogram of database operation durations.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		dbOperationLabels,
	)
)

// Aggregation metrics
var (
	aggregationLabels = []string{"operation", "status"}

	AggregationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "call_dashboard_aggregation_duration_seconds",
			Help:    "Histogram of dashboard aggregation durations, labeled by operation.",
			Buckets: prometheus.DefBuckets,
		},
		aggregationLabels,
	)
)

// Report submission metrics
var (
	reportSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_dashboard_report_submissions_total",
			Help: "Total number of call report submissions, labeled by lead type and final status.",
		},
		[]string{"lead_type", "status"},
	)
)

// Daily summary mail metrics
var (
	summaryEmailsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "call_dashboard_summary_emails_total",
			Help: "Total number of daily summary emails attempted, labeled by outcome.",
		},
		[]string{"status"},
	)
	mailerTasksSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "call_dashboard_mailer_tasks_submitted_total",
		Help: "Total number of tasks submitted to the mailer worker pool.",
	})
	mailerQueueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "call_dashboard_mailer_queue_length",
		Help: "Approximate number of tasks waiting in the mailer worker pool queue.",
	})
)

// InitMetrics initializes metric collection. Call during application startup.
func InitMetrics(enabled bool) {
	metricsEnabled = enabled
}

// ObserveHTTPRequest records one handled HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if !metricsEnabled {
		return
	}
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveDbOperationDuration records the duration for a database operation.
func ObserveDbOperationDuration(operation, entity string, duration time.Duration, err error) {
	if !metricsEnabled {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	DatabaseOperationDurationSeconds.WithLabelValues(operation, entity, status).Observe(duration.Seconds())
}

// ObserveAggregationDuration records the duration of one aggregation operation.
func ObserveAggregationDuration(operation string, duration time.Duration, err error) {
	if !metricsEnabled {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	AggregationDurationSeconds.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// IncReportSubmission counts one call report submission outcome.
func IncReportSubmission(leadType, status string) {
	if !metricsEnabled {
		return
	}
	reportSubmissionsTotal.WithLabelValues(leadType, status).Inc()
}

// IncSummaryEmail counts one daily summary email attempt.
func IncSummaryEmail(status string) {
	if !metricsEnabled {
		return
	}
	summaryEmailsTotal.WithLabelValues(status).Inc()
}

// IncMailerTasksSubmitted counts one task handed to the mailer pool.
func IncMailerTasksSubmitted() {
	if !metricsEnabled {
		return
	}
	mailerTasksSubmittedTotal.Inc()
}

// SetMailerQueueLength records the mailer pool backlog.
func SetMailerQueueLength(length int) {
	if !metricsEnabled {
		return
	}
	mailerQueueLength.Set(float64(length))
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	contactsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contacts_created_total",
			Help: "Total number of contacts created",
		},
		[]string{"status"},
	)

	interactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of timeline interactions recorded",
		},
		[]string{"type"},
	)

	engagementRescores = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engagement_rescores_total",
			Help: "Total number of engagement score recomputations",
		},
	)

	campaignsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaigns_executed_total",
			Help: "Total number of campaign executions",
		},
		[]string{"objective"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordContactCreated(status string) {
	contactsCreated.WithLabelValues(status).Inc()
}

func RecordInteraction(interactionType string) {
	interactionsRecorded.WithLabelValues(interactionType).Inc()
}

func RecordEngagementRescore() {
	engagementRescores.Inc()
}

func RecordCampaignExecution(objective string) {
	campaignsExecuted.WithLabelValues(objective).Inc()
}

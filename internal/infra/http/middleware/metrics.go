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

	leadsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_processed_total",
			Help: "Total number of lead webhook events by outcome",
		},
		[]string{"outcome"},
	)

	leadEmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_emails_sent_total",
			Help: "Total number of lead email send attempts",
		},
		[]string{"backend", "status"},
	)

	ledgerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_errors_total",
			Help: "Total number of ledger backend errors",
		},
		[]string{"operation"},
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

func RecordLeadOutcome(outcome string) {
	leadsProcessed.WithLabelValues(outcome).Inc()
}

func RecordEmailSend(backend, status string) {
	leadEmailsSent.WithLabelValues(backend, status).Inc()
}

func RecordLedgerError(operation string) {
	ledgerErrors.WithLabelValues(operation).Inc()
}

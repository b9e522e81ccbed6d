// Package metrics provides Prometheus instrumentation for the payment
// notification path.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// NotificationsTotal counts inbound webhooks by outcome:
	// accepted, rejected_signature, rejected_input, failed.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paygate_notifications_total",
		Help: "Inbound payment notifications by outcome",
	}, []string{"outcome"})

	// ReceivablesCreated counts ledger entries created or merged.
	ReceivablesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paygate_receivables_created_total",
		Help: "Receivable ledger entries created or merged",
	})

	// ReconcileCorrections counts entries rewritten by the batch pass.
	ReconcileCorrections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paygate_reconcile_corrections_total",
		Help: "Receivables corrected by the reconciliation pass",
	})

	// OutboxDispatches counts side-effect deliveries by result.
	OutboxDispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paygate_outbox_dispatches_total",
		Help: "Best-effort side-effect dispatches",
	}, []string{"kind", "result"})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paygate_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "paygate_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "heimdall_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heimdall_auth_attempts_total",
			Help: "Total auth attempts by operation and outcome",
		},
		[]string{"operation", "success"},
	)
	tokenValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "heimdall_token_validations_total",
			Help: "Total token validation queries by outcome",
		},
		[]string{"valid"},
	)
)

// PrometheusMiddleware records request duration.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordAuthAttempt records a command outcome for Prometheus.
func RecordAuthAttempt(operation string, success bool) {
	authAttempts.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

// RecordTokenValidation records a validate query outcome.
func RecordTokenValidation(valid bool) {
	tokenValidations.WithLabelValues(strconv.FormatBool(valid)).Inc()
}

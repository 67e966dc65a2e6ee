package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the HTTP Prometheus metrics
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	AuthFailures    *prometheus.CounterVec
}

// NewMetrics creates and registers the HTTP metrics on registerer
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophtasks_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gophtasks_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gophtasks_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "route"},
		),
		AuthFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophtasks_auth_failures_total",
				Help: "Total number of rejected authentication attempts",
			},
			[]string{"route"},
		),
	}

	registerer.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ResponseSize,
		m.AuthFailures,
	)

	return m
}

// routeLabel returns the mux path template so ids do not blow up label cardinality
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := wrap(w)

			next.ServeHTTP(rw, r)

			route := routeLabel(r)
			status := strconv.Itoa(rw.statusCode)

			metrics.RequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			metrics.ResponseSize.WithLabelValues(r.Method, route).Observe(float64(rw.written))
			if rw.statusCode == http.StatusUnauthorized {
				metrics.AuthFailures.WithLabelValues(route).Inc()
			}
		})
	}
}

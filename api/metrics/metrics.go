package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pulse_build_info",
		Help: "Build information for the reporting API.",
	}, []string{"version", "commit", "date"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_http_requests_total",
		Help: "Total HTTP requests served, by route, method and status code.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulse_http_request_duration_seconds",
		Help:    "HTTP request latency, by route and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pulse_report_query_duration_seconds",
		Help:    "Latency of report queries against the operational database.",
		Buckets: prometheus.DefBuckets,
	})

	queryErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_report_query_errors_total",
		Help: "Total report queries that failed against the operational database.",
	})
)

// SetBuildInfo records the build metadata as a constant gauge.
func SetBuildInfo(version, commit, date string) {
	buildInfo.WithLabelValues(version, commit, date).Set(1)
}

// RecordQuery records the duration and outcome of one report query.
func RecordQuery(d time.Duration, err error) {
	queryDuration.Observe(d.Seconds())
	if err != nil {
		queryErrorsTotal.Inc()
	}
}

// Middleware instruments HTTP handlers with request counts and latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		httpRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

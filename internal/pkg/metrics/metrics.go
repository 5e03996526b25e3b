package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_http_requests_total",
		Help: "HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payroll_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern and method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	SalaryReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payroll_salary_reports_generated_total",
		Help: "Salary reports generated.",
	})

	AttendanceRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_attendance_records_total",
		Help: "Attendance records created, by resolved status.",
	}, []string{"status"})

	PermissionDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_permission_denials_total",
		Help: "Requests rejected by the permission evaluator, by resource and action.",
	}, []string{"resource", "action"})

	CronRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_cron_runs_total",
		Help: "Background job executions by job and outcome.",
	}, []string{"job", "outcome"})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency under the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "farmmarket_requests_total",
		Help: "Total number of HTTP requests received per route.",
	}, []string{"route", "method"})

	errorCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "farmmarket_errors_total",
		Help: "Total number of HTTP error responses per route.",
	}, []string{"route", "method"})
)

// RegisterMetrics registers the request counters with the default registry.
// Call once at startup.
func RegisterMetrics() {
	prometheus.MustRegister(requestCounter, errorCounter)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Metrics counts requests and error responses per route template.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		requestCounter.WithLabelValues(route, r.Method).Inc()
		if recorder.status >= http.StatusBadRequest {
			errorCounter.WithLabelValues(route, r.Method).Inc()
		}
	})
}

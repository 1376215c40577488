package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veridict_http_requests_total",
		Help: "HTTP requests served, by method and path pattern.",
	}, []string{"method", "path"})

	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veridict_verdicts_total",
		Help: "Coherence verdicts produced via the HTTP API, by status.",
	}, []string{"status"})

	detectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "veridict_detections_total",
		Help: "Detector outcomes with detected=true served via the HTTP API, by category.",
	}, []string{"category"})
)

// countRequests increments the request counter per method and path
func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsTotal.WithLabelValues(r.Method, r.URL.Path).Inc()
		next.ServeHTTP(w, r)
	})
}

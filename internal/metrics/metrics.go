// Package metrics exposes Prometheus metrics for solves and HTTP traffic.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Solve outcomes used as the status label
const (
	StatusOK               = "ok"
	StatusInvalid          = "invalid"
	StatusSingular         = "singular"
	StatusFullyConstrained = "fully_constrained"
	StatusError            = "error"
)

// Registry holds all metrics for the application
type Registry struct {
	// Solver Metrics
	SolvesTotal   *prometheus.CounterVec
	SolveDuration prometheus.Histogram
	SolveDOF      prometheus.Histogram

	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	factory := promauto.With(r.registry)

	r.SolvesTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goframe_solves_total",
			Help: "Total number of frame solves by outcome",
		},
		[]string{"status"},
	)
	r.SolveDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "goframe_solve_duration_seconds",
			Help:    "Frame solve latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
	r.SolveDOF = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "goframe_solve_dof",
			Help:    "Global degrees of freedom per solved structure",
			Buckets: prometheus.ExponentialBuckets(3, 2, 10),
		},
	)

	r.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goframe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	r.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goframe_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	return r
}

// RecordSolve records one solve of a structure with the given DOF count
func (r *Registry) RecordSolve(err error, dof int, duration time.Duration) {
	r.SolvesTotal.WithLabelValues(SolveStatus(err)).Inc()
	r.SolveDuration.Observe(duration.Seconds())
	r.SolveDOF.Observe(float64(dof))
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// SolveStatus maps a solver error to a status label
func SolveStatus(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, frame.ErrInvalidStructure):
		return StatusInvalid
	case errors.Is(err, frame.ErrSingularMatrix):
		return StatusSingular
	case errors.Is(err, frame.ErrFullyConstrained):
		return StatusFullyConstrained
	}
	return StatusError
}

// Package metrics records navigation outcomes as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/JaimeStill/atlas/pkg/navigation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Navigation holds the navigation collectors and the registry they live in.
// It satisfies navigation.Observer.
type Navigation struct {
	registry *prometheus.Registry
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	routes   prometheus.Gauge
}

// New registers the navigation collectors on registry. A nil registry gets a
// fresh one so tests and multiple servers never collide on the default registerer.
func New(cfg *Config, registry *prometheus.Registry) *Navigation {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Navigation{
		registry: registry,
		total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "navigation_total",
			Help:      "Navigation requests by matched route pattern and outcome",
		}, []string{"route", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "navigation_duration_seconds",
			Help:      "Time spent resolving and rendering a navigation request",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "navigation_routes",
			Help:      "Number of routes in the installed route table",
		}),
	}
}

// Observe records one navigation request.
func (n *Navigation) Observe(route string, outcome navigation.Outcome, d time.Duration) {
	if route == "" {
		route = "none"
	}
	n.total.WithLabelValues(route, string(outcome)).Inc()
	n.duration.WithLabelValues(route).Observe(d.Seconds())
}

// SetRoutes publishes the size of the route table.
func (n *Navigation) SetRoutes(count int) {
	n.routes.Set(float64(count))
}

// Registry returns the registry the collectors are registered on.
func (n *Navigation) Registry() *prometheus.Registry {
	return n.registry
}

// Handler exposes the registry in the Prometheus text format.
func (n *Navigation) Handler() http.Handler {
	return promhttp.HandlerFor(n.registry, promhttp.HandlerOpts{Registry: n.registry})
}

// Package metrics exposes Prometheus instrumentation for the maze-derived
// key lifecycle engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine.
type Registry struct {
	// Maze generation
	MazeGenerationsTotal   prometheus.Counter
	MazeGenerationDuration prometheus.Histogram
	MazeExtraEdges         prometheus.Histogram

	// Path search
	SearchesTotal      *prometheus.CounterVec
	SearchDuration     prometheus.Histogram
	SearchPathLength   prometheus.Histogram
	SearchRetriesTotal prometheus.Counter

	// Key derivation
	KeyDerivationsTotal  prometheus.Counter
	KeyZeroizationsTotal prometheus.Counter

	// Rotation lifecycle
	RotationsTotal        prometheus.Counter
	RotationFailuresTotal prometheus.Counter
	RotationDuration      prometheus.Histogram
	ActiveWindowIndex     prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initMazeMetrics()
	r.initSearchMetrics()
	r.initRotationMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

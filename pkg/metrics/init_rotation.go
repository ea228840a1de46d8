package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRotationMetrics() {
	r.KeyDerivationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "qmaze_key_derivations_total",
			Help: "Total number of session key derivations",
		},
	)

	r.KeyZeroizationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "qmaze_key_zeroizations_total",
			Help: "Keys destroyed at rotation or termination",
		},
	)

	r.RotationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "qmaze_rotations_total",
			Help: "Completed window rotations",
		},
	)

	r.RotationFailuresTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "qmaze_rotation_failures_total",
			Help: "Rotations that failed and left the prior window live",
		},
	)

	r.RotationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qmaze_rotation_duration_seconds",
			Help:    "Full rotation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 15.0},
		},
	)

	r.ActiveWindowIndex = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "qmaze_active_window_index",
			Help: "Index of the currently active time window",
		},
	)
}

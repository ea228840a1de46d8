package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSearchMetrics() {
	r.SearchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "qmaze_searches_total",
			Help: "Total number of secure path searches",
		},
		[]string{"status"},
	)

	r.SearchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qmaze_search_duration_seconds",
			Help:    "Secure path search duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.SearchPathLength = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qmaze_search_path_length",
			Help:    "Moves on accepted secure paths",
			Buckets: []float64{8, 16, 24, 32, 48, 64, 128, 256},
		},
	)

	r.SearchRetriesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "qmaze_search_retries_total",
			Help: "Density-escalated search retries across all rotations",
		},
	)
}

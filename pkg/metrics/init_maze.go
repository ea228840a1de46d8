package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initMazeMetrics() {
	r.MazeGenerationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "qmaze_maze_generations_total",
			Help: "Total number of lattice maze generations",
		},
	)

	r.MazeGenerationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qmaze_maze_generation_duration_seconds",
			Help:    "Maze generation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.MazeExtraEdges = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qmaze_maze_extra_edges",
			Help:    "Non-tree passages carved per generated maze",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
	)
}

package metrics

import (
	"time"
)

// RecordGeneration records one maze generation with its duration and the
// number of extra passages carved.
func (r *Registry) RecordGeneration(duration time.Duration, extraEdges int) {
	r.MazeGenerationsTotal.Inc()
	r.MazeGenerationDuration.Observe(duration.Seconds())
	r.MazeExtraEdges.Observe(float64(extraEdges))
}

// RecordSearch records one path search attempt.
func (r *Registry) RecordSearch(status string, duration time.Duration, pathLength int) {
	r.SearchesTotal.WithLabelValues(status).Inc()
	r.SearchDuration.Observe(duration.Seconds())
	if pathLength > 0 {
		r.SearchPathLength.Observe(float64(pathLength))
	}
}

// RecordSearchRetry records a density-escalated retry.
func (r *Registry) RecordSearchRetry() {
	r.SearchRetriesTotal.Inc()
}

// RecordDerivation records one key derivation.
func (r *Registry) RecordDerivation() {
	r.KeyDerivationsTotal.Inc()
}

// RecordZeroization records one key destruction.
func (r *Registry) RecordZeroization() {
	r.KeyZeroizationsTotal.Inc()
}

// RecordRotation records a completed rotation and the new active window.
func (r *Registry) RecordRotation(duration time.Duration, windowIndex uint64) {
	r.RotationsTotal.Inc()
	r.RotationDuration.Observe(duration.Seconds())
	r.ActiveWindowIndex.Set(float64(windowIndex))
}

// RecordRotationFailure records a rotation that was rolled back.
func (r *Registry) RecordRotationFailure() {
	r.RotationFailuresTotal.Inc()
}

// SetActiveWindow publishes the current window index.
func (r *Registry) SetActiveWindow(windowIndex uint64) {
	r.ActiveWindowIndex.Set(float64(windowIndex))
}

// Search status label values.
const (
	StatusFound    = "found"
	StatusNotFound = "not_found"
)

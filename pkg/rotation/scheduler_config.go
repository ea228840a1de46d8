package rotation

import (
	"fmt"
	"math"
	"time"

	"github.com/Rallt/Quantum-maze/pkg/maze"
	"github.com/Rallt/Quantum-maze/pkg/navigator"
	"github.com/Rallt/Quantum-maze/pkg/validation"
)

// Defaults applied by New when a field is left zero.
const (
	DefaultExtraEdgeDensity = 0.1
	DefaultMaxPathAttempts  = 5
	DefaultDensityStep      = 0.15
)

// SchedulerConfig is the immutable engine configuration. Validated once
// at construction, never mutated afterward.
type SchedulerConfig struct {
	// MazeSize is the lattice dimension of every generated maze.
	MazeSize int
	// Level sets the path constraints each window's key derivation
	// must satisfy.
	Level navigator.Level
	// WindowDuration is the validity period of one derived key.
	WindowDuration time.Duration
	// ExtraEdgeDensity is the starting non-tree passage probability.
	// Escalated by DensityStep on every failed search attempt.
	ExtraEdgeDensity float64
	// SearchDeadline bounds one path search. Zero means the level's
	// search budget.
	SearchDeadline time.Duration
	// MaxPathAttempts caps the density-escalation retry loop.
	MaxPathAttempts int
	// DensityStep is added to the density after each failed attempt,
	// clamped to 1.0.
	DensityStep float64
}

func (c *SchedulerConfig) applyDefaults() {
	if c.ExtraEdgeDensity == 0.0 {
		c.ExtraEdgeDensity = DefaultExtraEdgeDensity
	}
	c.MaxPathAttempts = validation.DefaultOrInt(c.MaxPathAttempts, DefaultMaxPathAttempts)
	if c.DensityStep == 0.0 {
		c.DensityStep = DefaultDensityStep
	}
}

// validate re-checks the parameters the configuration collaborator
// already screened; the core fails fast on its own invariants.
func (c SchedulerConfig) validate() error {
	if c.MazeSize < maze.MinSize || c.MazeSize > maze.MaxSize {
		return fmt.Errorf("%w: maze size %d outside [%d, %d]",
			maze.ErrInvalidParameter, c.MazeSize, maze.MinSize, maze.MaxSize)
	}
	if c.ExtraEdgeDensity < 0.0 || c.ExtraEdgeDensity > 1.0 || math.IsNaN(c.ExtraEdgeDensity) {
		return fmt.Errorf("%w: extra edge density %v outside [0.0, 1.0]",
			maze.ErrInvalidParameter, c.ExtraEdgeDensity)
	}
	if c.Level.Name == "" {
		return fmt.Errorf("%w: security level not set", maze.ErrInvalidParameter)
	}
	return validation.NewConfigValidator("SchedulerConfig").
		RequiredDuration("WindowDuration", c.WindowDuration).
		Positive("MaxPathAttempts", c.MaxPathAttempts).
		PositiveFloat("DensityStep", c.DensityStep).
		NonNegative("SearchDeadline", int(c.SearchDeadline)).
		Validate()
}

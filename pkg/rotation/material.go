package rotation

import (
	"errors"
	"fmt"
	"time"

	"github.com/Rallt/Quantum-maze/pkg/audit"
	"github.com/Rallt/Quantum-maze/pkg/kdf"
	"github.com/Rallt/Quantum-maze/pkg/logging"
	"github.com/Rallt/Quantum-maze/pkg/maze"
	"github.com/Rallt/Quantum-maze/pkg/metrics"
	"github.com/Rallt/Quantum-maze/pkg/navigator"
)

// windowMaterial is everything one window needs after construction. The
// maze and path that produced the key are already gone by the time a
// windowMaterial exists; only the key and audit metadata survive.
type windowMaterial struct {
	key              *kdf.Key
	mazeFingerprint  string
	pathLength       int
	directionChanges int
	attempts         int
}

// buildWindowMaterial runs the generate -> search -> derive pipeline for
// one window. Failed searches retry with additive density escalation up
// to the attempt cap; parameter errors are never retried.
func (s *Scheduler) buildWindowMaterial(seed maze.Seed, windowIndex uint64) (*windowMaterial, error) {
	density := s.cfg.ExtraEdgeDensity
	deadline := s.cfg.SearchDeadline

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxPathAttempts; attempt++ {
		genStart := time.Now()
		g, err := maze.Generate(seed, s.cfg.MazeSize, density)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.RecordGeneration(time.Since(genStart), g.ExtraEdges())
		}
		s.auditEventID(audit.ActionGenerate, audit.ResourceMaze, g.FingerprintHex(), windowIndex, nil)

		searchStart := time.Now()
		path, err := navigator.FindSecurePath(g, s.cfg.Level, deadline)
		if err != nil {
			if errors.Is(err, navigator.ErrNotFound) {
				lastErr = err
				if s.metrics != nil {
					s.metrics.RecordSearch(metrics.StatusNotFound, time.Since(searchStart), 0)
					s.metrics.RecordSearchRetry()
				}
				s.auditEventID(audit.ActionSearch, audit.ResourcePath, "", windowIndex, err)
				s.logger.Warn("path search failed, escalating density",
					logging.WindowIndex(windowIndex),
					logging.Attempt(attempt),
					logging.Density(density),
					logging.Error(err),
				)
				density = density + s.cfg.DensityStep
				if density > 1.0 {
					density = 1.0
				}
				continue
			}
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.RecordSearch(metrics.StatusFound, time.Since(searchStart), path.Length())
		}
		s.auditEventID(audit.ActionSearch, audit.ResourcePath,
			fmt.Sprintf("len=%d,turns=%d", path.Length(), path.DirectionChanges()), windowIndex, nil)

		key, err := s.deriver.Derive(path, s.master, windowIndex)
		if err != nil {
			s.auditEventID(audit.ActionDerive, audit.ResourceKey, "", windowIndex, err)
			return nil, fmt.Errorf("key derivation failed: %w", err)
		}
		if s.metrics != nil {
			s.metrics.RecordDerivation()
		}
		s.auditEventID(audit.ActionDerive, audit.ResourceKey, kdf.KeyFingerprint(key), windowIndex, nil)

		mat := &windowMaterial{
			key:              key,
			mazeFingerprint:  g.FingerprintHex(),
			pathLength:       path.Length(),
			directionChanges: path.DirectionChanges(),
			attempts:         attempt,
		}
		// The maze and path fall out of scope here; nothing but the
		// derived key and the metadata above outlives this call.
		return mat, nil
	}

	return nil, fmt.Errorf("%w: no qualifying path after %d attempts at level %s: %v",
		ErrSecurityConstraintUnsatisfiable, s.cfg.MaxPathAttempts, s.cfg.Level.Name, lastErr)
}

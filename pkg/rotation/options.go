package rotation

import (
	"github.com/Rallt/Quantum-maze/pkg/audit"
	"github.com/Rallt/Quantum-maze/pkg/kdf"
	"github.com/Rallt/Quantum-maze/pkg/logging"
	"github.com/Rallt/Quantum-maze/pkg/metrics"
)

// Option configures a Scheduler at construction.
type Option func(*Scheduler)

// WithLogger replaces the default structured logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithMetrics wires a Prometheus registry into the engine.
func WithMetrics(registry *metrics.Registry) Option {
	return func(s *Scheduler) {
		s.metrics = registry
	}
}

// WithAudit wires an audit trail into the engine.
func WithAudit(logger audit.Logger) Option {
	return func(s *Scheduler) {
		s.audit = logger
	}
}

// WithDeriver replaces the default SHAKE256-backed key deriver, keeping
// the extendable-output function pluggable.
func WithDeriver(deriver *kdf.Deriver) Option {
	return func(s *Scheduler) {
		s.deriver = deriver
	}
}

// WithRotateHook registers a callback invoked after each completed
// rotation. The callback runs while the scheduler lock is held and must
// not call back into the scheduler.
func WithRotateHook(hook func(prev, next Window)) Option {
	return func(s *Scheduler) {
		s.onRotate = hook
	}
}

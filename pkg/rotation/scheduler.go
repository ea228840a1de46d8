// Package rotation owns the time-window state machine of the key
// lifecycle engine. It drives maze generation, path search, and key
// derivation for each window, chains window seeds forward, and destroys
// superseded key material so that at most one derived key per engine is
// ever live.
package rotation

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rallt/Quantum-maze/pkg/audit"
	"github.com/Rallt/Quantum-maze/pkg/kdf"
	"github.com/Rallt/Quantum-maze/pkg/logging"
	"github.com/Rallt/Quantum-maze/pkg/maze"
	"github.com/Rallt/Quantum-maze/pkg/metrics"
)

var (
	// ErrNotActive reports a key request outside the Active state.
	// Programming error, surfaced immediately and never retried.
	ErrNotActive = errors.New("rotation: engine is not active")
	// ErrAlreadyStarted reports a second Start on a running engine.
	ErrAlreadyStarted = errors.New("rotation: engine already started")
	// ErrSecurityConstraintUnsatisfiable reports that the bounded
	// density-escalation retry loop exhausted its attempt cap without
	// finding a qualifying path. Fatal for the start or rotation that
	// raised it.
	ErrSecurityConstraintUnsatisfiable = errors.New("rotation: security constraints unsatisfiable")
)

// State is the lifecycle state of a Scheduler.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateRotating
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateRotating:
		return "rotating"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Window is one half-open key validity interval [Start, End) with its
// monotonically increasing index. Exactly one window is current per
// engine at any instant.
type Window struct {
	Index uint64
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Remaining returns the time left until expiry, clamped at zero.
func (w Window) Remaining(t time.Time) time.Duration {
	if !t.Before(w.End) {
		return 0
	}
	return w.End.Sub(t)
}

// Scheduler is the engine facade. All state transitions are serialized
// under one mutex: a caller observing CurrentKey during a rotation
// receives either the fully-previous or the fully-next key, never a
// partially-built one.
type Scheduler struct {
	mu sync.Mutex

	cfg        SchedulerConfig
	instanceID string
	state      State

	deriver *kdf.Deriver
	master  *kdf.MasterSecret

	window  Window
	key     *kdf.Key
	retired *kdf.Key // zeroed husk of the previous window's key

	// per-window audit metadata; the maze and path themselves are
	// dropped as soon as the key is derived
	mazeFingerprint  string
	pathLength       int
	directionChanges int
	attempts         int

	logger   logging.Logger
	metrics  *metrics.Registry
	audit    audit.Logger
	onRotate func(prev, next Window)
}

// New validates the configuration and returns an Uninitialized engine.
func New(cfg SchedulerConfig, opts ...Option) (*Scheduler, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &Scheduler{
		cfg:        cfg,
		instanceID: uuid.New().String(),
		state:      StateUninitialized,
		deriver:    kdf.NewDeriver(),
		logger:     logging.DefaultLogger(),
		audit:      audit.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(
		logging.Component("rotation"),
		logging.EngineID(s.instanceID),
	)
	return s, nil
}

// InstanceID returns the unique identifier of this engine instance.
func (s *Scheduler) InstanceID() string {
	return s.instanceID
}

// Start transitions Uninitialized -> Active(0), building the maze, path,
// and key for window zero from the initial seed.
func (s *Scheduler) Start(initialSeed maze.Seed, master *kdf.MasterSecret, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUninitialized {
		return fmt.Errorf("%w: state %s", ErrAlreadyStarted, s.state)
	}
	if master == nil || master.Len() < kdf.MinMasterSecretSize {
		return kdf.ErrMasterSecretTooShort
	}

	s.master = master
	mat, err := s.buildWindowMaterial(initialSeed, 0)
	if err != nil {
		s.master = nil
		s.auditEvent(audit.ActionStart, audit.ResourceEngine, 0, err)
		return fmt.Errorf("engine start failed: %w", err)
	}

	s.installMaterial(mat)
	s.window = Window{Index: 0, Start: now, End: now.Add(s.cfg.WindowDuration)}
	s.state = StateActive
	if s.metrics != nil {
		s.metrics.SetActiveWindow(0)
	}
	s.auditEvent(audit.ActionStart, audit.ResourceEngine, 0, nil)
	s.logger.Info("engine started",
		logging.WindowIndex(0),
		logging.MazeSize(s.cfg.MazeSize),
		logging.SecurityLevel(s.cfg.Level.Name),
		logging.PathLength(s.pathLength),
		logging.DirectionChanges(s.directionChanges),
		logging.MazeFingerprint(s.mazeFingerprint),
		logging.KeyFingerprint(kdf.KeyFingerprint(s.key)),
	)
	return nil
}

// Tick advances the engine when now has left the current window. It
// reports whether a rotation happened.
//
// Rotation is all-or-nothing: the next window's material is fully built
// before the current key is touched, and any failure leaves the engine
// Active on the old window with the old key live.
func (s *Scheduler) Tick(now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return false, fmt.Errorf("%w: state %s", ErrNotActive, s.state)
	}
	if s.window.Contains(now) {
		return false, nil
	}

	started := time.Now()
	s.state = StateRotating
	prev := s.window
	nextIndex := prev.Index + 1

	// The next seed is a one-way function of the retiring key: knowing
	// it reveals nothing about any earlier window's key.
	seed, err := s.deriver.ChainSeed(s.key, nextIndex)
	if err != nil {
		return false, s.rotationFailed(nextIndex, err)
	}

	mat, err := s.buildWindowMaterial(seed, nextIndex)
	if err != nil {
		return false, s.rotationFailed(nextIndex, err)
	}

	// Point of no return: destroy the retiring key in place so every
	// outstanding handle observes the zeroization, then install the new
	// material.
	s.key.Zero()
	s.retired = s.key
	if s.metrics != nil {
		s.metrics.RecordZeroization()
	}
	s.installMaterial(mat)
	s.window = Window{Index: nextIndex, Start: now, End: now.Add(s.cfg.WindowDuration)}
	s.state = StateActive

	if s.metrics != nil {
		s.metrics.RecordRotation(time.Since(started), nextIndex)
	}
	s.auditEvent(audit.ActionRotate, audit.ResourceWindow, nextIndex, nil)
	s.logger.Info("window rotated",
		logging.WindowIndex(nextIndex),
		logging.PathLength(s.pathLength),
		logging.DirectionChanges(s.directionChanges),
		logging.MazeFingerprint(s.mazeFingerprint),
		logging.KeyFingerprint(kdf.KeyFingerprint(s.key)),
		logging.Latency(time.Since(started)),
	)
	if s.onRotate != nil {
		s.onRotate(prev, s.window)
	}
	return true, nil
}

// rotationFailed rolls the state machine back to the last-known-good
// Active window. The prior key stays live.
func (s *Scheduler) rotationFailed(nextIndex uint64, err error) error {
	s.state = StateActive
	if s.metrics != nil {
		s.metrics.RecordRotationFailure()
	}
	s.auditEvent(audit.ActionRotate, audit.ResourceWindow, nextIndex, err)
	s.logger.Error("rotation failed, prior window stays live",
		logging.WindowIndex(s.window.Index),
		logging.Error(err),
	)
	return fmt.Errorf("rotation to window %d failed: %w", nextIndex, err)
}

// installMaterial moves freshly built window material into the engine.
func (s *Scheduler) installMaterial(mat *windowMaterial) {
	s.key = mat.key
	s.mazeFingerprint = mat.mazeFingerprint
	s.pathLength = mat.pathLength
	s.directionChanges = mat.directionChanges
	s.attempts = mat.attempts
}

// CurrentKey returns the key of the presently Active window. The handle
// is engine-owned: it stays valid for the current window only and is
// zeroized in place when the window rotates or the engine terminates.
func (s *Scheduler) CurrentKey() (*kdf.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return nil, fmt.Errorf("%w: state %s", ErrNotActive, s.state)
	}
	return s.key, nil
}

// Window returns the currently active window.
func (s *Scheduler) Window() (Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return Window{}, fmt.Errorf("%w: state %s", ErrNotActive, s.state)
	}
	return s.window, nil
}

// Terminate zeroizes the current key and the master secret and moves the
// engine to Terminated. Idempotent.
func (s *Scheduler) Terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return
	}
	if s.key != nil {
		s.key.Zero()
		s.retired = s.key
		s.key = nil
		if s.metrics != nil {
			s.metrics.RecordZeroization()
		}
	}
	if s.master != nil {
		s.master.Zero()
		s.master = nil
	}
	prevState := s.state
	s.state = StateTerminated
	if prevState != StateUninitialized {
		s.auditEvent(audit.ActionTerminate, audit.ResourceEngine, s.window.Index, nil)
	}
	s.logger.Info("engine terminated", logging.WindowIndex(s.window.Index))
}

// Status is a point-in-time snapshot of the engine for dashboards and
// diagnostics. It carries fingerprints only, never key material.
type Status struct {
	InstanceID       string
	State            State
	Window           Window
	PathLength       int
	DirectionChanges int
	Attempts         int
	MazeFingerprint  string
	KeyFingerprint   string
}

// Status returns a snapshot of the engine.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		InstanceID:       s.instanceID,
		State:            s.state,
		Window:           s.window,
		PathLength:       s.pathLength,
		DirectionChanges: s.directionChanges,
		Attempts:         s.attempts,
		MazeFingerprint:  s.mazeFingerprint,
	}
	if s.state == StateActive {
		st.KeyFingerprint = kdf.KeyFingerprint(s.key)
	}
	return st
}

func (s *Scheduler) auditEvent(action audit.Action, resource audit.ResourceType, windowIndex uint64, err error) {
	s.auditEventID(action, resource, "", windowIndex, err)
}

func (s *Scheduler) auditEventID(action audit.Action, resource audit.ResourceType, resourceID string, windowIndex uint64, err error) {
	event := &audit.Event{
		EngineID:     s.instanceID,
		WindowIndex:  windowIndex,
		Action:       action,
		ResourceType: resource,
		ResourceID:   resourceID,
		Status:       audit.StatusSuccess,
	}
	if err != nil {
		event.Status = audit.StatusFailure
		event.ErrorMessage = err.Error()
	}
	s.audit.Log(event)
}

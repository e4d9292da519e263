package grab

import (
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// State is the grab state of a Manipulator.
type State uint8

const (
	StateIdle State = iota
	StateHolding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHolding:
		return "holding"
	}
	return "unknown"
}

// Transition is the state change produced by one Update.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionGrabbed
	TransitionReleased
)

func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionGrabbed:
		return "grabbed"
	case TransitionReleased:
		return "released"
	}
	return "unknown"
}

// Option configures a Manipulator.
type Option func(*Manipulator)

// WithConfig sets the manipulator configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manipulator) { m.cfg = cfg.Normalize() }
}

// WithLogger sets the logger used for transitions.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manipulator) {
		if l != nil {
			m.log = l
		}
	}
}

// Manipulator is the grab state machine of one tracked hand.
//
// It holds at most one Grabbable and can only start holding its current
// overlap candidate. All manipulators sharing a HoldRegistry must be updated
// from the same frame loop.
type Manipulator struct {
	id       string
	cfg      Config
	registry *HoldRegistry
	log      *zap.Logger

	state     State
	gripHigh  bool
	candidate Grabbable
	held      Grabbable
	last      Pose
}

// NewManipulator creates an idle manipulator. A nil registry gives the
// manipulator a private one.
func NewManipulator(id string, registry *HoldRegistry, opts ...Option) *Manipulator {
	if registry == nil {
		registry = NewHoldRegistry()
	}
	m := &Manipulator{
		id:       id,
		cfg:      DefaultConfig(),
		registry: registry,
		log:      zap.NewNop(),
		last:     IdentityPose(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(zap.String("hand", id))
	return m
}

func (m *Manipulator) ID() string              { return m.id }
func (m *Manipulator) State() State            { return m.state }
func (m *Manipulator) Held() Grabbable         { return m.held }
func (m *Manipulator) Candidate() Grabbable    { return m.candidate }
func (m *Manipulator) Baseline() Pose          { return m.last }
func (m *Manipulator) Config() Config          { return m.cfg }
func (m *Manipulator) Registry() *HoldRegistry { return m.registry }
func (m *Manipulator) Holding() bool           { return m.held != nil }

// SetConfig replaces the configuration. A held object stays held.
func (m *Manipulator) SetConfig(cfg Config) {
	m.cfg = cfg.Normalize()
}

// OverlapEnter makes g the current grab candidate.
func (m *Manipulator) OverlapEnter(g Grabbable) {
	if g == nil {
		return
	}
	m.candidate = g
}

// OverlapExit clears the candidate if it is g.
func (m *Manipulator) OverlapExit(g Grabbable) {
	if g == nil || m.candidate != g {
		return
	}
	m.candidate = nil
}

// Update advances the manipulator by one frame with its current world pose
// and grip signal.
//
// A rising edge of grip across the threshold grabs the candidate, a falling
// edge releases the held object. A sample exactly at the threshold keeps the
// previous side. While holding, the motion since the previous frame is
// applied to the held object and pose becomes the new baseline.
func (m *Manipulator) Update(pose Pose, grip float64) Transition {
	high := m.gripHigh
	switch {
	case grip > m.cfg.GripThreshold:
		high = true
	case grip < m.cfg.GripThreshold:
		high = false
	}
	rose := high && !m.gripHigh
	fell := !high && m.gripHigh
	m.gripHigh = high

	tr := TransitionNone
	switch {
	case rose && m.held == nil && m.candidate != nil:
		m.grab(pose)
		tr = TransitionGrabbed
	case fell && m.held != nil:
		m.release()
		tr = TransitionReleased
	}

	if m.held != nil {
		Apply(m.last, pose, m.held, m.cfg.DoubleRotation)
		m.last = pose
	}
	return tr
}

// ForceRelease lets go of the held object through the normal release path.
// It reports whether anything was held.
func (m *Manipulator) ForceRelease() bool {
	if m.held == nil {
		return false
	}
	m.release()
	return true
}

func (m *Manipulator) grab(pose Pose) {
	g := m.candidate
	m.held = g
	m.state = StateHolding
	m.last = pose

	if m.registry.Increment(g) {
		g.SetGravityEnabled(false)
	}
	m.log.Debug("grab", zap.Int("holders", m.registry.Count(g)))
}

func (m *Manipulator) release() {
	g := m.held
	m.held = nil
	m.state = StateIdle

	if !m.registry.Decrement(g) {
		m.log.Debug("release", zap.Int("holders", m.registry.Count(g)))
		return
	}
	switch m.cfg.ReleasePolicy {
	case ReleaseRestoreGravity:
		g.SetGravityEnabled(true)
	default:
		g.SetGravityEnabled(false)
		g.SetLinearVelocity(mgl64.Vec3{})
		g.SetAngularVelocity(mgl64.Vec3{})
	}
	m.log.Debug("release last holder", zap.String("policy", string(m.cfg.ReleasePolicy)))
}

package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/ecs/system"
	"github.com/milk9111/grabrig/grab"
	"github.com/milk9111/grabrig/physics"
	"go.uber.org/zap"
)

var (
	ErrDuplicateName = errors.New("scene: duplicate name")
	ErrUnknownHand   = errors.New("scene: unknown hand")
)

const defaultTriggerRadius = 0.1

// Options configures a new Scene.
type Options struct {
	Gravity float64
	FloorY  *float64
	Logger  *zap.Logger
}

// Scene owns the hold registry shared by its hands, the ECS world, the
// physics world and the frame schedule. A Scene must be ticked from a
// single goroutine.
type Scene struct {
	World    *ecs.World
	Registry *grab.HoldRegistry
	Physics  *physics.World

	scheduler *ecs.Scheduler
	overlap   *system.OverlapSystem
	legacy    legacyInput
	log       *zap.Logger

	handOrder []string
	hands     map[string]ecs.Entity
	fixedGrip map[string]bool
	bodyOrder []string
	bodies    map[string]ecs.Entity

	frameEvents []ecs.Event
}

// New creates an empty scene.
func New(opts Options) *Scene {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	pw := physics.NewWorld(opts.Gravity)
	if opts.FloorY != nil {
		pw.AddFloor(*opts.FloorY)
	}

	s := &Scene{
		World:     ecs.NewWorld(),
		Registry:  grab.NewHoldRegistry(),
		Physics:   pw,
		overlap:   system.NewOverlapSystem(),
		log:       log,
		hands:     make(map[string]ecs.Entity),
		fixedGrip: make(map[string]bool),
		bodies:    make(map[string]ecs.Entity),
	}
	s.scheduler = ecs.NewScheduler(
		system.NewTrackSystem(log),
		s.overlap,
		system.NewGrabSystem(log),
		system.NewSpinSystem(),
		system.NewPhysicsSystem(pw),
		eventSink{scene: s},
	)
	return s
}

// eventSink keeps a copy of the frame's events before the world flushes
// them.
type eventSink struct {
	scene *Scene
}

func (e eventSink) Update(w *ecs.World) {
	e.scene.frameEvents = append(e.scene.frameEvents[:0], w.Events().Peek()...)
}

// BodyOptions describes a grabbable body to add.
type BodyOptions struct {
	physics.BodySpec
	// GravityOff starts the body floating.
	GravityOff bool
	// Spin turns the body at a constant rate in degrees per second about
	// SpinAxis, given in the body's frame. A zero axis means up (Y).
	Spin     float64
	SpinAxis mgl64.Vec3
}

// AddBody adds a grabbable body. An empty name gets a generated one.
func (s *Scene) AddBody(opts BodyOptions) (ecs.Entity, *physics.Body, error) {
	if opts.Name == "" {
		opts.Name = "body-" + uuid.NewString()
	}
	if _, dup := s.bodies[opts.Name]; dup {
		return 0, nil, fmt.Errorf("%w: body %q", ErrDuplicateName, opts.Name)
	}

	body := s.Physics.AddBody(opts.BodySpec)
	if opts.GravityOff {
		body.SetGravityEnabled(false)
	}

	e := s.World.CreateEntity()
	if err := ecs.Add(s.World, e, component.GrabbableComponent.Kind(), &component.Grabbable{
		Name:   opts.Name,
		Body:   body,
		Radius: body.Radius(),
	}); err != nil {
		return 0, nil, fmt.Errorf("scene: add body %q: %w", opts.Name, err)
	}
	if err := ecs.Add(s.World, e, component.TransformComponent.Kind(), &component.Transform{
		Position: body.Position(),
		Rotation: body.Rotation(),
	}); err != nil {
		return 0, nil, fmt.Errorf("scene: add body %q: %w", opts.Name, err)
	}

	if opts.Spin != 0 {
		axis := opts.SpinAxis
		if axis.Len() == 0 {
			axis = mgl64.Vec3{0, 1, 0}
		}
		if err := ecs.Add(s.World, e, component.SpinComponent.Kind(), &component.Spin{
			Axis: axis,
			Rate: mgl64.DegToRad(opts.Spin),
		}); err != nil {
			return 0, nil, fmt.Errorf("scene: add body %q: %w", opts.Name, err)
		}
	}

	s.bodies[opts.Name] = e
	s.bodyOrder = append(s.bodyOrder, opts.Name)
	return e, body, nil
}

// HandOptions describes a hand to add.
type HandOptions struct {
	Name          string
	Config        grab.Config
	TriggerRadius float64
	Pose          grab.Pose

	// Tracker drives the hand's pose and grip each frame. Without one the
	// pose is set with SetHandPose.
	Tracker component.Tracker
	// Grip overrides the grip source. By default a tracked hand reads its
	// track's grip, or the legacy axis named in Config when Config.Source
	// is legacy.
	Grip grab.GripSource
}

// AddHand adds a hand whose Manipulator shares the scene registry.
func (s *Scene) AddHand(opts HandOptions) (ecs.Entity, *grab.Manipulator, error) {
	if opts.Name == "" {
		opts.Name = "hand-" + uuid.NewString()
	}
	if _, dup := s.hands[opts.Name]; dup {
		return 0, nil, fmt.Errorf("%w: hand %q", ErrDuplicateName, opts.Name)
	}
	if opts.TriggerRadius <= 0 {
		opts.TriggerRadius = defaultTriggerRadius
	}
	pose := opts.Pose
	if pose.Rotation.Len() == 0 {
		pose.Rotation = mgl64.QuatIdent()
	}

	cfg := opts.Config.Normalize()
	m := grab.NewManipulator(opts.Name, s.Registry, grab.WithConfig(cfg), grab.WithLogger(s.log))
	e := s.World.CreateEntity()

	hand := &component.Hand{
		Name:          opts.Name,
		Manipulator:   m,
		Grip:          opts.Grip,
		TriggerRadius: opts.TriggerRadius,
	}
	var track *component.Track
	if opts.Tracker != nil {
		track = &component.Track{Tracker: opts.Tracker}
		if err := ecs.Add(s.World, e, component.TrackComponent.Kind(), track); err != nil {
			return 0, nil, fmt.Errorf("scene: add hand %q: %w", opts.Name, err)
		}
		s.legacy.bind(GripAxisName(opts.Name), &track.Grip)
	}
	if opts.Grip != nil {
		s.fixedGrip[opts.Name] = true
	} else {
		hand.Grip = s.gripFor(cfg, track)
	}

	if err := ecs.Add(s.World, e, component.HandComponent.Kind(), hand); err != nil {
		return 0, nil, fmt.Errorf("scene: add hand %q: %w", opts.Name, err)
	}
	if err := ecs.Add(s.World, e, component.TransformComponent.Kind(), &component.Transform{
		Position: pose.Position,
		Rotation: pose.Rotation,
	}); err != nil {
		return 0, nil, fmt.Errorf("scene: add hand %q: %w", opts.Name, err)
	}

	s.hands[opts.Name] = e
	s.handOrder = append(s.handOrder, opts.Name)
	return e, m, nil
}

// RemoveHand releases whatever the hand holds and removes it.
func (s *Scene) RemoveHand(name string) bool {
	e, ok := s.hands[name]
	if !ok {
		return false
	}
	if hand, ok := ecs.Get(s.World, e, component.HandComponent.Kind()); ok && hand.Manipulator != nil {
		hand.Manipulator.ForceRelease()
	}
	s.World.DestroyEntity(e)
	s.legacy.unbind(GripAxisName(name))
	delete(s.hands, name)
	delete(s.fixedGrip, name)
	for i, n := range s.handOrder {
		if n == name {
			s.handOrder = append(s.handOrder[:i], s.handOrder[i+1:]...)
			break
		}
	}
	return true
}

// Hand returns the Manipulator of a named hand.
func (s *Scene) Hand(name string) (*grab.Manipulator, bool) {
	e, ok := s.hands[name]
	if !ok {
		return nil, false
	}
	hand, ok := ecs.Get(s.World, e, component.HandComponent.Kind())
	if !ok {
		return nil, false
	}
	return hand.Manipulator, true
}

// Body returns a named body.
func (s *Scene) Body(name string) (*physics.Body, bool) {
	e, ok := s.bodies[name]
	if !ok {
		return nil, false
	}
	g, ok := ecs.Get(s.World, e, component.GrabbableComponent.Kind())
	if !ok {
		return nil, false
	}
	b, ok := g.Body.(*physics.Body)
	return b, ok
}

// SetHandPose moves an untracked hand. The pose takes effect next Tick.
func (s *Scene) SetHandPose(name string, pose grab.Pose) error {
	e, ok := s.hands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHand, name)
	}
	t, ok := ecs.Get(s.World, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHand, name)
	}
	t.Position = pose.Position
	t.Rotation = pose.Rotation
	return nil
}

// gripFor picks the grip source a hand's config asks for: the legacy axis
// table, or the hand's own track.
func (s *Scene) gripFor(cfg grab.Config, track *component.Track) grab.GripSource {
	if cfg.Source == grab.SourceLegacy {
		return grab.LegacyAxis{Name: cfg.LegacyAxis, Read: s.legacy.read}
	}
	if track != nil {
		return &track.Grip
	}
	return nil
}

// Reconfigure replaces a hand's configuration without dropping what it
// holds. The grip source is rebound to match the new config unless the
// hand was given its own.
func (s *Scene) Reconfigure(name string, cfg grab.Config) error {
	e, ok := s.hands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHand, name)
	}
	hand, ok := ecs.Get(s.World, e, component.HandComponent.Kind())
	if !ok || hand.Manipulator == nil {
		return fmt.Errorf("%w: %q", ErrUnknownHand, name)
	}
	m := hand.Manipulator
	m.SetConfig(cfg)
	if !s.fixedGrip[name] {
		track, _ := ecs.Get(s.World, e, component.TrackComponent.Kind())
		hand.Grip = s.gripFor(m.Config(), track)
	}
	s.log.Info("hand reconfigured",
		zap.String("hand", name),
		zap.Float64("grip_threshold", m.Config().GripThreshold),
		zap.Bool("double_rotation", m.Config().DoubleRotation),
		zap.String("release_policy", string(m.Config().ReleasePolicy)),
		zap.String("source", string(m.Config().Source)),
		zap.String("legacy_axis", m.Config().LegacyAxis),
	)
	return nil
}

// Tick runs one frame of dt seconds and returns the events it produced.
// The slice is reused by the next Tick.
func (s *Scene) Tick(dt float64) []ecs.Event {
	s.frameEvents = s.frameEvents[:0]
	s.scheduler.Update(s.World, dt)
	return s.frameEvents
}

// HandNames returns hand names in update order.
func (s *Scene) HandNames() []string {
	return append([]string(nil), s.handOrder...)
}

// BodyNames returns body names in creation order.
func (s *Scene) BodyNames() []string {
	return append([]string(nil), s.bodyOrder...)
}

// NameOf returns the name of a hand or body entity.
func (s *Scene) NameOf(e ecs.Entity) string {
	if hand, ok := ecs.Get(s.World, e, component.HandComponent.Kind()); ok {
		return hand.Name
	}
	if g, ok := ecs.Get(s.World, e, component.GrabbableComponent.Kind()); ok {
		return g.Name
	}
	return ""
}

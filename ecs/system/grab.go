package system

import (
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/grab"
	"go.uber.org/zap"
)

// GrabSystem advances every hand's Manipulator once per frame, one hand at a
// time in storage order, and publishes a GrabEvent for each transition.
type GrabSystem struct {
	log     *zap.Logger
	lastErr map[ecs.Entity]error
}

func NewGrabSystem(log *zap.Logger) *GrabSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &GrabSystem{log: log, lastErr: make(map[ecs.Entity]error)}
}

func (s *GrabSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	owners := make(map[grab.Grabbable]ecs.Entity)
	ecs.ForEach(w, component.GrabbableComponent.Kind(), func(e ecs.Entity, g *component.Grabbable) {
		if g.Body != nil {
			owners[g.Body] = e
		}
	})

	ecs.ForEach2(w, component.HandComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hand *component.Hand, t *component.Transform) {
		m := hand.Manipulator
		if m == nil {
			return
		}

		grip, err := grab.ReadGrip(hand.Grip)
		s.noteInputError(e, hand.Name, err)

		before := m.Held()
		tr := m.Update(grab.PoseAt(t.Position, t.Rotation), grip)

		var body grab.Grabbable
		var kind ecs.GrabEventKind
		switch tr {
		case grab.TransitionGrabbed:
			body, kind = m.Held(), ecs.GrabEventGrabbed
		case grab.TransitionReleased:
			body, kind = before, ecs.GrabEventReleased
		default:
			return
		}
		holders := m.Registry().Count(body)
		s.log.Debug("hand transition",
			zap.String("hand", hand.Name),
			zap.Stringer("transition", tr),
			zap.Int("holders", holders),
		)
		w.Events().Push(ecs.Event{Type: ecs.EventTypeGrab, Data: ecs.GrabEvent{
			Kind:    kind,
			Hand:    e,
			Body:    owners[body],
			Holders: holders,
		}})
	})
}

// noteInputError logs input failures once per change so an unplugged device
// does not flood the log every frame.
func (s *GrabSystem) noteInputError(e ecs.Entity, name string, err error) {
	if sameError(s.lastErr[e], err) {
		return
	}
	if err == nil {
		delete(s.lastErr, e)
		s.log.Debug("hand input recovered", zap.String("hand", name))
		return
	}
	s.lastErr[e] = err
	s.log.Debug("hand input unavailable, reading grip as 0", zap.String("hand", name), zap.Error(err))
}

func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Error() == b.Error()
}

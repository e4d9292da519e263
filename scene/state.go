package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/grab"
)

// ErrInconsistent reports a hold registry that disagrees with the hands.
var ErrInconsistent = errors.New("scene: inconsistent hold state")

// BodyState is a read-only view of a body.
type BodyState struct {
	Name            string
	Position        mgl64.Vec3
	Rotation        mgl64.Quat
	LinearVelocity  mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Gravity         bool
	Holders         int
}

// HandState is a read-only view of a hand.
type HandState struct {
	Name      string
	State     grab.State
	Position  mgl64.Vec3
	Rotation  mgl64.Quat
	Held      string
	Candidate string
}

// Bodies returns the state of every body in creation order.
func (s *Scene) Bodies() []BodyState {
	out := make([]BodyState, 0, len(s.bodyOrder))
	for _, name := range s.bodyOrder {
		g, ok := ecs.Get(s.World, s.bodies[name], component.GrabbableComponent.Kind())
		if !ok || g.Body == nil {
			continue
		}
		out = append(out, BodyState{
			Name:            name,
			Position:        g.Body.Position(),
			Rotation:        g.Body.Rotation(),
			LinearVelocity:  g.Body.LinearVelocity(),
			AngularVelocity: g.Body.AngularVelocity(),
			Gravity:         g.Body.GravityEnabled(),
			Holders:         s.Registry.Count(g.Body),
		})
	}
	return out
}

// Hands returns the state of every hand in update order.
func (s *Scene) Hands() []HandState {
	names := s.bodyNamesByHandle()
	out := make([]HandState, 0, len(s.handOrder))
	for _, name := range s.handOrder {
		e := s.hands[name]
		hand, ok := ecs.Get(s.World, e, component.HandComponent.Kind())
		if !ok || hand.Manipulator == nil {
			continue
		}
		st := HandState{
			Name:      name,
			State:     hand.Manipulator.State(),
			Held:      names[hand.Manipulator.Held()],
			Candidate: names[hand.Manipulator.Candidate()],
		}
		if t, ok := ecs.Get(s.World, e, component.TransformComponent.Kind()); ok {
			st.Position = t.Position
			st.Rotation = t.Rotation
		}
		out = append(out, st)
	}
	return out
}

func (s *Scene) bodyNamesByHandle() map[grab.Grabbable]string {
	names := make(map[grab.Grabbable]string, len(s.bodies))
	for name, e := range s.bodies {
		if g, ok := ecs.Get(s.World, e, component.GrabbableComponent.Kind()); ok && g.Body != nil {
			names[g.Body] = name
		}
	}
	return names
}

// Check verifies that each registry count equals the number of hands
// holding the body and that held bodies have gravity disabled.
func (s *Scene) Check() error {
	holders := make(map[grab.Grabbable]int)
	for _, name := range s.handOrder {
		m, ok := s.Hand(name)
		if !ok || m.Held() == nil {
			continue
		}
		holders[m.Held()]++
	}
	for g, n := range holders {
		if got := s.Registry.Count(g); got != n {
			return fmt.Errorf("%w: registry count %d, %d hands holding", ErrInconsistent, got, n)
		}
		if g.GravityEnabled() {
			return fmt.Errorf("%w: held body has gravity enabled", ErrInconsistent)
		}
	}
	if s.Registry.Len() != len(holders) {
		return fmt.Errorf("%w: registry tracks %d bodies, %d held", ErrInconsistent, s.Registry.Len(), len(holders))
	}
	return nil
}

// Touching reports whether a hand's trigger currently overlaps a body.
func (s *Scene) Touching(hand, body string) bool {
	h, ok := s.hands[hand]
	if !ok {
		return false
	}
	b, ok := s.bodies[body]
	if !ok {
		return false
	}
	return s.overlap.Touching(h, b)
}

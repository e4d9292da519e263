package system

import (
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/grab"
)

// OverlapSystem is the trigger detector for hands. A hand touches a body
// when the distance between the hand position and the body centre is at
// most the sum of the trigger and body radii. Changes are forwarded to the
// hand's Manipulator and published as OverlapEvents.
type OverlapSystem struct {
	touching map[ecs.Entity]map[ecs.Entity]grab.Grabbable
}

func NewOverlapSystem() *OverlapSystem {
	return &OverlapSystem{touching: make(map[ecs.Entity]map[ecs.Entity]grab.Grabbable)}
}

type overlapBody struct {
	entity ecs.Entity
	body   *component.Grabbable
}

func (s *OverlapSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var bodies []overlapBody
	ecs.ForEach(w, component.GrabbableComponent.Kind(), func(e ecs.Entity, g *component.Grabbable) {
		if g.Body != nil {
			bodies = append(bodies, overlapBody{entity: e, body: g})
		}
	})

	seen := make(map[ecs.Entity]bool)
	ecs.ForEach2(w, component.HandComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hand *component.Hand, t *component.Transform) {
		seen[e] = true
		prev := s.touching[e]
		next := make(map[ecs.Entity]grab.Grabbable, len(prev))

		for _, b := range bodies {
			reach := hand.TriggerRadius + b.body.Radius
			if b.body.Body.Position().Sub(t.Position).Len() <= reach {
				next[b.entity] = b.body.Body
			}
		}

		for body, g := range prev {
			if _, still := next[body]; still {
				continue
			}
			if hand.Manipulator != nil {
				hand.Manipulator.OverlapExit(g)
			}
			w.Events().Push(ecs.Event{Type: ecs.EventTypeOverlap, Data: ecs.OverlapEvent{Kind: ecs.OverlapExit, Hand: e, Body: body}})
		}
		for _, b := range bodies {
			if _, ok := next[b.entity]; !ok {
				continue
			}
			if _, was := prev[b.entity]; was {
				continue
			}
			if hand.Manipulator != nil {
				hand.Manipulator.OverlapEnter(b.body.Body)
			}
			w.Events().Push(ecs.Event{Type: ecs.EventTypeOverlap, Data: ecs.OverlapEvent{Kind: ecs.OverlapEnter, Hand: e, Body: b.entity}})
		}
		s.touching[e] = next
	})

	for e := range s.touching {
		if !seen[e] {
			delete(s.touching, e)
		}
	}
}

// Touching reports whether hand currently overlaps body.
func (s *OverlapSystem) Touching(hand, body ecs.Entity) bool {
	_, ok := s.touching[hand][body]
	return ok
}

package system

import (
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/physics"
)

// PhysicsSystem steps the physics world by the frame time and mirrors body
// poses into their Transforms.
type PhysicsSystem struct {
	world *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}
	ps.world.Step(w.DeltaTime())
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.GrabbableComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, g *component.Grabbable, t *component.Transform) {
		if g.Body == nil {
			return
		}
		t.Position = g.Body.Position()
		t.Rotation = g.Body.Rotation()
	})
}

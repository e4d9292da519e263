package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
)

// SpinSystem turns spinning bodies by their rate for the frame, whether or
// not a hand holds them.
type SpinSystem struct{}

func NewSpinSystem() *SpinSystem { return &SpinSystem{} }

func (s *SpinSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach2(w, component.SpinComponent.Kind(), component.GrabbableComponent.Kind(), func(_ ecs.Entity, spin *component.Spin, g *component.Grabbable) {
		if g.Body == nil || spin.Rate == 0 || spin.Axis.Len() == 0 {
			return
		}
		step := mgl64.QuatRotate(spin.Rate*dt, spin.Axis.Normalize())
		g.Body.SetRotation(g.Body.Rotation().Mul(step).Normalize())
	})
}

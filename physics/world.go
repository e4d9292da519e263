package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	defaultRadius = 0.1
	defaultMass   = 1.0
	floorHalfSpan = 1000.0
	floorRadius   = 0.01
)

// World owns the Chipmunk space that simulates grabbable bodies in the XY
// plane with gravity along Y.
type World struct {
	space  *cp.Space
	bodies []*Body
	floor  *cp.Shape
}

// NewWorld creates a physics world with the given vertical gravity
// (negative pulls down).
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &World{space: space}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// SetGravity changes the vertical gravity.
func (w *World) SetGravity(gravity float64) {
	w.space.SetGravity(cp.Vector{X: 0, Y: gravity})
}

// AddFloor adds a static floor at height y, replacing any previous floor.
func (w *World) AddFloor(y float64) {
	if w.floor != nil {
		w.space.RemoveShape(w.floor)
	}
	shape := cp.NewSegment(w.space.StaticBody, cp.Vector{X: -floorHalfSpan, Y: y}, cp.Vector{X: floorHalfSpan, Y: y}, floorRadius)
	shape.SetFriction(0.8)
	shape.SetElasticity(0)
	w.space.AddShape(shape)
	w.floor = shape
}

// BodySpec describes a body to add.
type BodySpec struct {
	Name       string
	Position   mgl64.Vec3
	Rotation   mgl64.Quat
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
}

// AddBody creates a dynamic circular body with gravity enabled.
func (w *World) AddBody(spec BodySpec) *Body {
	radius := spec.Radius
	if radius <= 0 {
		radius = defaultRadius
	}
	mass := spec.Mass
	if mass <= 0 {
		mass = defaultMass
	}

	cpBody := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	shape := cp.NewCircle(cpBody, radius, cp.Vector{})
	shape.SetFriction(spec.Friction)
	shape.SetElasticity(spec.Elasticity)

	b := &Body{
		name:    spec.Name,
		body:    cpBody,
		shape:   shape,
		radius:  radius,
		swing:   mgl64.QuatIdent(),
		gravity: true,
	}
	cpBody.UserData = b
	cpBody.SetVelocityUpdateFunc(b.updateVelocity)

	rot := spec.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	b.SetPosition(spec.Position)
	b.SetRotation(rot)

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody takes b out of the simulation.
func (w *World) RemoveBody(b *Body) {
	for i, other := range w.bodies {
		if other != b {
			continue
		}
		w.space.RemoveShape(b.shape)
		w.space.RemoveBody(b.body)
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		return
	}
}

// Bodies returns the bodies in creation order.
func (w *World) Bodies() []*Body {
	return append([]*Body(nil), w.bodies...)
}

// Step advances the simulation by dt seconds. Motion along Z is integrated
// from the stored Z velocity without gravity or collisions.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.space.Step(dt)
	for _, b := range w.bodies {
		b.z += b.vz * dt
	}
}

package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

var axisZ = mgl64.Vec3{0, 0, 1}

// Body is a Chipmunk body seen as a 3D grabbable. X, Y and the rotation
// about Z are simulated; Z, its velocity and the remaining rotation are kept
// alongside the body and only change when set.
type Body struct {
	name   string
	body   *cp.Body
	shape  *cp.Shape
	radius float64

	z      float64
	vz     float64
	swing  mgl64.Quat
	angVel mgl64.Vec3

	gravity bool
}

func (b *Body) updateVelocity(body *cp.Body, gravity cp.Vector, damping float64, dt float64) {
	if !b.gravity {
		gravity = cp.Vector{}
	}
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
}

func (b *Body) Name() string     { return b.name }
func (b *Body) Radius() float64  { return b.radius }
func (b *Body) CPBody() *cp.Body { return b.body }
func (b *Body) Shape() *cp.Shape { return b.shape }

func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, p.Y, b.z}
}

func (b *Body) SetPosition(p mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: p[0], Y: p[1]})
	b.z = p[2]
	b.body.Activate()
}

// Rotation returns the stored off-plane rotation followed by the simulated
// twist about Z.
func (b *Body) Rotation() mgl64.Quat {
	return b.swing.Mul(mgl64.QuatRotate(b.body.Angle(), axisZ)).Normalize()
}

// SetRotation splits q into a twist about Z, which drives the Chipmunk
// angle, and the remaining swing.
func (b *Body) SetRotation(q mgl64.Quat) {
	q = q.Normalize()
	twist := 2 * math.Atan2(q.V[2], q.W)
	b.swing = q.Mul(mgl64.QuatRotate(twist, axisZ).Inverse()).Normalize()
	b.body.SetAngle(twist)
	b.body.Activate()
}

func (b *Body) GravityEnabled() bool { return b.gravity }

func (b *Body) SetGravityEnabled(on bool) {
	b.gravity = on
	b.body.Activate()
}

func (b *Body) LinearVelocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, v.Y, b.vz}
}

func (b *Body) SetLinearVelocity(v mgl64.Vec3) {
	b.body.SetVelocity(v[0], v[1])
	b.vz = v[2]
}

func (b *Body) AngularVelocity() mgl64.Vec3 {
	return mgl64.Vec3{b.angVel[0], b.angVel[1], b.body.AngularVelocity()}
}

func (b *Body) SetAngularVelocity(v mgl64.Vec3) {
	b.angVel = mgl64.Vec3{v[0], v[1], 0}
	b.body.SetAngularVelocity(v[2])
}

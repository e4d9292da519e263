package grab

import "github.com/go-gl/mathgl/mgl64"

// Grabbable is a rigid body owned by the physics engine that a Manipulator
// may pick up. The interface value is the body's identity, so
// implementations must be comparable (pointer receivers).
type Grabbable interface {
	Position() mgl64.Vec3
	SetPosition(mgl64.Vec3)
	Rotation() mgl64.Quat
	SetRotation(mgl64.Quat)

	GravityEnabled() bool
	SetGravityEnabled(bool)

	LinearVelocity() mgl64.Vec3
	SetLinearVelocity(mgl64.Vec3)
	AngularVelocity() mgl64.Vec3
	SetAngularVelocity(mgl64.Vec3)
}

package grab

import "github.com/go-gl/mathgl/mgl64"

// Pose is a world-space position and orientation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// PoseAt returns a pose with the given position and rotation.
func PoseAt(pos mgl64.Vec3, rot mgl64.Quat) Pose {
	return Pose{Position: pos, Rotation: rot}
}

// PoseOf reads the current pose of a grabbable.
func PoseOf(g Grabbable) Pose {
	if g == nil {
		return IdentityPose()
	}
	return Pose{Position: g.Position(), Rotation: g.Rotation()}
}

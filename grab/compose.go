package grab

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// angleEpsilon is the sin(angle/2) below which a rotation is treated as
// identity when extracting its axis.
const angleEpsilon = 1e-9

// AngleAxis decomposes a rotation into an angle in radians within [0, π]
// and a unit axis. The identity rotation yields angle 0 about +X.
func AngleAxis(q mgl64.Quat) (float64, mgl64.Vec3) {
	q = q.Normalize()
	if q.W < 0 {
		q = mgl64.Quat{W: -q.W, V: q.V.Mul(-1)}
	}
	w := math.Min(1, q.W)
	s := math.Sqrt(1 - w*w)
	if s < angleEpsilon {
		return 0, mgl64.Vec3{1, 0, 0}
	}
	return 2 * math.Acos(w), q.V.Mul(1 / s)
}

// DeltaRotation returns the rotation carrying prev onto cur (cur · prev⁻¹).
// With double set, the angle of that rotation is doubled about the same
// axis.
func DeltaRotation(prev, cur mgl64.Quat, double bool) mgl64.Quat {
	delta := cur.Mul(prev.Inverse()).Normalize()
	if !double {
		return delta
	}
	angle, axis := AngleAxis(delta)
	if angle == 0 {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(2*angle, axis).Normalize()
}

// Compose applies the manipulator's motion from prev to cur onto an object
// pose and returns the new object pose.
//
// The object is translated by the manipulator's displacement and rotated
// about the manipulator's current position. Translation from several
// manipulators in one frame adds up; rotations compose in processing order.
func Compose(prev, cur, object Pose, double bool) Pose {
	deltaPos := cur.Position.Sub(prev.Position)
	deltaRot := DeltaRotation(prev.Rotation, cur.Rotation, double)

	dir := object.Position.Sub(cur.Position)
	pivotOffset := deltaRot.Rotate(dir).Sub(dir)

	return Pose{
		Position: object.Position.Add(deltaPos).Add(pivotOffset),
		Rotation: deltaRot.Mul(object.Rotation).Normalize(),
	}
}

// Apply composes the manipulator's motion onto g and writes the result back.
func Apply(prev, cur Pose, g Grabbable, double bool) {
	if g == nil {
		return
	}
	next := Compose(prev, cur, PoseOf(g), double)
	g.SetPosition(next.Position)
	g.SetRotation(next.Rotation)
}

package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space position and orientation.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()

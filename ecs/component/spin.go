package component

import "github.com/go-gl/mathgl/mgl64"

// Spin turns a body at a constant rate about an axis in its own frame.
// Rate is in radians per second.
type Spin struct {
	Axis mgl64.Vec3
	Rate float64
}

var SpinComponent = NewComponent[Spin]()

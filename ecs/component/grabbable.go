package component

import "github.com/milk9111/grabrig/grab"

// Grabbable marks a rigid body that hands can pick up. Radius is the
// overlap radius used for trigger tests.
type Grabbable struct {
	Name   string
	Body   grab.Grabbable
	Radius float64
}

var GrabbableComponent = NewComponent[Grabbable]()

package component

import "github.com/milk9111/grabrig/grab"

// Hand is a tracked manipulator. Its world pose is the entity Transform.
type Hand struct {
	Name          string
	Manipulator   *grab.Manipulator
	Grip          grab.GripSource
	TriggerRadius float64
}

var HandComponent = NewComponent[Hand]()

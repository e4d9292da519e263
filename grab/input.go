package grab

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDeviceUnavailable = errors.New("grab: input device unavailable")
	ErrNoGripFeature     = errors.New("grab: device has no grip feature")
	ErrLegacyAxis        = errors.New("grab: legacy axis unreadable")
)

// GripSource reports the grasp intent of a manipulator in [0, 1].
type GripSource interface {
	Grip() (float64, error)
}

// GripFunc adapts a function to GripSource.
type GripFunc func() (float64, error)

func (f GripFunc) Grip() (float64, error) {
	if f == nil {
		return 0, ErrDeviceUnavailable
	}
	return f()
}

// ReadGrip samples src. The returned value is always usable: a nil source,
// an error or a NaN all read as 0, and values are clamped to [0, 1]. The
// error is returned only so callers can log it.
func ReadGrip(src GripSource) (float64, error) {
	if src == nil {
		return 0, ErrDeviceUnavailable
	}
	v, err := src.Grip()
	if err != nil {
		return 0, err
	}
	return Clamp01(v), nil
}

// Clamp01 clamps v to [0, 1]; NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Device is a tracked controller that may expose an analog grip, a grip
// button, or neither.
type Device interface {
	Valid() bool
	Analog() (float64, bool)
	Button() (pressed bool, ok bool)
}

// DeviceLocator finds the device for a hand. It may return nil.
type DeviceLocator func() Device

// DeviceGrip is the native continuous grip source. While the device is
// missing or invalid it is re-located on every read.
type DeviceGrip struct {
	locate DeviceLocator
	dev    Device
}

// NewDeviceGrip creates a grip source that finds its device with locate.
func NewDeviceGrip(locate DeviceLocator) *DeviceGrip {
	d := &DeviceGrip{locate: locate}
	d.relocate()
	return d
}

func (d *DeviceGrip) relocate() {
	if d.locate == nil {
		d.dev = nil
		return
	}
	d.dev = d.locate()
}

func (d *DeviceGrip) valid() bool {
	return d.dev != nil && d.dev.Valid()
}

// Grip reads the analog grip, falling back to the grip button mapped to
// 0 or 1.
func (d *DeviceGrip) Grip() (float64, error) {
	if d == nil {
		return 0, ErrDeviceUnavailable
	}
	if !d.valid() {
		d.relocate()
	}
	if !d.valid() {
		return 0, ErrDeviceUnavailable
	}
	if v, ok := d.dev.Analog(); ok {
		return Clamp01(v), nil
	}
	if pressed, ok := d.dev.Button(); ok {
		if pressed {
			return 1, nil
		}
		return 0, nil
	}
	return 0, ErrNoGripFeature
}

// AxisReader reads a named input axis.
type AxisReader func(name string) (float64, error)

// ButtonAxis maps a named button reader to an axis reader returning 0 or 1.
func ButtonAxis(read func(name string) (bool, error)) AxisReader {
	return func(name string) (float64, error) {
		if read == nil {
			return 0, ErrLegacyAxis
		}
		pressed, err := read(name)
		if err != nil || !pressed {
			return 0, err
		}
		return 1, nil
	}
}

// LegacyAxis reads grip from a named axis of an older input system. Any
// failure, including a panicking reader, reads as 0.
type LegacyAxis struct {
	Name string
	Read AxisReader
}

func (a LegacyAxis) Grip() (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, fmt.Errorf("%w %q: %v", ErrLegacyAxis, a.Name, r)
		}
	}()
	if a.Read == nil || a.Name == "" {
		return 0, fmt.Errorf("%w %q: not configured", ErrLegacyAxis, a.Name)
	}
	v, err = a.Read(a.Name)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrLegacyAxis, a.Name, err)
	}
	return Clamp01(v), nil
}

package scene

import (
	"errors"
	"fmt"

	"github.com/milk9111/grabrig/grab"
)

// ErrAxisNotSetUp is returned when a legacy axis name has no binding.
var ErrAxisNotSetUp = errors.New("scene: legacy axis not set up")

// GripAxisName is the legacy axis bound to a tracked hand's grip.
func GripAxisName(hand string) string {
	return "Grip_" + hand
}

// legacyInput is a name-keyed table of binary axes, the older input path a
// hand can be configured to read instead of its native grip.
type legacyInput struct {
	axes map[string]grab.GripSource
}

func (l *legacyInput) bind(name string, src grab.GripSource) {
	if l.axes == nil {
		l.axes = make(map[string]grab.GripSource)
	}
	l.axes[name] = src
}

func (l *legacyInput) unbind(name string) {
	delete(l.axes, name)
}

// read reports a bound axis as pressed (1) or released (0).
func (l *legacyInput) read(name string) (float64, error) {
	src, ok := l.axes[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrAxisNotSetUp, name)
	}
	v, err := grab.ReadGrip(src)
	if err != nil {
		return 0, err
	}
	if v > grab.DefaultGripThreshold {
		return 1, nil
	}
	return 0, nil
}

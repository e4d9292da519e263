// Package gamepad feeds hand input from ebiten's keyboard and gamepad state.
package gamepad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/grabrig/grab"
)

// legacyGripButton is the raw button index of the right trigger on most
// pads without a standard layout.
const legacyGripButton = ebiten.GamepadButton7

// trigger reads the right trigger of one gamepad.
type trigger struct {
	id ebiten.GamepadID
}

func (t trigger) Valid() bool {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if id == t.id {
			return true
		}
	}
	return false
}

func (t trigger) Analog() (float64, bool) {
	if !ebiten.IsStandardGamepadLayoutAvailable(t.id) {
		return 0, false
	}
	return ebiten.StandardGamepadButtonValue(t.id, ebiten.StandardGamepadButtonFrontBottomRight), true
}

func (t trigger) Button() (bool, bool) {
	if ebiten.GamepadButtonCount(t.id) <= int(legacyGripButton) {
		return false, false
	}
	return ebiten.IsGamepadButtonPressed(t.id, legacyGripButton), true
}

// Locate returns the first connected gamepad's trigger, or nil.
func Locate() grab.Device {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return nil
	}
	return trigger{id: ids[0]}
}

var keys = map[string]ebiten.Key{
	"space": ebiten.KeySpace,
	"g":     ebiten.KeyG,
	"shift": ebiten.KeyShift,
	"enter": ebiten.KeyEnter,
}

// Buttons reads legacy axes by name: a key name such as "space", or
// "button<N>" for a raw button on the first gamepad.
func Buttons() grab.AxisReader {
	return grab.ButtonAxis(pressed)
}

func pressed(name string) (bool, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if key, ok := keys[n]; ok {
		return ebiten.IsKeyPressed(key), nil
	}

	idx, ok := strings.CutPrefix(n, "button")
	if !ok {
		return false, fmt.Errorf("gamepad: unknown axis %q", name)
	}
	b, err := strconv.Atoi(idx)
	if err != nil || b < 0 {
		return false, fmt.Errorf("gamepad: bad button %q", name)
	}
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return false, grab.ErrDeviceUnavailable
	}
	if b >= ebiten.GamepadButtonCount(ids[0]) {
		return false, fmt.Errorf("gamepad: button %d out of range", b)
	}
	return ebiten.IsGamepadButtonPressed(ids[0], ebiten.GamepadButton(b)), nil
}

// Grip returns the grip source for a live hand. Space always squeezes;
// otherwise the native trigger or the configured legacy axis is read.
func Grip(cfg grab.Config) grab.GripSource {
	var src grab.GripSource = grab.NewDeviceGrip(Locate)
	if cfg.Source == grab.SourceLegacy {
		src = grab.LegacyAxis{Name: cfg.LegacyAxis, Read: Buttons()}
	}
	return grab.GripFunc(func() (float64, error) {
		if ebiten.IsKeyPressed(ebiten.KeySpace) {
			return 1, nil
		}
		return grab.ReadGrip(src)
	})
}

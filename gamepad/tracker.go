package gamepad

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/grab"
)

const stickDeadzone = 0.2

// Tracker moves a hand from keyboard and stick input. WASD or the left
// stick move in the horizontal plane, R/F or the shoulder buttons move
// vertically, and the arrow keys or right stick turn the wrist.
type Tracker struct {
	Speed    float64 // metres per second
	TurnRate float64 // degrees per second

	pos        mgl64.Vec3
	yaw, pitch float64
	last       float64
}

func NewTracker(start mgl64.Vec3) *Tracker {
	return &Tracker{Speed: 0.8, TurnRate: 120, pos: start}
}

func (t *Tracker) Sample(_ uint64, elapsed float64) (component.TrackSample, error) {
	dt := elapsed - t.last
	t.last = elapsed
	if dt < 0 {
		dt = 0
	}

	var move mgl64.Vec3
	var turnYaw, turnPitch float64
	axis := func(neg, pos ebiten.Key) float64 {
		v := 0.0
		if ebiten.IsKeyPressed(neg) {
			v--
		}
		if ebiten.IsKeyPressed(pos) {
			v++
		}
		return v
	}
	move[0] = axis(ebiten.KeyA, ebiten.KeyD)
	move[1] = axis(ebiten.KeyF, ebiten.KeyR)
	move[2] = axis(ebiten.KeyW, ebiten.KeyS)
	turnYaw = axis(ebiten.KeyArrowRight, ebiten.KeyArrowLeft)
	turnPitch = axis(ebiten.KeyArrowDown, ebiten.KeyArrowUp)

	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 && ebiten.IsStandardGamepadLayoutAvailable(ids[0]) {
		id := ids[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			move[0], move[2] = lx, ly
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopRight) {
			move[1] = 1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontTopLeft) {
			move[1] = -1
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			turnYaw, turnPitch = -rx, -ry
		}
	}

	t.pos = t.pos.Add(move.Mul(t.Speed * dt))
	t.yaw += turnYaw * t.TurnRate * dt
	t.pitch = mgl64.Clamp(t.pitch+turnPitch*t.TurnRate*dt, -89, 89)

	rot := mgl64.QuatRotate(mgl64.DegToRad(t.yaw), mgl64.Vec3{0, 1, 0}).
		Mul(mgl64.QuatRotate(mgl64.DegToRad(t.pitch), mgl64.Vec3{1, 0, 0}))
	return component.TrackSample{Pose: grab.PoseAt(t.pos, rot.Normalize())}, nil
}

// Angles returns the current yaw and pitch in degrees.
func (t *Tracker) Angles() (yaw, pitch float64) {
	return t.yaw, t.pitch
}

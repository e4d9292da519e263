package scenario

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/grab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyframeTrack(t *testing.T) {
	track, err := NewKeyframeTrack([]Keyframe{
		{Frame: 10, Pose: grab.PoseAt(mgl64.Vec3{1, 0, 0}, Euler(0, 90, 0)), Grip: 0},
		{Frame: 0, Pose: grab.PoseAt(mgl64.Vec3{0, 0, 0}, mgl64.QuatIdent()), Grip: 1},
	})
	require.NoError(t, err)

	tests := []struct {
		tick    uint64
		wantX   float64
		wantYaw float64
		grip    float64
	}{
		{tick: 0, wantX: 0, wantYaw: 0, grip: 1},
		{tick: 1, wantX: 0, wantYaw: 0, grip: 1},
		{tick: 6, wantX: 0.5, wantYaw: 45, grip: 1},
		{tick: 10, wantX: 0.9, wantYaw: 81, grip: 1},
		{tick: 11, wantX: 1, wantYaw: 90, grip: 0},
		{tick: 50, wantX: 1, wantYaw: 90, grip: 0},
	}

	for _, tt := range tests {
		sample, err := track.Sample(tt.tick, 0)
		require.NoError(t, err)
		assert.InDelta(t, tt.wantX, sample.Pose.Position.X(), 1e-9, "tick %d", tt.tick)
		angle, _ := grab.AngleAxis(sample.Pose.Rotation)
		assert.InDelta(t, tt.wantYaw, mgl64.RadToDeg(angle), 1e-6, "tick %d", tt.tick)
		assert.Equal(t, tt.grip, sample.Grip, "tick %d", tt.tick)
	}
}

func TestKeyframeTrackShortestArc(t *testing.T) {
	// The second keyframe is the same orientation written with the
	// opposite sign.
	q := Euler(0, 10, 0)
	track, err := NewKeyframeTrack([]Keyframe{
		{Frame: 0, Pose: grab.PoseAt(mgl64.Vec3{}, q)},
		{Frame: 10, Pose: grab.PoseAt(mgl64.Vec3{}, q.Scale(-1))},
	})
	require.NoError(t, err)

	sample, err := track.Sample(6, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, math.Abs(sample.Pose.Rotation.Dot(q)), 1e-9)
}

func TestKeyframeTrackErrors(t *testing.T) {
	_, err := NewKeyframeTrack(nil)
	assert.ErrorIs(t, err, ErrNoKeyframes)

	_, err = NewKeyframeTrack([]Keyframe{{Frame: 3}, {Frame: 3}})
	assert.Error(t, err)
}

func TestScriptTrack(t *testing.T) {
	track, err := NewScriptTrack("inline", []byte(`
x = t * 2
y = tick
yaw = 90
grip = tick >= 5 ? 1.0 : 0.0
`))
	require.NoError(t, err)

	sample, err := track.Sample(1, 0.5)
	require.NoError(t, err)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, sample.Pose.Position)
	assert.Equal(t, 0.0, sample.Grip)
	v := sample.Pose.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 1, v.X(), 1e-9)

	sample, err = track.Sample(6, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, sample.Pose.Position.Y())
	assert.Equal(t, 1.0, sample.Grip)
}

func TestScriptTrackErrors(t *testing.T) {
	_, err := NewScriptTrack("broken", []byte(`x = (`))
	assert.Error(t, err)

	track, err := NewScriptTrack("runtime", []byte(`x = 1 / (tick - tick)`))
	require.NoError(t, err)
	_, err = track.Sample(1, 0)
	assert.Error(t, err)

	_, err = LoadScriptTrack("missing.tengo")
	assert.Error(t, err)
}

func TestOrbitScript(t *testing.T) {
	track, err := LoadScriptTrack("orbit.tengo")
	require.NoError(t, err)

	sample, err := track.Sample(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, sample.Pose.Position.X(), 1e-9)
	assert.InDelta(t, 1.0, sample.Pose.Position.Y(), 1e-9)
	assert.Equal(t, 0.0, sample.Grip)

	sample, err = track.Sample(11, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, sample.Grip)
	pos := sample.Pose.Position
	assert.InDelta(t, 0.3, math.Hypot(pos.X(), pos.Z()), 1e-9)
}

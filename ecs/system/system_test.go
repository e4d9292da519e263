package system

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/grab"
	"github.com/milk9111/grabrig/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTracker struct {
	samples []component.TrackSample
	failAt  map[uint64]bool
}

func (s *scriptedTracker) Sample(tick uint64, _ float64) (component.TrackSample, error) {
	if s.failAt[tick] {
		return component.TrackSample{}, errors.New("tracking lost")
	}
	i := int(tick) - 1
	if i >= len(s.samples) {
		i = len(s.samples) - 1
	}
	return s.samples[i], nil
}

type eventRecorder struct {
	frames [][]ecs.Event
}

func (r *eventRecorder) Update(w *ecs.World) {
	r.frames = append(r.frames, append([]ecs.Event(nil), w.Events().Peek()...))
}

func (r *eventRecorder) last() []ecs.Event {
	return r.frames[len(r.frames)-1]
}

func at(x, y, z, grip float64) component.TrackSample {
	return component.TrackSample{Pose: grab.PoseAt(mgl64.Vec3{x, y, z}, mgl64.QuatIdent()), Grip: grip}
}

type rig struct {
	world    *ecs.World
	sched    *ecs.Scheduler
	registry *grab.HoldRegistry
	body     *physics.Body
	bodyEnt  ecs.Entity
	handEnt  ecs.Entity
	hand     *grab.Manipulator
	overlap  *OverlapSystem
	recorder *eventRecorder
}

func newRig(t *testing.T, tracker component.Tracker) *rig {
	t.Helper()
	w := ecs.NewWorld()
	pw := physics.NewWorld(-10)
	reg := grab.NewHoldRegistry()

	body := pw.AddBody(physics.BodySpec{Name: "crate", Position: mgl64.Vec3{0, 1, 0}, Radius: 0.1})
	bodyEnt := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, bodyEnt, component.GrabbableComponent.Kind(), &component.Grabbable{Name: "crate", Body: body, Radius: 0.1}))
	require.NoError(t, ecs.Add(w, bodyEnt, component.TransformComponent.Kind(), &component.Transform{Rotation: mgl64.QuatIdent()}))

	m := grab.NewManipulator("right", reg)
	track := &component.Track{Tracker: tracker}
	handEnt := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, handEnt, component.TrackComponent.Kind(), track))
	require.NoError(t, ecs.Add(w, handEnt, component.TransformComponent.Kind(), &component.Transform{Rotation: mgl64.QuatIdent()}))
	require.NoError(t, ecs.Add(w, handEnt, component.HandComponent.Kind(), &component.Hand{
		Name:          "right",
		Manipulator:   m,
		Grip:          &track.Grip,
		TriggerRadius: 0.1,
	}))

	overlap := NewOverlapSystem()
	rec := &eventRecorder{}
	sched := ecs.NewScheduler(NewTrackSystem(nil), overlap, NewGrabSystem(nil), NewPhysicsSystem(pw), rec)
	return &rig{world: w, sched: sched, registry: reg, body: body, bodyEnt: bodyEnt, handEnt: handEnt, hand: m, overlap: overlap, recorder: rec}
}

func (r *rig) step() { r.sched.Update(r.world, 1.0/60) }

func TestGrabPipeline(t *testing.T) {
	tracker := &scriptedTracker{samples: []component.TrackSample{
		at(0, 1, 0.05, 0),
		at(0, 1, 0.05, 0.8),
		at(0.5, 1.5, 0.05, 0.8),
		at(0.5, 1.5, 0.05, 0.2),
	}}
	r := newRig(t, tracker)

	r.step()
	assert.True(t, r.overlap.Touching(r.handEnt, r.bodyEnt))
	require.Len(t, r.recorder.last(), 1)
	assert.Equal(t, ecs.OverlapEvent{Kind: ecs.OverlapEnter, Hand: r.handEnt, Body: r.bodyEnt}, r.recorder.last()[0].Data)
	assert.Equal(t, grab.Grabbable(r.body), r.hand.Candidate())

	r.step()
	assert.Equal(t, grab.StateHolding, r.hand.State())
	assert.Equal(t, 1, r.registry.Count(r.body))
	assert.False(t, r.body.GravityEnabled())
	require.Len(t, r.recorder.last(), 1)
	assert.Equal(t, ecs.GrabEvent{Kind: ecs.GrabEventGrabbed, Hand: r.handEnt, Body: r.bodyEnt, Holders: 1}, r.recorder.last()[0].Data)

	r.step()
	pos := r.body.Position()
	assert.InDelta(t, 0.5, pos[0], 1e-3)
	assert.InDelta(t, 1.5, pos[1], 0.02, "one frame of fall before the grab at most")
	tr, ok := ecs.Get(r.world, r.bodyEnt, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, pos, tr.Position, "transform mirrors the body")

	r.step()
	assert.Equal(t, grab.StateIdle, r.hand.State())
	assert.Equal(t, 0, r.registry.Count(r.body))
	assert.False(t, r.body.GravityEnabled())
	assert.Equal(t, mgl64.Vec3{}, r.body.LinearVelocity())

	var released bool
	for _, ev := range r.recorder.last() {
		if ge, ok := ev.Data.(ecs.GrabEvent); ok && ge.Kind == ecs.GrabEventReleased {
			released = true
			assert.Equal(t, r.bodyEnt, ge.Body)
			assert.Equal(t, 0, ge.Holders)
		}
	}
	assert.True(t, released)
}

func TestOverlapExitClearsCandidate(t *testing.T) {
	tracker := &scriptedTracker{samples: []component.TrackSample{
		at(0, 1, 0, 0),
		at(3, 1, 0, 0),
	}}
	r := newRig(t, tracker)
	r.body.SetGravityEnabled(false)

	r.step()
	require.NotNil(t, r.hand.Candidate())
	r.step()
	assert.Nil(t, r.hand.Candidate())
	assert.False(t, r.overlap.Touching(r.handEnt, r.bodyEnt))
	require.Len(t, r.recorder.last(), 1)
	assert.Equal(t, ecs.OverlapEvent{Kind: ecs.OverlapExit, Hand: r.handEnt, Body: r.bodyEnt}, r.recorder.last()[0].Data)
}

func TestTrackingLossReadsZeroGrip(t *testing.T) {
	tracker := &scriptedTracker{
		samples: []component.TrackSample{at(0, 1, 0, 0), at(0, 1, 0, 1), at(0, 1, 0, 1)},
		failAt:  map[uint64]bool{3: true},
	}
	r := newRig(t, tracker)
	r.body.SetGravityEnabled(false)

	r.step()
	r.step()
	require.Equal(t, grab.StateHolding, r.hand.State())

	r.step()
	assert.Equal(t, grab.StateIdle, r.hand.State(), "lost tracking reads as an open hand")
	tr, ok := ecs.Get(r.world, r.handEnt, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, tr.Position, "pose stays at the last good sample")
}

func TestOverlapForgetsRemovedHands(t *testing.T) {
	r := newRig(t, &scriptedTracker{samples: []component.TrackSample{at(0, 1, 0, 0)}})
	r.step()
	require.True(t, r.overlap.Touching(r.handEnt, r.bodyEnt))

	require.True(t, ecs.DestroyEntity(r.world, r.handEnt))
	r.step()
	assert.False(t, r.overlap.Touching(r.handEnt, r.bodyEnt))
}

func TestSpinTurnsInBodyFrame(t *testing.T) {
	tests := []struct {
		name  string
		start mgl64.Quat
		spin  component.Spin
		want  mgl64.Quat
	}{
		{
			name:  "quarter turn about up",
			start: mgl64.QuatIdent(),
			spin:  component.Spin{Axis: mgl64.Vec3{0, 1, 0}, Rate: math.Pi / 2},
			want:  mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0}),
		},
		{
			name:  "axis is local to the body",
			start: mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}),
			spin:  component.Spin{Axis: mgl64.Vec3{0, 2, 0}, Rate: math.Pi / 2},
			want:  mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0}).Mul(mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})),
		},
		{
			name:  "zero axis does nothing",
			start: mgl64.QuatIdent(),
			spin:  component.Spin{Rate: 1},
			want:  mgl64.QuatIdent(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			pw := physics.NewWorld(0)
			body := pw.AddBody(physics.BodySpec{Name: "planet", Rotation: tt.start})
			e := ecs.CreateEntity(w)
			require.NoError(t, ecs.Add(w, e, component.GrabbableComponent.Kind(), &component.Grabbable{Name: "planet", Body: body}))
			spin := tt.spin
			require.NoError(t, ecs.Add(w, e, component.SpinComponent.Kind(), &spin))

			sched := ecs.NewScheduler(NewSpinSystem())
			sched.Update(w, 0.5)
			sched.Update(w, 0.5)

			assert.InDelta(t, 1, math.Abs(body.Rotation().Dot(tt.want)), 1e-9)
		})
	}
}

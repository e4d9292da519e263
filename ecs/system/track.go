package system

import (
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/ecs/component"
	"go.uber.org/zap"
)

// TrackSystem copies each tracked hand's input for the frame into its
// Transform and grip signal. A failing tracker leaves the pose where it was
// and reads as zero grip.
type TrackSystem struct {
	log *zap.Logger
}

func NewTrackSystem(log *zap.Logger) *TrackSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &TrackSystem{log: log}
}

func (s *TrackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.TrackComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, track *component.Track, t *component.Transform) {
		if track.Tracker == nil {
			track.Grip = component.TrackedGrip{}
			return
		}
		sample, err := track.Tracker.Sample(w.Tick(), track.Elapsed)
		track.Elapsed += w.DeltaTime()
		if err != nil {
			if track.Grip.Err == nil {
				s.log.Debug("track sample failed", zap.Stringer("entity", e), zap.Error(err))
			}
			track.Grip = component.TrackedGrip{Err: err}
			return
		}
		t.Position = sample.Pose.Position
		t.Rotation = sample.Pose.Rotation
		track.Grip = component.TrackedGrip{Value: sample.Grip}
	})
}

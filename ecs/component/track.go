package component

import "github.com/milk9111/grabrig/grab"

// TrackSample is one frame of tracked hand input.
type TrackSample struct {
	Pose grab.Pose
	Grip float64
}

// Tracker produces hand input for a frame. tick counts frames from 1 and
// elapsed is the simulated time in seconds at the start of the frame.
type Tracker interface {
	Sample(tick uint64, elapsed float64) (TrackSample, error)
}

// TrackedGrip is the grip of the latest track sample.
type TrackedGrip struct {
	Value float64
	Err   error
}

func (g *TrackedGrip) Grip() (float64, error) {
	if g == nil {
		return 0, grab.ErrDeviceUnavailable
	}
	return g.Value, g.Err
}

// Track drives a hand from a Tracker.
type Track struct {
	Tracker Tracker
	Grip    TrackedGrip
	Elapsed float64
}

var TrackComponent = NewComponent[Track]()

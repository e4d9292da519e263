package scenario

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/grab"
)

var ErrNoKeyframes = errors.New("scenario: track has no keyframes")

// Keyframe is a hand pose and grip at a frame. Frame 0 is the first tick.
type Keyframe struct {
	Frame uint64
	Pose  grab.Pose
	Grip  float64
}

// KeyframeTrack plays back keyframes. Position is interpolated linearly,
// rotation spherically, and grip holds its value until the next keyframe.
type KeyframeTrack struct {
	frames []Keyframe
}

func NewKeyframeTrack(frames []Keyframe) (*KeyframeTrack, error) {
	if len(frames) == 0 {
		return nil, ErrNoKeyframes
	}
	sorted := append([]Keyframe(nil), frames...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Frame == sorted[i-1].Frame {
			return nil, fmt.Errorf("scenario: duplicate keyframe at frame %d", sorted[i].Frame)
		}
	}
	return &KeyframeTrack{frames: sorted}, nil
}

func keyframesFromSpec(specs []KeyframeSpec) ([]Keyframe, error) {
	frames := make([]Keyframe, 0, len(specs))
	for _, k := range specs {
		pos, err := vec3(k.Position)
		if err != nil {
			return nil, err
		}
		rot, err := euler(k.Euler)
		if err != nil {
			return nil, err
		}
		frames = append(frames, Keyframe{Frame: k.Tick, Pose: grab.PoseAt(pos, rot), Grip: k.Grip})
	}
	return frames, nil
}

func (k *KeyframeTrack) Sample(tick uint64, _ float64) (component.TrackSample, error) {
	frame := uint64(0)
	if tick > 0 {
		frame = tick - 1
	}

	first, last := k.frames[0], k.frames[len(k.frames)-1]
	if frame <= first.Frame {
		return component.TrackSample{Pose: first.Pose, Grip: first.Grip}, nil
	}
	if frame >= last.Frame {
		return component.TrackSample{Pose: last.Pose, Grip: last.Grip}, nil
	}

	i := sort.Search(len(k.frames), func(i int) bool { return k.frames[i].Frame > frame })
	a, b := k.frames[i-1], k.frames[i]
	u := float64(frame-a.Frame) / float64(b.Frame-a.Frame)

	to := b.Pose.Rotation
	if a.Pose.Rotation.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	pose := grab.PoseAt(
		a.Pose.Position.Add(b.Pose.Position.Sub(a.Pose.Position).Mul(u)),
		mgl64.QuatSlerp(a.Pose.Rotation, to, u).Normalize(),
	)
	return component.TrackSample{Pose: pose, Grip: a.Grip}, nil
}

package scenario

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/grab"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoTrack   = errors.New("scenario: hand has no track")
	ErrBadVector = errors.New("scenario: vector needs 3 components")
)

// Spec is a scenario file: a set of bodies and the hands that manipulate
// them.
type Spec struct {
	Name    string     `yaml:"name"`
	Ticks   int        `yaml:"ticks"`
	Gravity *float64   `yaml:"gravity"`
	FloorY  *float64   `yaml:"floor_y"`
	Bodies  []BodySpec `yaml:"bodies"`
	Hands   []HandSpec `yaml:"hands"`
}

type BodySpec struct {
	Name       string    `yaml:"name"`
	Position   []float64 `yaml:"position"`
	Euler      []float64 `yaml:"euler"`
	Radius     float64   `yaml:"radius"`
	Mass       float64   `yaml:"mass"`
	Friction   float64   `yaml:"friction"`
	Elasticity float64   `yaml:"elasticity"`
	Gravity    *bool     `yaml:"gravity"`
	Spin       float64   `yaml:"spin"`
	SpinAxis   []float64 `yaml:"spin_axis"`
}

// HandSpec describes one hand. Config holds grab settings that override
// the process-wide hand defaults field by field.
type HandSpec struct {
	Name          string    `yaml:"name"`
	TriggerRadius float64   `yaml:"trigger_radius"`
	Config        yaml.Node `yaml:"config"`
	Track         TrackSpec `yaml:"track"`
}

type TrackSpec struct {
	Keyframes []KeyframeSpec `yaml:"keyframes"`
	Script    string         `yaml:"script"`
}

type KeyframeSpec struct {
	Tick     uint64    `yaml:"tick"`
	Position []float64 `yaml:"position"`
	Euler    []float64 `yaml:"euler"`
	Grip     float64   `yaml:"grip"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("scenario: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("scenario: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// LoadScenario loads and validates a scenario by file name.
func LoadScenario(filename string) (*Spec, error) {
	spec, err := LoadSpec[Spec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", filename, err)
	}
	return &spec, nil
}

// Validate checks vectors and tracks.
func (s *Spec) Validate() error {
	for _, b := range s.Bodies {
		if _, err := vec3(b.Position); err != nil {
			return fmt.Errorf("body %q position: %w", b.Name, err)
		}
		if _, err := euler(b.Euler); err != nil {
			return fmt.Errorf("body %q euler: %w", b.Name, err)
		}
		if _, err := vec3(b.SpinAxis); err != nil {
			return fmt.Errorf("body %q spin_axis: %w", b.Name, err)
		}
	}
	for _, h := range s.Hands {
		if len(h.Track.Keyframes) == 0 && h.Track.Script == "" {
			return fmt.Errorf("hand %q: %w", h.Name, ErrNoTrack)
		}
		for _, k := range h.Track.Keyframes {
			if _, err := vec3(k.Position); err != nil {
				return fmt.Errorf("hand %q keyframe %d position: %w", h.Name, k.Tick, err)
			}
			if _, err := euler(k.Euler); err != nil {
				return fmt.Errorf("hand %q keyframe %d euler: %w", h.Name, k.Tick, err)
			}
		}
		if _, err := h.HandConfig(grab.DefaultConfig()); err != nil {
			return err
		}
	}
	return nil
}

// HandConfig overlays the hand's config block on base.
func (h HandSpec) HandConfig(base grab.Config) (grab.Config, error) {
	cfg := base
	if h.Config.Kind == 0 {
		return cfg.Normalize(), nil
	}
	if err := h.Config.Decode(&cfg); err != nil {
		return base, fmt.Errorf("hand %q config: %w", h.Name, err)
	}
	if !cfg.ReleasePolicy.Valid() {
		return base, fmt.Errorf("hand %q config: unknown release policy %q", h.Name, cfg.ReleasePolicy)
	}
	return cfg.Normalize(), nil
}

// vec3 reads an optional [x, y, z] list.
func vec3(v []float64) (mgl64.Vec3, error) {
	switch len(v) {
	case 0:
		return mgl64.Vec3{}, nil
	case 3:
		return mgl64.Vec3{v[0], v[1], v[2]}, nil
	default:
		return mgl64.Vec3{}, fmt.Errorf("%w, got %d", ErrBadVector, len(v))
	}
}

// euler reads an optional [pitch, yaw, roll] list in degrees.
func euler(v []float64) (mgl64.Quat, error) {
	angles, err := vec3(v)
	if err != nil {
		return mgl64.QuatIdent(), err
	}
	return Euler(angles[0], angles[1], angles[2]), nil
}

// Euler builds a rotation from degrees about X (pitch), Y (yaw) and Z
// (roll), applied roll first and yaw last.
func Euler(pitch, yaw, roll float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(pitch), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(yaw), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(roll), mgl64.Vec3{0, 0, 1})
	return qy.Mul(qx).Mul(qz).Normalize()
}

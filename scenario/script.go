package scenario

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/grab"
)

// ScriptTrack computes hand input with a tengo script. Each frame the
// script sees `tick` (frames since start, from 0) and `t` (seconds) and
// sets `x`, `y`, `z`, `pitch`, `yaw`, `roll` (degrees) and `grip`.
// Outputs keep their previous value when the script does not assign them.
type ScriptTrack struct {
	name     string
	compiled *tengo.Compiled
}

var scriptOutputs = []string{"x", "y", "z", "pitch", "yaw", "roll", "grip"}

func NewScriptTrack(name string, src []byte) (*ScriptTrack, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("t", 0.0)
	for _, out := range scriptOutputs {
		_ = script.Add(out, 0.0)
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile %s: %w", name, err)
	}
	return &ScriptTrack{name: name, compiled: compiled}, nil
}

// LoadScriptTrack compiles a script from the scenario scripts directory.
func LoadScriptTrack(name string) (*ScriptTrack, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load script %s: %w", name, err)
	}
	return NewScriptTrack(name, src)
}

// Sample runs the script for one frame. Runtime faults, including ones the
// VM raises as panics, are returned as errors.
func (s *ScriptTrack) Sample(tick uint64, elapsed float64) (sample component.TrackSample, err error) {
	defer func() {
		if r := recover(); r != nil {
			sample, err = component.TrackSample{}, fmt.Errorf("scenario: run %s: %v", s.name, r)
		}
	}()

	frame := int64(0)
	if tick > 0 {
		frame = int64(tick - 1)
	}
	if err := s.compiled.Set("tick", frame); err != nil {
		return component.TrackSample{}, err
	}
	if err := s.compiled.Set("t", elapsed); err != nil {
		return component.TrackSample{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return component.TrackSample{}, fmt.Errorf("scenario: run %s: %w", s.name, err)
	}

	get := func(name string) float64 { return s.compiled.Get(name).Float() }
	pose := grab.PoseAt(
		mgl64.Vec3{get("x"), get("y"), get("z")},
		Euler(get("pitch"), get("yaw"), get("roll")),
	)
	return component.TrackSample{Pose: pose, Grip: get("grip")}, nil
}

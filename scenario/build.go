package scenario

import (
	"fmt"

	"github.com/milk9111/grabrig/config"
	"github.com/milk9111/grabrig/ecs/component"
	"github.com/milk9111/grabrig/physics"
	"github.com/milk9111/grabrig/scene"
	"go.uber.org/zap"
)

// Build creates a scene from spec using cfg for anything the scenario
// leaves unset.
func Build(spec *Spec, cfg config.Config, log *zap.Logger) (*scene.Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	gravity := cfg.Gravity
	if spec.Gravity != nil {
		gravity = *spec.Gravity
	}
	s := scene.New(scene.Options{Gravity: gravity, FloorY: spec.FloorY, Logger: log})

	for _, b := range spec.Bodies {
		pos, err := vec3(b.Position)
		if err != nil {
			return nil, fmt.Errorf("scenario: body %q: %w", b.Name, err)
		}
		rot, err := euler(b.Euler)
		if err != nil {
			return nil, fmt.Errorf("scenario: body %q: %w", b.Name, err)
		}
		spinAxis, err := vec3(b.SpinAxis)
		if err != nil {
			return nil, fmt.Errorf("scenario: body %q: %w", b.Name, err)
		}
		_, _, err = s.AddBody(scene.BodyOptions{
			BodySpec: physics.BodySpec{
				Name:       b.Name,
				Position:   pos,
				Rotation:   rot,
				Radius:     b.Radius,
				Mass:       b.Mass,
				Friction:   b.Friction,
				Elasticity: b.Elasticity,
			},
			GravityOff: b.Gravity != nil && !*b.Gravity,
			Spin:       b.Spin,
			SpinAxis:   spinAxis,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, h := range spec.Hands {
		handCfg, err := h.HandConfig(cfg.Hand)
		if err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
		tracker, err := buildTracker(h)
		if err != nil {
			return nil, fmt.Errorf("scenario: hand %q: %w", h.Name, err)
		}
		if _, _, err := s.AddHand(scene.HandOptions{
			Name:          h.Name,
			Config:        handCfg,
			TriggerRadius: h.TriggerRadius,
			Tracker:       tracker,
		}); err != nil {
			return nil, err
		}
	}

	log.Info("scenario built",
		zap.String("scenario", spec.Name),
		zap.Int("bodies", len(spec.Bodies)),
		zap.Int("hands", len(spec.Hands)),
		zap.Float64("gravity", gravity),
	)
	return s, nil
}

func buildTracker(h HandSpec) (component.Tracker, error) {
	if h.Track.Script != "" {
		return LoadScriptTrack(h.Track.Script)
	}
	if len(h.Track.Keyframes) == 0 {
		return nil, ErrNoTrack
	}
	frames, err := keyframesFromSpec(h.Track.Keyframes)
	if err != nil {
		return nil, err
	}
	return NewKeyframeTrack(frames)
}

// Reconfigure pushes the hand settings of an edited scenario into a running
// scene. Hands missing from the scene are skipped; bodies and tracks are not
// rebuilt.
func Reconfigure(s *scene.Scene, spec *Spec, cfg config.Config) error {
	for _, h := range spec.Hands {
		if _, ok := s.Hand(h.Name); !ok {
			continue
		}
		handCfg, err := h.HandConfig(cfg.Hand)
		if err != nil {
			return fmt.Errorf("scenario: %w", err)
		}
		if err := s.Reconfigure(h.Name, handCfg); err != nil {
			return err
		}
	}
	return nil
}

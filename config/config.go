package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/grabrig/grab"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. GRABRIG_TICK_RATE.
const EnvPrefix = "GRABRIG_"

var (
	ErrTickRate      = errors.New("config: tick_rate must be positive")
	ErrGripThreshold = errors.New("config: grip_threshold must be within (0, 1)")
	ErrReleasePolicy = errors.New("config: unknown release_policy")
	ErrLogLevel      = errors.New("config: unknown log_level")
)

// Config is the runtime configuration of the simulator.
type Config struct {
	TickRate int     `yaml:"tick_rate" env:"TICK_RATE"`
	Gravity  float64 `yaml:"gravity" env:"GRAVITY"`
	LogLevel string  `yaml:"log_level" env:"LOG_LEVEL"`
	Scenario string  `yaml:"scenario" env:"SCENARIO"`

	// Hand holds the defaults for every hand; scenario files override them
	// per hand.
	Hand grab.Config `yaml:"hand"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TickRate: 90,
		Gravity:  -9.81,
		LogLevel: "info",
		Scenario: "two_hand_carry.yaml",
		Hand:     grab.DefaultConfig(),
	}
}

// Load reads path (if not empty) over the defaults, then applies
// environment overrides, then validates.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Hand = cfg.Hand.Normalize()
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return ErrTickRate
	}
	if !(c.Hand.GripThreshold > 0 && c.Hand.GripThreshold < 1) {
		return fmt.Errorf("%w: got %v", ErrGripThreshold, c.Hand.GripThreshold)
	}
	if !c.Hand.ReleasePolicy.Valid() {
		return fmt.Errorf("%w: %q", ErrReleasePolicy, c.Hand.ReleasePolicy)
	}
	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: %q", ErrLogLevel, c.LogLevel)
		}
	}
	return nil
}

// TickDuration returns the fixed time step.
func (c Config) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

package grab

// DefaultGripThreshold is the grip level a signal must cross to grab or
// release.
const DefaultGripThreshold = 0.5

// ReleasePolicy selects what happens to a body's physics when its last
// holder lets go.
type ReleasePolicy string

const (
	// ReleaseFreeze keeps gravity off and zeroes linear and angular
	// velocity, leaving the body floating where it was dropped.
	ReleaseFreeze ReleasePolicy = "freeze"
	// ReleaseRestoreGravity turns gravity back on and keeps the body's
	// velocity so it can be thrown.
	ReleaseRestoreGravity ReleasePolicy = "restore_gravity"
)

// Valid reports whether p names a known policy. The empty policy is valid
// and means ReleaseFreeze.
func (p ReleasePolicy) Valid() bool {
	switch p {
	case "", ReleaseFreeze, ReleaseRestoreGravity:
		return true
	}
	return false
}

// SourceKind selects where a manipulator's grip signal comes from.
type SourceKind string

const (
	SourceNative SourceKind = "native"
	SourceLegacy SourceKind = "legacy"
)

// Config is the per-manipulator configuration.
type Config struct {
	GripThreshold  float64       `yaml:"grip_threshold" env:"GRIP_THRESHOLD"`
	DoubleRotation bool          `yaml:"double_rotation" env:"DOUBLE_ROTATION"`
	ReleasePolicy  ReleasePolicy `yaml:"release_policy" env:"RELEASE_POLICY"`
	Source         SourceKind    `yaml:"source" env:"SOURCE"`
	LegacyAxis     string        `yaml:"legacy_axis" env:"LEGACY_AXIS"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		GripThreshold: DefaultGripThreshold,
		ReleasePolicy: ReleaseFreeze,
		Source:        SourceNative,
	}
}

// Normalize fills unset or out-of-range fields with their defaults.
func (c Config) Normalize() Config {
	if !(c.GripThreshold > 0 && c.GripThreshold < 1) {
		c.GripThreshold = DefaultGripThreshold
	}
	if c.ReleasePolicy == "" || !c.ReleasePolicy.Valid() {
		c.ReleasePolicy = ReleaseFreeze
	}
	if c.Source != SourceLegacy {
		c.Source = SourceNative
	}
	return c
}

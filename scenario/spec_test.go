package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/grabrig/grab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedScenariosValidate(t *testing.T) {
	entries, err := ScenariosFS.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			spec, err := LoadScenario(entry.Name())
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Name)
			assert.NotEmpty(t, spec.Hands)
		})
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	prev := Dir
	Dir = t.TempDir()
	t.Cleanup(func() { Dir = prev })

	require.NoError(t, os.WriteFile(filepath.Join(Dir, "wrist_turn.yaml"), []byte("name: edited\n"), 0o644))

	spec, err := LoadSpec[Spec]("wrist_turn.yaml")
	require.NoError(t, err)
	assert.Equal(t, "edited", spec.Name)

	spec, err = LoadSpec[Spec]("orbit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "orbit", spec.Name, "falls back to the embedded copy")

	_, err = LoadSpec[Spec]("missing.yaml")
	assert.Error(t, err)
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "orbit.yaml", cleanScenarioPath("scenario/orbit.yaml"))
	assert.Equal(t, "scripts/orbit.tengo", cleanScriptPath("orbit.tengo"))
	assert.Equal(t, "scripts/orbit.tengo", cleanScriptPath("scripts/orbit.tengo"))
	assert.Equal(t, "scripts/orbit.tengo", cleanScriptPath("scenario/scripts/orbit.tengo"))
	assert.Empty(t, cleanScriptPath(""))
}

func TestHandConfigOverlay(t *testing.T) {
	var h HandSpec
	require.NoError(t, yaml.Unmarshal([]byte(`
name: right
config:
  double_rotation: true
  grip_threshold: 0.3
`), &h))

	base := grab.DefaultConfig()
	base.ReleasePolicy = grab.ReleaseRestoreGravity

	cfg, err := h.HandConfig(base)
	require.NoError(t, err)
	assert.True(t, cfg.DoubleRotation)
	assert.Equal(t, 0.3, cfg.GripThreshold)
	assert.Equal(t, grab.ReleaseRestoreGravity, cfg.ReleasePolicy, "unset fields keep the base value")

	cfg, err = HandSpec{Name: "left"}.HandConfig(base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "ok",
			doc: `
bodies: [{name: a, position: [0, 1, 0]}]
hands: [{name: r, track: {script: orbit.tengo}}]
`,
		},
		{
			name:    "short body vector",
			doc:     `bodies: [{name: a, position: [0, 1]}]`,
			wantErr: ErrBadVector,
		},
		{
			name:    "short spin axis",
			doc:     `bodies: [{name: a, spin: 10, spin_axis: [1]}]`,
			wantErr: ErrBadVector,
		},
		{
			name:    "no track",
			doc:     `hands: [{name: r}]`,
			wantErr: ErrNoTrack,
		},
		{
			name:    "bad keyframe euler",
			doc:     `hands: [{name: r, track: {keyframes: [{tick: 0, euler: [1, 2, 3, 4]}]}}]`,
			wantErr: ErrBadVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec Spec
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &spec))
			err := spec.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var spec Spec
	require.NoError(t, yaml.Unmarshal([]byte(`hands: [{name: r, config: {release_policy: bounce}, track: {script: x}}]`), &spec))
	assert.Error(t, spec.Validate())
}

func TestEuler(t *testing.T) {
	q := Euler(0, 90, 0)
	v := q.Rotate(mgl64.Vec3{0, 0, 1})
	assert.InDelta(t, 1, v.X(), 1e-9)
	assert.InDelta(t, 0, v.Z(), 1e-9)

	q = Euler(90, 0, 0)
	v = q.Rotate(mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 1, v.Z(), 1e-9)

	assert.InDelta(t, 1, Euler(10, 20, 30).Len(), 1e-12)
}

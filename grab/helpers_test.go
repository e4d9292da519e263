package grab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type testBody struct {
	pos     mgl64.Vec3
	rot     mgl64.Quat
	gravity bool
	lin     mgl64.Vec3
	ang     mgl64.Vec3
}

func newTestBody(pos mgl64.Vec3) *testBody {
	return &testBody{pos: pos, rot: mgl64.QuatIdent(), gravity: true}
}

func (b *testBody) Position() mgl64.Vec3            { return b.pos }
func (b *testBody) SetPosition(p mgl64.Vec3)        { b.pos = p }
func (b *testBody) Rotation() mgl64.Quat            { return b.rot }
func (b *testBody) SetRotation(q mgl64.Quat)        { b.rot = q }
func (b *testBody) GravityEnabled() bool            { return b.gravity }
func (b *testBody) SetGravityEnabled(on bool)       { b.gravity = on }
func (b *testBody) LinearVelocity() mgl64.Vec3      { return b.lin }
func (b *testBody) SetLinearVelocity(v mgl64.Vec3)  { b.lin = v }
func (b *testBody) AngularVelocity() mgl64.Vec3     { return b.ang }
func (b *testBody) SetAngularVelocity(v mgl64.Vec3) { b.ang = v }

const eps = 1e-9

func assertVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], eps, "component %d: want %v got %v", i, want, got)
	}
}

func assertQuatNear(t *testing.T, want, got mgl64.Quat) {
	t.Helper()
	// q and -q are the same rotation
	if want.Dot(got) < 0 {
		got = mgl64.Quat{W: -got.W, V: got.V.Mul(-1)}
	}
	assert.InDelta(t, want.W, got.W, eps, "w: want %v got %v", want, got)
	assertVecNear(t, want.V, got.V)
}

func deg(d float64) float64 { return mgl64.DegToRad(d) }

var (
	axisX = mgl64.Vec3{1, 0, 0}
	axisY = mgl64.Vec3{0, 1, 0}
	axisZ = mgl64.Vec3{0, 0, 1}
)

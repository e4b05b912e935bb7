package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMul4Identity(t *testing.T) {
	var a, id, out [16]float32
	Identity(id[:])
	for i := range a {
		a[i] = float32(i + 1)
	}

	Mul4(out[:], id[:], a[:])
	assert.Equal(t, a, out)

	Mul4(out[:], a[:], id[:])
	assert.Equal(t, a, out)
}

func TestMul4InPlace(t *testing.T) {
	var a, b, want [16]float32
	for i := range a {
		a[i] = float32(i)
		b[i] = float32(16 - i)
	}
	Mul4(want[:], a[:], b[:])

	// Writing the result over one of the operands must not corrupt it.
	got := a
	Mul4(got[:], got[:], b[:])
	assert.Equal(t, want, got)
}

func TestOrthographicMapsFrustumCorners(t *testing.T) {
	var m [16]float32
	Orthographic(m[:], -4, 4, -2, 2, 0.1, 100)

	x, y, _ := TransformPoint(m[:], 4, 2, -0.1)
	assert.InDelta(t, 1.0, x, 1e-5)
	assert.InDelta(t, 1.0, y, 1e-5)

	x, y, _ = TransformPoint(m[:], -4, -2, -0.1)
	assert.InDelta(t, -1.0, x, 1e-5)
	assert.InDelta(t, -1.0, y, 1e-5)
}

func TestPerspectiveCenterRay(t *testing.T) {
	var m [16]float32
	Perspective(m[:], 1.0, 16.0/9.0, 0.1, 100)

	// A point straight ahead of the camera projects to NDC center.
	x, y, _ := TransformPoint(m[:], 0, 0, -10)
	assert.InDelta(t, 0.0, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)
}

func TestLookAtTransformsTargetOntoViewAxis(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 6, 4, 6, 0, 1, 0, 0, 1, 0)

	// The look-at target must land on the view-space -Z axis.
	x, y, z := TransformPoint(view[:], 0, 1, 0)
	assert.InDelta(t, 0.0, x, 1e-4)
	assert.InDelta(t, 0.0, y, 1e-4)
	assert.Less(t, z, float32(0))

	// The eye itself maps to the view-space origin.
	x, y, z = TransformPoint(view[:], 6, 4, 6)
	assert.InDelta(t, 0.0, x, 1e-4)
	assert.InDelta(t, 0.0, y, 1e-4)
	assert.InDelta(t, 0.0, z, 1e-4)
}

func TestInvert4RoundTrip(t *testing.T) {
	var view, inv, out, id [16]float32
	LookAt(view[:], 3, 5, -2, 0, 0, 0, 0, 1, 0)
	Identity(id[:])

	assert.True(t, Invert4(inv[:], view[:]))
	Mul4(out[:], view[:], inv[:])
	for i := range out {
		assert.InDelta(t, id[i], out[i], 1e-4)
	}
}

func TestInvert4Singular(t *testing.T) {
	var zero, out [16]float32
	assert.False(t, Invert4(out[:], zero[:]))
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 5, Coalesce(0, 0, 5, 7))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, 0, Coalesce(0, 0))
}

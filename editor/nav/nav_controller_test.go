package nav

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry3d/quarry/editor/node"
)

func newTestCamera() node.CameraNode {
	return node.NewPerspectiveCamera(
		node.WithCameraPosition(0, 0, 10),
		node.WithCameraTarget(0, 0, 0),
	)
}

func TestConstructionPreservesCameraPose(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam)
	defer c.Dispose()

	c.Update(1.0 / 60.0)

	pos := cam.Position()
	assert.InDelta(t, 0.0, pos.X(), 1e-4)
	assert.InDelta(t, 0.0, pos.Y(), 1e-4)
	assert.InDelta(t, 10.0, pos.Z(), 1e-4)
}

func TestOrbitKeepsRadius(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false))
	defer c.Dispose()

	c.Orbit(100, 40)
	c.Update(1.0 / 60.0)

	radius := cam.Position().Sub(c.Target()).Len()
	assert.InDelta(t, 10.0, radius, 1e-3)
}

func TestZoomShrinksRadius(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false))
	defer c.Dispose()

	c.Zoom(2)
	c.Update(1.0 / 60.0)

	radius := cam.Position().Sub(c.Target()).Len()
	assert.Less(t, radius, float32(10.0))
}

func TestZoomClampsToMinRadius(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false), WithRadiusBounds(2, 100))
	defer c.Dispose()

	c.Zoom(1000)
	c.Update(1.0 / 60.0)

	radius := cam.Position().Sub(c.Target()).Len()
	assert.InDelta(t, 2.0, radius, 1e-3)
}

func TestDampingSpreadsInputAcrossFrames(t *testing.T) {
	camA := newTestCamera()
	damped := NewController(camA, WithDamping(true))
	defer damped.Dispose()

	camB := newTestCamera()
	immediate := NewController(camB, WithDamping(false))
	defer immediate.Dispose()

	damped.Orbit(100, 0)
	immediate.Orbit(100, 0)
	damped.Update(1.0 / 60.0)
	immediate.Update(1.0 / 60.0)

	// After one short frame the damped controller has consumed only part of
	// the input, so it lags the immediate one.
	assert.Less(t, camA.Position().Sub(camB.Position()).Len(), float32(10.0))
	assert.NotEqual(t, camB.Position(), camA.Position())

	// Enough frames later both converge on the same pose.
	for i := 0; i < 600; i++ {
		damped.Update(1.0 / 60.0)
	}
	assert.InDelta(t, camB.Position().X(), camA.Position().X(), 1e-2)
	assert.InDelta(t, camB.Position().Z(), camA.Position().Z(), 1e-2)
}

func TestDisabledControllerIgnoresInput(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false))
	defer c.Dispose()

	before := cam.Position()
	c.SetEnabled(false)
	c.Orbit(100, 100)
	c.Zoom(5)
	c.Pan(50, 50)
	c.Update(1.0 / 60.0)

	assert.Equal(t, before, cam.Position())
}

func TestDisableDropsPendingDrift(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(true))
	defer c.Dispose()

	c.Orbit(500, 0)
	c.SetEnabled(false)
	before := cam.Position()
	c.Update(1.0 / 60.0)

	// Pending velocity was cleared on disable, so nothing moves.
	assert.InDelta(t, before.X(), cam.Position().X(), 1e-4)
	assert.InDelta(t, before.Z(), cam.Position().Z(), 1e-4)
}

func TestSetTargetReaimsCamera(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam)
	defer c.Dispose()

	c.SetTarget(mgl32.Vec3{0, 1, 0})

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Target())
}

func TestSyncAdoptsExternallyWrittenPose(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false))
	defer c.Dispose()

	// Something outside the controller repositions the camera.
	cam.SetPosition(mgl32.Vec3{5, 5, 5})
	c.Sync()
	c.Update(1.0 / 60.0)

	// The controller must adopt the new pose instead of snapping back.
	pos := cam.Position()
	assert.InDelta(t, 5.0, pos.X(), 1e-2)
	assert.InDelta(t, 5.0, pos.Y(), 1e-2)
	assert.InDelta(t, 5.0, pos.Z(), 1e-2)
}

func TestSyncHoldsPoseAtElevationPole(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false), WithTarget(0, 1, 0))
	defer c.Dispose()

	// A top-down pose sits at the very edge of the elevation band.
	cam.SetPosition(mgl32.Vec3{0, 10, 0})
	cam.LookAt(mgl32.Vec3{0, 1, 0})
	c.Sync()

	for i := 0; i < 10; i++ {
		c.Update(1.0 / 60.0)
	}

	// The pose holds frame after frame instead of sliding off the pole.
	pos := cam.Position()
	assert.InDelta(t, 0.0, pos.X(), 1e-3)
	assert.InDelta(t, 10.0, pos.Y(), 1e-3)
	assert.InDelta(t, 0.0, pos.Z(), 1e-3)

	// Orbit input still pulls the elevation back inside the band.
	c.Orbit(0, -200)
	c.Update(1.0 / 60.0)
	assert.Less(t, cam.Position().Y(), float32(10.0))
}

func TestPanMovesTargetAndCameraTogether(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false))
	defer c.Dispose()

	before := cam.Position()
	c.Pan(100, 0)
	c.Update(1.0 / 60.0)

	offset := cam.Position().Sub(before)
	require.Greater(t, offset.Len(), float32(0))
	// Orbit relationship preserved: radius unchanged.
	radius := cam.Position().Sub(c.Target()).Len()
	assert.InDelta(t, 10.0, radius, 1e-3)
}

func TestDisposedControllerIsInert(t *testing.T) {
	cam := newTestCamera()
	c := NewController(cam, WithDamping(false))

	before := cam.Position()
	c.Dispose()
	c.Orbit(100, 0)
	c.Update(1.0 / 60.0)
	c.Sync()

	assert.Equal(t, before, cam.Position())
}

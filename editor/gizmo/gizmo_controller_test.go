package gizmo

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry3d/quarry/common"
	"github.com/quarry3d/quarry/editor/node"
)

func newTestGizmo(options ...ControllerBuilderOption) (Controller, node.Node) {
	cam := node.NewPerspectiveCamera(node.WithCameraPosition(0, 0, 10))
	target := node.NewNode(node.WithName("box"))
	g := NewController(cam, options...)
	g.Attach(target)
	return g, target
}

// rayThrough builds a ray travelling along -Z that passes through the given
// world point.
func rayThrough(x, y float32) common.Ray {
	return common.NewRay(mgl32.Vec3{x, y, 5}, mgl32.Vec3{0, 0, -1})
}

func TestBeginDragDetachedReturnsFalse(t *testing.T) {
	cam := node.NewPerspectiveCamera()
	g := NewController(cam)
	defer g.Dispose()

	assert.False(t, g.BeginDrag(rayThrough(1, 0)))
	assert.False(t, g.Dragging())
}

func TestBeginDragHitsAxisHandle(t *testing.T) {
	g, _ := newTestGizmo()
	defer g.Dispose()

	started := false
	g.SetStartCallback(func() { started = true })

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	assert.True(t, g.Dragging())
	assert.True(t, started)
}

func TestBeginDragMissReturnsFalse(t *testing.T) {
	g, _ := newTestGizmo()
	defer g.Dispose()

	started := false
	g.SetStartCallback(func() { started = true })

	assert.False(t, g.BeginDrag(rayThrough(5, 5)))
	assert.False(t, g.Dragging())
	assert.False(t, started)
}

func TestTranslateDragMovesNodeAlongAxis(t *testing.T) {
	g, target := newTestGizmo()
	defer g.Dispose()

	changes := 0
	g.SetChangeCallback(func() { changes++ })

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	g.UpdateDrag(rayThrough(1.5, 0))

	pos := target.Position()
	assert.InDelta(t, 0.5, pos.X(), 1e-4)
	assert.InDelta(t, 0.0, pos.Y(), 1e-4)
	assert.InDelta(t, 0.0, pos.Z(), 1e-4)
	assert.Equal(t, 1, changes)
}

func TestTranslateDragConstrainedToGrabbedAxis(t *testing.T) {
	g, target := newTestGizmo()
	defer g.Dispose()

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	// Pointer wanders off-axis; only the X component may move.
	g.UpdateDrag(rayThrough(2, 3))

	pos := target.Position()
	assert.InDelta(t, 0.0, pos.Y(), 1e-4)
	assert.InDelta(t, 0.0, pos.Z(), 1e-4)
}

func TestRotateDragSpinsAroundRingAxis(t *testing.T) {
	g, target := newTestGizmo(WithMode(ModeRotate))
	defer g.Dispose()

	// Grab the Y ring where it crosses the +X axis, then sweep the pointer
	// to the +Z crossing: a quarter turn.
	grab := common.NewRay(mgl32.Vec3{1.6, 5, 0}, mgl32.Vec3{0, -1, 0})
	require.True(t, g.BeginDrag(grab))

	sweep := common.NewRay(mgl32.Vec3{0, 5, 1.6}, mgl32.Vec3{0, -1, 0})
	g.UpdateDrag(sweep)

	rot := target.Rotation()
	assert.InDelta(t, math.Pi/2, math.Abs(float64(rot.Y())), 1e-3)
	assert.InDelta(t, 0.0, rot.X(), 1e-4)
	assert.InDelta(t, 0.0, rot.Z(), 1e-4)
}

func TestScaleDragStretchesAlongAxis(t *testing.T) {
	g, target := newTestGizmo(WithMode(ModeScale))
	defer g.Dispose()

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	g.UpdateDrag(rayThrough(2, 0))

	scale := target.Scale()
	assert.Greater(t, scale.X(), float32(1.0))
	assert.InDelta(t, 1.0, scale.Y(), 1e-4)
	assert.InDelta(t, 1.0, scale.Z(), 1e-4)
}

func TestScaleNeverCollapsesToZero(t *testing.T) {
	g, target := newTestGizmo(WithMode(ModeScale))
	defer g.Dispose()

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	// Drag hard in the negative direction.
	g.UpdateDrag(common.NewRay(mgl32.Vec3{-50, 0, 5}, mgl32.Vec3{0, 0, -1}))

	assert.GreaterOrEqual(t, target.Scale().X(), float32(0.01))
}

func TestSetModeIgnoredMidDrag(t *testing.T) {
	g, _ := newTestGizmo()
	defer g.Dispose()

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	g.SetMode(ModeRotate)
	assert.Equal(t, ModeTranslate, g.Mode())

	g.EndDrag()
	g.SetMode(ModeRotate)
	assert.Equal(t, ModeRotate, g.Mode())
}

func TestEndDragFiresEndHookOnce(t *testing.T) {
	g, _ := newTestGizmo()
	defer g.Dispose()

	ends := 0
	g.SetEndCallback(func() { ends++ })

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	g.EndDrag()
	g.EndDrag()

	assert.Equal(t, 1, ends)
	assert.False(t, g.Dragging())
}

func TestDetachMidDragStopsManipulation(t *testing.T) {
	g, target := newTestGizmo()
	defer g.Dispose()

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	g.Detach()

	before := target.Position()
	g.UpdateDrag(rayThrough(2, 0))

	assert.False(t, g.Dragging())
	assert.Equal(t, before, target.Position())
	assert.Nil(t, g.Attached())
}

func TestVisualNodeTracksAttachment(t *testing.T) {
	g, target := newTestGizmo()
	defer g.Dispose()

	visual := g.VisualNode()
	require.NotNil(t, visual)
	assert.True(t, visual.Helper())
	assert.True(t, visual.Visible())
	assert.Equal(t, target.Position(), visual.Position())

	require.True(t, g.BeginDrag(rayThrough(1, 0)))
	g.UpdateDrag(rayThrough(1.5, 0))
	assert.Equal(t, target.Position(), visual.Position())

	g.Detach()
	assert.False(t, visual.Visible())
}

func TestSetCameraRepointsWithoutReconstruction(t *testing.T) {
	g, _ := newTestGizmo()
	defer g.Dispose()

	other := node.NewOrthographicCamera()
	g.SetCamera(other)
	assert.Same(t, other, g.Camera())
}

func TestDisposedGizmoIsInert(t *testing.T) {
	g, target := newTestGizmo()
	g.Dispose()

	before := target.Position()
	assert.False(t, g.BeginDrag(rayThrough(1, 0)))
	g.UpdateDrag(rayThrough(2, 0))
	g.EndDrag()

	assert.Equal(t, before, target.Position())
	assert.Nil(t, g.Attached())
}

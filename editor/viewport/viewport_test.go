package viewport

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry3d/quarry/editor/capability"
	"github.com/quarry3d/quarry/editor/command"
	"github.com/quarry3d/quarry/editor/event"
	"github.com/quarry3d/quarry/editor/node"
	"github.com/quarry3d/quarry/editor/scenegraph"
)

// fakeSurface is an in-memory Surface standing in for the WebGPU backend.
type fakeSurface struct {
	mu     sync.Mutex
	width  int
	height int

	renderCount   int
	snapshotCount int
	snapshotErr   error

	// helperVisibleAtSnapshot records whether any visible helper node was
	// present in the tree at Snapshot time.
	helperVisibleAtSnapshot bool
}

func newFakeSurface(width, height int) *fakeSurface {
	return &fakeSurface{width: width, height: height}
}

func (f *fakeSurface) Width() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width
}

func (f *fakeSurface) Height() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

func (f *fakeSurface) Resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width = width
	f.height = height
}

func (f *fakeSurface) Render(root node.Node, cam node.CameraNode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renderCount++
	return nil
}

func (f *fakeSurface) Snapshot(root node.Node, cam node.CameraNode) (image.Image, error) {
	f.mu.Lock()
	f.snapshotCount++
	f.helperVisibleAtSnapshot = anyVisibleHelper(root)
	err := f.snapshotErr
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
}

func (f *fakeSurface) Dispose() {}

func anyVisibleHelper(n node.Node) bool {
	if n == nil {
		return false
	}
	if n.Helper() && n.Visible() {
		return true
	}
	for _, child := range n.Children() {
		if anyVisibleHelper(child) {
			return true
		}
	}
	return false
}

// recorder collects emitted events in order.
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) listen(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) last() (event.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return event.Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// blockingResolver only resolves when its context is cancelled, simulating
// slow capability loading racing a teardown.
type blockingResolver struct{}

func (blockingResolver) Resolve(ctx context.Context) (capability.Module, error) {
	<-ctx.Done()
	return capability.Module{}, ctx.Err()
}

func testGraph() scenegraph.SceneGraph {
	persp := node.NewPerspectiveCamera(
		node.WithCameraName("main-camera"),
		node.WithCameraPosition(0, 0, 10),
		node.WithCameraTarget(0, 0, 0),
	)
	ortho := node.NewOrthographicCamera(
		node.WithCameraName("plan-camera"),
		node.WithCameraPosition(0, 10, 0),
		node.WithCameraTarget(0, 0, 0),
		node.WithOrthoFrustum(-8, 8, -8, 8),
	)
	box := node.NewNode(node.WithName("box"), node.WithHalfExtents(1, 1, 1))
	grid := node.NewNode(node.WithName("grid"), node.WithHelper(), node.WithHalfExtents(50, 0.01, 50))

	return scenegraph.NewSceneGraph(
		scenegraph.WithObject(&scenegraph.SceneObject{
			ID:   "cam-main",
			Name: "Main Camera",
			Node: persp,
			Tags: []string{DefaultCameraTag, "type:camera"},
		}),
		scenegraph.WithObject(&scenegraph.SceneObject{
			ID:   "cam-plan",
			Name: "Plan Camera",
			Node: ortho,
			Tags: []string{"camera:plan", "type:camera"},
		}),
		scenegraph.WithObject(&scenegraph.SceneObject{
			ID:   "box1",
			Name: "Box",
			Node: box,
			Tags: []string{"type:prop"},
		}),
		scenegraph.WithObject(&scenegraph.SceneObject{
			ID:   "grid",
			Name: "Grid",
			Node: grid,
			Tags: []string{"type:helper"},
		}),
	)
}

func newReadyViewport(t *testing.T, options ...ViewportBuilderOption) (Viewport, *fakeSurface, scenegraph.SceneGraph, *recorder) {
	t.Helper()

	graph := testGraph()
	surface := newFakeSurface(800, 600)
	rec := &recorder{}
	events := event.NewBus()
	events.Subscribe(rec.listen)

	base := []ViewportBuilderOption{
		WithEventBus(events),
		WithFrameInterval(5 * time.Millisecond),
	}
	v := NewViewport(graph, surface, append(base, options...)...)
	t.Cleanup(v.Dispose)

	v.Start()
	select {
	case <-v.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("viewport did not become ready")
	}
	return v, surface, graph, rec
}

func TestInitResolvesDefaultCameraAndControllers(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	cam := v.ActiveCamera()
	require.NotNil(t, cam)
	assert.Equal(t, "main-camera", cam.Name())
	assert.NotNil(t, v.Nav())
	assert.NotNil(t, v.Gizmo())
}

func TestRenderLoopDrawsFrames(t *testing.T) {
	_, surface, _, _ := newReadyViewport(t)

	assert.Eventually(t, func() bool {
		surface.mu.Lock()
		defer surface.mu.Unlock()
		return surface.renderCount > 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDisposeDuringInitLeavesNoControllers(t *testing.T) {
	graph := testGraph()
	surface := newFakeSurface(800, 600)
	v := NewViewport(graph, surface, WithResolver(blockingResolver{}))

	v.Start()
	v.Dispose()

	select {
	case <-v.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("init did not unwind after dispose")
	}
	assert.Nil(t, v.Nav())
	assert.Nil(t, v.Gizmo())
	assert.Nil(t, v.ActiveCamera())
}

func TestCommandsNoOpBeforeReady(t *testing.T) {
	graph := testGraph()
	surface := newFakeSurface(800, 600)
	rec := &recorder{}
	events := event.NewBus()
	events.Subscribe(rec.listen)

	v := NewViewport(graph, surface,
		WithEventBus(events),
		WithResolver(capability.NewFailingResolver(errors.New("unavailable"))),
	)
	t.Cleanup(v.Dispose)
	v.Start()
	<-v.Ready()

	// Resolution failed, so the viewport stays degraded and commands no-op.
	v.SelectObject("box1")
	v.MoveCameraToPreset("top")
	v.ClearSelection()

	assert.Nil(t, v.Selection())
	assert.Empty(t, rec.kinds())
}

func TestOrthographicResizeKeepsFrustumHeight(t *testing.T) {
	v, _, _, _ := newReadyViewport(t, WithDefaultCameraTag("camera:plan"))

	cam := v.ActiveCamera()
	require.NotNil(t, cam)
	require.Equal(t, node.ProjectionOrthographic, cam.Projection())

	v.Resize(800, 600)
	_, _, bottom, top := cam.Frustum()
	assert.InDelta(t, 8.0, top, 1e-4)
	assert.InDelta(t, -8.0, bottom, 1e-4)

	// Doubling the width must widen the frustum but never change its height.
	v.Resize(1200, 600)
	left, right, bottom, top := cam.Frustum()
	assert.InDelta(t, 8.0, top, 1e-4)
	assert.InDelta(t, -8.0, bottom, 1e-4)
	assert.InDelta(t, -16.0, left, 1e-3)
	assert.InDelta(t, 16.0, right, 1e-3)
}

func TestPointerDownSelectsObjectUnderCursor(t *testing.T) {
	v, _, graph, rec := newReadyViewport(t)

	// The box sits at the origin, dead center of the view.
	v.PointerDown(400, 300)
	v.PointerUp(400, 300)

	sel := v.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, "box1", sel.ID)
	assert.Same(t, graph.ByID("box1"), sel)

	last, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, event.KindSelect, last.Kind)
	assert.Equal(t, "box1", last.Object.ID)
}

func TestPointerDownOnBackgroundClearsSelection(t *testing.T) {
	v, _, _, rec := newReadyViewport(t)

	v.SelectObject("box1")
	require.NotNil(t, v.Selection())

	// Top-left corner: no object, no gizmo handle.
	v.PointerDown(5, 5)
	v.PointerUp(5, 5)

	assert.Nil(t, v.Selection())
	last, ok := rec.last()
	require.True(t, ok)
	assert.Equal(t, event.KindDeselect, last.Kind)
}

func TestHelpersAreNeverPickable(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	// The grid helper covers the whole ground plane under the cursor, but
	// picking must pass through it. The box still wins at center.
	v.PointerDown(400, 300)
	sel := v.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, "box1", sel.ID)
}

func TestSelectableAllowListRestrictsPicking(t *testing.T) {
	v, _, _, _ := newReadyViewport(t, WithSelectable("grid"))

	// The box is under the cursor but not in the allow-list.
	v.PointerDown(400, 300)
	sel := v.Selection()
	require.NotNil(t, sel)
	assert.Equal(t, "grid", sel.ID)
}

func TestGizmoDragDisablesNavigation(t *testing.T) {
	v, _, _, rec := newReadyViewport(t)

	v.SelectObject("box1")
	require.NotNil(t, v.Selection())

	// The +X translate handle of the box projects to roughly this pixel for
	// a camera at (0,0,10) with a 50 degree vertical fov.
	v.PointerDown(464, 300)
	require.True(t, v.Gizmo().Dragging(), "expected pointer to grab the +X handle")
	assert.False(t, v.Nav().Enabled())

	v.PointerMove(500, 300)
	assert.False(t, v.Nav().Enabled())

	v.PointerUp(500, 300)
	assert.False(t, v.Gizmo().Dragging())
	assert.True(t, v.Nav().Enabled())

	kinds := rec.kinds()
	assert.Contains(t, kinds, event.KindTransformStart)
	assert.Contains(t, kinds, event.KindTransformChange)
	assert.Contains(t, kinds, event.KindTransformEnd)
}

func TestOrbitGestureIgnoredDuringGizmoDrag(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	v.SelectObject("box1")
	v.PointerDown(464, 300)
	require.True(t, v.Gizmo().Dragging())

	camBefore := v.ActiveCamera().Position()
	v.PointerMove(600, 300)
	for i := 0; i < 10; i++ {
		v.Nav().Update(1.0 / 60.0)
	}

	// The camera must not orbit while the gizmo owns the pointer.
	assert.InDelta(t, camBefore.X(), v.ActiveCamera().Position().X(), 1e-3)
	assert.InDelta(t, camBefore.Z(), v.ActiveCamera().Position().Z(), 1e-3)
	v.PointerUp(600, 300)
}

func TestSetTransformModeRoutesToGizmo(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	v.SetTransformMode("rotate")
	assert.Equal(t, "rotate", string(v.Gizmo().Mode()))

	v.SetTransformMode("bogus")
	assert.Equal(t, "rotate", string(v.Gizmo().Mode()))
}

func TestMoveCameraToPreset(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	v.MoveCameraToPreset("top")

	cam := v.ActiveCamera()
	pos := cam.Position()
	assert.InDelta(t, 0.0, pos.X(), 1e-4)
	assert.InDelta(t, 10.0, pos.Y(), 1e-4)
	assert.InDelta(t, 0.0, pos.Z(), 1e-4)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, v.Nav().Target())

	// The nav controller adopted the pose: a damping-free update must not
	// snap the camera elsewhere.
	v.Nav().Update(1.0 / 60.0)
	pos = cam.Position()
	assert.InDelta(t, 10.0, pos.Y(), 1e-2)
}

func TestUnknownPresetIgnored(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	before := v.ActiveCamera().Position()
	v.MoveCameraToPreset("sideways")
	assert.Equal(t, before, v.ActiveCamera().Position())
}

func TestSetCameraByTagSwapsControllers(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	navBefore := v.Nav()
	v.SetCameraByTag("camera:plan")

	cam := v.ActiveCamera()
	require.NotNil(t, cam)
	assert.Equal(t, "plan-camera", cam.Name())
	assert.Equal(t, node.ProjectionOrthographic, cam.Projection())

	assert.NotSame(t, navBefore, v.Nav())
	assert.Same(t, cam, v.Gizmo().Camera())

	// Projection policy applied on switch: frustum matches surface aspect.
	left, right, bottom, top := cam.Frustum()
	aspect := float32(800) / float32(600)
	assert.InDelta(t, 8.0, top, 1e-4)
	assert.InDelta(t, -8.0, bottom, 1e-4)
	assert.InDelta(t, 8.0*aspect, right, 1e-3)
	assert.InDelta(t, -8.0*aspect, left, 1e-3)
}

func TestSetCameraByTagUnknownTagKeepsCamera(t *testing.T) {
	v, _, _, _ := newReadyViewport(t)

	before := v.ActiveCamera()
	v.SetCameraByTag("camera:missing")
	assert.Same(t, before, v.ActiveCamera())

	v.SetCameraByTag("type:prop") // exists but is not a camera
	assert.Same(t, before, v.ActiveCamera())
}

func TestSelectAndClearScenario(t *testing.T) {
	v, _, _, rec := newReadyViewport(t)

	v.SelectObjectByTag("type:prop")
	require.NotNil(t, v.Selection())
	assert.Equal(t, "box1", v.Selection().ID)
	assert.NotNil(t, v.Gizmo().Attached())

	v.ClearSelection()
	assert.Nil(t, v.Selection())
	assert.Nil(t, v.Gizmo().Attached())

	assert.Equal(t, []event.Kind{event.KindSelect, event.KindDeselect}, rec.kinds())

	// Clearing an empty selection emits nothing further.
	v.ClearSelection()
	assert.Equal(t, []event.Kind{event.KindSelect, event.KindDeselect}, rec.kinds())
}

func TestDisposeUnregistersFromCommandBus(t *testing.T) {
	graph := testGraph()
	surface := newFakeSurface(800, 600)
	bus := command.NewBus()

	v := NewViewport(graph, surface, WithCommandBus(bus))
	v.Start()
	<-v.Ready()

	bus.SelectObject("box1")
	require.NotNil(t, v.Selection())

	v.Dispose()
	v.Dispose() // idempotent

	// The slot is empty now; dispatch is a safe no-op.
	bus.SelectObject("box1")
	bus.ClearSelection()
}

func TestDisposeRemovesGizmoVisualFromScene(t *testing.T) {
	graph := testGraph()
	surface := newFakeSurface(800, 600)

	v := NewViewport(graph, surface)
	v.Start()
	<-v.Ready()

	visual := v.Gizmo().VisualNode()
	require.NotNil(t, visual)
	require.Same(t, graph.Root(), visual.Parent())

	v.Dispose()

	// The borrowed graph is clean for its next mount.
	assert.Nil(t, visual.Parent())
	assert.NotContains(t, graph.Root().Children(), visual)
}

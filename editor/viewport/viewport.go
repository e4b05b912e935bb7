// Package viewport is the editor's core: it owns the render loop, the active
// camera, navigation and gizmo controllers, pointer routing, selection state,
// and frame capture. A viewport mounts onto an injected command bus, emits on
// an injected event bus, and tears the whole assembly down together.
package viewport

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quarry3d/quarry/editor/capability"
	"github.com/quarry3d/quarry/editor/command"
	"github.com/quarry3d/quarry/editor/event"
	"github.com/quarry3d/quarry/editor/gizmo"
	"github.com/quarry3d/quarry/editor/nav"
	"github.com/quarry3d/quarry/editor/node"
	"github.com/quarry3d/quarry/editor/render"
	"github.com/quarry3d/quarry/editor/scenegraph"
)

// DefaultCameraTag marks the scene object whose node becomes the initial
// active camera.
const DefaultCameraTag = "camera:default"

// presetTarget is the point every camera preset aims at.
var presetTarget = mgl32.Vec3{0, 1, 0}

// presetPositions are the named camera poses reachable via
// MoveCameraToPreset.
var presetPositions = map[string]mgl32.Vec3{
	"home":  {6, 4, 6},
	"front": {0, 0, 10},
	"side":  {10, 0, 0},
	"top":   {0, 10, 0},
}

// Viewport is a mounted editor view. It implements command.Handler so it can
// be registered on a command bus; every command silently no-ops until
// asynchronous initialization completes.
type Viewport interface {
	command.Handler

	// Start registers on the command bus, kicks off asynchronous
	// initialization, and begins the render loop once initialization
	// succeeds. Calling Start more than once is a no-op.
	Start()

	// Ready returns a channel closed when initialization has finished,
	// successfully or not.
	//
	// Returns:
	//   - <-chan struct{}: closed at the end of initialization
	Ready() <-chan struct{}

	// Resize propagates new pixel dimensions to the surface and reapplies
	// the projection policy to the active camera.
	//
	// Parameters:
	//   - width: new width in pixels
	//   - height: new height in pixels
	Resize(width, height int)

	// PointerDown routes a primary-button press at viewport-local pixel
	// coordinates: gizmo handles win over picking, picking wins over
	// deselection.
	//
	// Parameters:
	//   - x, y: pointer position in pixels from the viewport's top-left
	PointerDown(x, y float32)

	// PointerMove routes pointer motion: an active gizmo drag consumes it,
	// otherwise a held primary button orbits the camera.
	//
	// Parameters:
	//   - x, y: pointer position in pixels from the viewport's top-left
	PointerMove(x, y float32)

	// PointerUp ends a gizmo drag or orbit gesture.
	//
	// Parameters:
	//   - x, y: pointer position in pixels from the viewport's top-left
	PointerUp(x, y float32)

	// Scroll zooms the camera.
	//
	// Parameters:
	//   - delta: scroll amount, positive zooms in
	Scroll(delta float32)

	// ActiveCamera returns the camera frames are rendered through, or nil
	// before initialization.
	//
	// Returns:
	//   - node.CameraNode: the active camera or nil
	ActiveCamera() node.CameraNode

	// Selection returns the currently selected object, or nil.
	//
	// Returns:
	//   - *scenegraph.SceneObject: the selection or nil
	Selection() *scenegraph.SceneObject

	// Nav returns the navigation controller, or nil before initialization.
	//
	// Returns:
	//   - nav.Controller: the navigation controller or nil
	Nav() nav.Controller

	// Gizmo returns the gizmo controller, or nil before initialization.
	//
	// Returns:
	//   - gizmo.Controller: the gizmo controller or nil
	Gizmo() gizmo.Controller

	// CameraState serializes the active camera's pose. Nil when no camera is
	// active.
	//
	// Returns:
	//   - *CameraState: the pose or nil
	CameraState() *CameraState

	// SetCameraState applies a previously captured pose to the active camera
	// and re-syncs navigation. Applying a state read back from CameraState is
	// a no-op within float tolerance.
	//
	// Parameters:
	//   - state: the pose to apply
	SetCameraState(state CameraState)

	// CaptureFrame renders the scene without helper geometry and returns the
	// frame as a PNG data URL paired with the camera pose. Nil when the
	// viewport is not ready or the render fails.
	//
	// Returns:
	//   - *CapturedFrame: the captured frame or nil
	CaptureFrame() *CapturedFrame

	// Dispose unregisters from the command bus, stops the render loop,
	// removes the gizmo visual from the scene, and releases the controllers.
	// The render surface is borrowed, never disposed here: the caller that
	// created it remains responsible for it. Idempotent.
	Dispose()
}

type viewportImpl struct {
	mu *sync.Mutex

	graph    scenegraph.SceneGraph
	surface  render.Surface
	commands command.Bus
	events   event.Bus
	resolver capability.Resolver
	module   capability.Module

	camera   node.CameraNode
	navCtl   nav.Controller
	gizmoCtl gizmo.Controller

	selection     *scenegraph.SceneObject
	selectableIDs []string

	frustums *frustumHeightTable

	width  int
	height int

	navTarget     mgl32.Vec3
	cameraTag     string
	frameInterval time.Duration

	pointerHeld bool
	lastX       float32
	lastY       float32

	readyFlag atomic.Bool
	cancelled atomic.Bool
	ready     chan struct{}
	quit      chan struct{}

	initCtx    context.Context
	initCancel context.CancelFunc

	startOnce   *sync.Once
	disposeOnce *sync.Once
}

var _ Viewport = &viewportImpl{}

// NewViewport creates a viewport over a scene graph and render surface. The
// surface is borrowed, not owned: disposing the viewport leaves it alive for
// the next mount.
//
// Parameters:
//   - graph: the scene to render (must not be nil)
//   - surface: the render target (must not be nil)
//   - options: functional options to configure the viewport
//
// Returns:
//   - Viewport: the newly created viewport
func NewViewport(graph scenegraph.SceneGraph, surface render.Surface, options ...ViewportBuilderOption) Viewport {
	ctx, cancel := context.WithCancel(context.Background())
	v := &viewportImpl{
		mu:       &sync.Mutex{},
		graph:    graph,
		surface:  surface,
		events:   event.NewBus(),
		resolver: capability.DefaultResolver(),

		frustums: newFrustumHeightTable(),

		navTarget:     presetTarget,
		cameraTag:     DefaultCameraTag,
		frameInterval: time.Second / 60,

		ready: make(chan struct{}),
		quit:  make(chan struct{}),

		initCtx:    ctx,
		initCancel: cancel,

		startOnce:   &sync.Once{},
		disposeOnce: &sync.Once{},
	}

	for _, option := range options {
		option(v)
	}

	if surface != nil {
		v.width = surface.Width()
		v.height = surface.Height()
	}
	return v
}

func (v *viewportImpl) Start() {
	v.startOnce.Do(func() {
		if v.commands != nil {
			v.commands.Register(v)
		}
		go v.initialize()
	})
}

func (v *viewportImpl) Ready() <-chan struct{} {
	return v.ready
}

// initialize resolves capabilities and wires up the controllers. Every side
// effect after a blocking step re-checks the cancellation flag so a dispose
// racing initialization never leaves half-wired state behind.
func (v *viewportImpl) initialize() {
	defer close(v.ready)

	module, err := v.resolver.Resolve(v.initCtx)
	if v.cancelled.Load() {
		return
	}
	if err != nil {
		log.Printf("viewport: capability resolution failed: %v", err)
		return
	}

	camera := v.resolveCamera()
	if camera == nil {
		log.Printf("viewport: no camera in scene graph, cannot start")
		return
	}

	v.mu.Lock()
	v.module = module
	v.camera = camera
	v.frustums.applyProjection(camera, v.width, v.height)
	v.frustums.evictMissing(v.graph, camera)

	if module.NewNavController != nil {
		v.navCtl = module.NewNavController(camera,
			nav.WithTarget(v.navTarget.X(), v.navTarget.Y(), v.navTarget.Z()),
			nav.WithDamping(true),
		)
	} else {
		log.Printf("viewport: no navigation controller available, camera is fixed")
	}

	if module.NewGizmoController != nil {
		v.gizmoCtl = module.NewGizmoController(camera)
	} else {
		log.Printf("viewport: no gizmo controller available, transforms disabled")
	}
	gz := v.gizmoCtl
	v.mu.Unlock()

	if v.cancelled.Load() {
		return
	}

	if gz != nil {
		gz.SetStartCallback(func() {
			if nc := v.Nav(); nc != nil {
				nc.SetEnabled(false)
			}
			v.emitTransform(event.KindTransformStart)
		})
		gz.SetChangeCallback(func() {
			v.emitTransform(event.KindTransformChange)
		})
		gz.SetEndCallback(func() {
			if nc := v.Nav(); nc != nil {
				nc.SetEnabled(true)
			}
			v.emitTransform(event.KindTransformEnd)
		})

		if visual := gz.VisualNode(); visual != nil {
			v.graph.Root().AddChild(visual)
		} else {
			log.Printf("viewport: gizmo has no visual node, manipulating without handles")
		}
	}

	if v.cancelled.Load() {
		return
	}

	v.readyFlag.Store(true)
	go v.renderLoop()
}

// resolveCamera picks the initial camera: the tagged default first, then the
// first camera anywhere in the graph.
func (v *viewportImpl) resolveCamera() node.CameraNode {
	if obj := v.graph.FirstByTag(v.cameraTag); obj != nil && obj.Node != nil {
		if cam, ok := node.AsCamera(obj.Node); ok {
			return cam
		}
	}

	var found node.CameraNode
	var walk func(n node.Node)
	walk = func(n node.Node) {
		if n == nil || found != nil {
			return
		}
		if cam, ok := node.AsCamera(n); ok {
			found = cam
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(v.graph.Root())
	return found
}

func (v *viewportImpl) renderLoop() {
	ticker := time.NewTicker(v.frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-v.quit:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			v.renderFrame(dt)
		}
	}
}

// renderFrame draws one frame. A panicking frame is logged and dropped; the
// loop itself keeps running.
func (v *viewportImpl) renderFrame(dt float32) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("viewport: frame panicked: %v", r)
		}
	}()

	if nc := v.Nav(); nc != nil {
		nc.Update(dt)
	}

	v.mu.Lock()
	surface := v.surface
	camera := v.camera
	root := v.graph.Root()
	v.mu.Unlock()

	if surface == nil || camera == nil {
		return
	}
	if err := surface.Render(root, camera); err != nil {
		log.Printf("viewport: frame render failed: %v", err)
	}
}

func (v *viewportImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = width
	v.height = height
	if v.surface != nil {
		v.surface.Resize(width, height)
	}
	if v.camera != nil {
		v.frustums.applyProjection(v.camera, width, height)
	}
}

func (v *viewportImpl) PointerDown(x, y float32) {
	if !v.readyFlag.Load() {
		return
	}

	v.mu.Lock()
	v.pointerHeld = true
	v.lastX = x
	v.lastY = y
	ndcX, ndcY := toNDC(x, y, v.width, v.height)
	camera := v.camera
	gz := v.gizmoCtl
	v.mu.Unlock()

	if camera == nil {
		return
	}
	ray := camera.Ray(ndcX, ndcY)

	if gz != nil && gz.BeginDrag(ray) {
		return
	}

	v.mu.Lock()
	hit := v.pickObjectLocked(ndcX, ndcY)
	v.mu.Unlock()

	if hit != nil {
		v.applySelection(hit)
	} else {
		v.clearSelection()
	}
}

func (v *viewportImpl) PointerMove(x, y float32) {
	if !v.readyFlag.Load() {
		return
	}

	v.mu.Lock()
	dx := x - v.lastX
	dy := y - v.lastY
	held := v.pointerHeld
	v.lastX = x
	v.lastY = y
	ndcX, ndcY := toNDC(x, y, v.width, v.height)
	camera := v.camera
	gz := v.gizmoCtl
	nc := v.navCtl
	v.mu.Unlock()

	if gz != nil && gz.Dragging() {
		if camera != nil {
			gz.UpdateDrag(camera.Ray(ndcX, ndcY))
		}
		return
	}

	if held && nc != nil {
		nc.Orbit(dx, dy)
	}
}

func (v *viewportImpl) PointerUp(x, y float32) {
	v.mu.Lock()
	v.pointerHeld = false
	v.lastX = x
	v.lastY = y
	gz := v.gizmoCtl
	v.mu.Unlock()

	if gz != nil && gz.Dragging() {
		gz.EndDrag()
	}
}

func (v *viewportImpl) Scroll(delta float32) {
	if nc := v.Nav(); nc != nil {
		nc.Zoom(delta)
	}
}

func (v *viewportImpl) ActiveCamera() node.CameraNode {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.camera
}

func (v *viewportImpl) Selection() *scenegraph.SceneObject {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selection
}

func (v *viewportImpl) Nav() nav.Controller {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.navCtl
}

func (v *viewportImpl) Gizmo() gizmo.Controller {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gizmoCtl
}

func (v *viewportImpl) Dispose() {
	v.disposeOnce.Do(func() {
		// Flag first: initialization continuations observe it before they
		// touch any state this teardown is about to release.
		v.cancelled.Store(true)
		v.readyFlag.Store(false)
		v.initCancel()
		close(v.quit)

		if v.commands != nil {
			v.commands.Unregister(v)
		}

		v.mu.Lock()
		nc := v.navCtl
		gz := v.gizmoCtl
		v.navCtl = nil
		v.gizmoCtl = nil
		v.selection = nil
		v.camera = nil
		v.mu.Unlock()

		if gz != nil {
			// The visual was added to the borrowed scene root during
			// initialization; take it back out so the next mount of the same
			// graph does not inherit a stale helper.
			if visual := gz.VisualNode(); visual != nil && v.graph != nil {
				if root := v.graph.Root(); root != nil && visual.Parent() == root {
					root.RemoveChild(visual)
				}
			}
			gz.Dispose()
		}
		if nc != nil {
			nc.Dispose()
		}
	})
}

// applySelection makes obj the current selection, attaches the gizmo, and
// emits a select event.
func (v *viewportImpl) applySelection(obj *scenegraph.SceneObject) {
	v.mu.Lock()
	v.selection = obj
	gz := v.gizmoCtl
	v.mu.Unlock()

	if gz != nil && obj.Node != nil {
		gz.Attach(obj.Node)
	}
	v.events.Emit(event.Event{Kind: event.KindSelect, Object: obj})
}

// clearSelection drops the current selection, detaches the gizmo, and emits
// a deselect event if something was selected.
func (v *viewportImpl) clearSelection() {
	v.mu.Lock()
	had := v.selection != nil
	v.selection = nil
	gz := v.gizmoCtl
	v.mu.Unlock()

	if gz != nil {
		gz.Detach()
	}
	if had {
		v.events.Emit(event.Event{Kind: event.KindDeselect})
	}
}

// emitTransform broadcasts a transform event carrying the current selection
// and gizmo mode.
func (v *viewportImpl) emitTransform(kind event.Kind) {
	v.mu.Lock()
	obj := v.selection
	gz := v.gizmoCtl
	v.mu.Unlock()

	mode := ""
	if gz != nil {
		mode = string(gz.Mode())
	}
	v.events.Emit(event.Event{Kind: kind, Object: obj, Mode: mode})
}

// --- command.Handler ---

func (v *viewportImpl) SetCameraByTag(tag string) {
	if !v.readyFlag.Load() {
		return
	}

	obj := v.graph.FirstByTag(tag)
	if obj == nil || obj.Node == nil {
		log.Printf("viewport: no object tagged %q", tag)
		return
	}
	camera, ok := node.AsCamera(obj.Node)
	if !ok {
		log.Printf("viewport: object tagged %q is not a camera", tag)
		return
	}

	v.mu.Lock()
	if camera == v.camera {
		v.mu.Unlock()
		return
	}

	v.camera = camera
	v.frustums.applyProjection(camera, v.width, v.height)
	v.frustums.evictMissing(v.graph, camera)

	// Swap the navigation controller atomically: the new controller adopts
	// the new camera's pose before the old one is released.
	old := v.navCtl
	target := v.navTarget
	if old != nil {
		target = old.Target()
	}
	if v.module.NewNavController != nil {
		v.navCtl = v.module.NewNavController(camera,
			nav.WithTarget(target.X(), target.Y(), target.Z()),
			nav.WithDamping(true),
		)
	}
	gz := v.gizmoCtl
	v.mu.Unlock()

	if gz != nil {
		gz.SetCamera(camera)
	}
	if old != nil {
		old.Dispose()
	}
}

func (v *viewportImpl) SetTransformMode(mode string) {
	if !v.readyFlag.Load() {
		return
	}
	parsed, ok := gizmo.ParseMode(mode)
	if !ok {
		log.Printf("viewport: unknown transform mode %q", mode)
		return
	}
	if gz := v.Gizmo(); gz != nil {
		gz.SetMode(parsed)
	}
}

func (v *viewportImpl) MoveCameraToPreset(name string) {
	if !v.readyFlag.Load() {
		return
	}
	pos, ok := presetPositions[name]
	if !ok {
		log.Printf("viewport: unknown camera preset %q", name)
		return
	}

	v.mu.Lock()
	camera := v.camera
	nc := v.navCtl
	v.mu.Unlock()
	if camera == nil {
		return
	}

	if nc != nil {
		nc.SetTarget(presetTarget)
	}
	camera.SetPosition(pos)
	camera.LookAt(presetTarget)
	if nc != nil {
		nc.Sync()
	}
}

func (v *viewportImpl) SelectObject(id string) {
	if !v.readyFlag.Load() {
		return
	}
	obj := v.graph.ByID(id)
	if obj == nil {
		log.Printf("viewport: no object with id %q", id)
		return
	}
	v.applySelection(obj)
}

func (v *viewportImpl) SelectObjectByTag(tag string) {
	if !v.readyFlag.Load() {
		return
	}
	obj := v.graph.FirstByTag(tag)
	if obj == nil {
		log.Printf("viewport: no object tagged %q", tag)
		return
	}
	v.applySelection(obj)
}

func (v *viewportImpl) ClearSelection() {
	if !v.readyFlag.Load() {
		return
	}
	v.clearSelection()
}

package gizmo

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quarry3d/quarry/common"
	"github.com/quarry3d/quarry/editor/node"
)

var axes = [3]mgl32.Vec3{
	{1, 0, 0}, // X
	{0, 1, 0}, // Y
	{0, 0, 1}, // Z
}

type gizmoControllerImpl struct {
	mu *sync.Mutex

	cam      node.CameraNode
	attached node.Node
	visual   node.Node

	mode Mode

	// Handle geometry. Axis handles extend handleLength from the node
	// center; rings sit at ringRadius.
	handleLength float32
	hitDistance  float32
	ringRadius   float32
	ringHitBand  float32

	// Active drag state.
	dragging   bool
	activeAxis int
	grabParam  float32    // axis parameter at drag start (translate/scale)
	grabVector mgl32.Vec3 // vector from center to grab point (rotate)
	startPos   mgl32.Vec3
	startRot   mgl32.Vec3
	startScale mgl32.Vec3

	onStart  func()
	onChange func()
	onEnd    func()

	disposed bool
}

var _ Controller = &gizmoControllerImpl{}

// NewController creates a gizmo controller projecting through the given
// camera. The controller starts detached in translate mode with a visual
// helper node ready for scene insertion.
//
// Parameters:
//   - cam: the camera used to build handle geometry (may be repointed later)
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(cam node.CameraNode, options ...ControllerBuilderOption) Controller {
	g := &gizmoControllerImpl{
		mu:  &sync.Mutex{},
		cam: cam,

		mode: ModeTranslate,

		handleLength: 2.0,
		hitDistance:  0.3,
		ringRadius:   1.6,
		ringHitBand:  0.4,

		visual: node.NewNode(
			node.WithName("transform-gizmo"),
			node.WithHelper(),
			node.WithVisible(false),
		),
	}

	for _, option := range options {
		option(g)
	}
	return g
}

func (g *gizmoControllerImpl) Mode() Mode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

func (g *gizmoControllerImpl) SetMode(mode Mode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dragging {
		return
	}
	g.mode = mode
}

func (g *gizmoControllerImpl) Attach(n node.Node) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.attached = n
	g.dragging = false
	if g.visual != nil && n != nil {
		g.visual.SetPosition(n.Position())
		g.visual.SetVisible(true)
	}
}

func (g *gizmoControllerImpl) Detach() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attached = nil
	g.dragging = false
	if g.visual != nil {
		g.visual.SetVisible(false)
	}
}

func (g *gizmoControllerImpl) Attached() node.Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attached
}

func (g *gizmoControllerImpl) Camera() node.CameraNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cam
}

func (g *gizmoControllerImpl) SetCamera(cam node.CameraNode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cam = cam
}

func (g *gizmoControllerImpl) VisualNode() node.Node {
	return g.visual
}

func (g *gizmoControllerImpl) BeginDrag(ray common.Ray) bool {
	g.mu.Lock()
	if g.disposed || g.attached == nil {
		g.mu.Unlock()
		return false
	}

	axis := g.pickAxisLocked(ray)
	if axis < 0 {
		g.mu.Unlock()
		return false
	}

	center := g.attached.Position()
	g.dragging = true
	g.activeAxis = axis
	g.startPos = center
	g.startRot = g.attached.Rotation()
	g.startScale = g.attached.Scale()

	switch g.mode {
	case ModeRotate:
		if pt, ok := ray.IntersectPlane(center, axes[axis]); ok {
			g.grabVector = pt.Sub(center)
		} else {
			g.grabVector = mgl32.Vec3{}
		}
	default:
		g.grabParam, _ = ray.ClosestPointToLine(center, axes[axis])
	}

	onStart := g.onStart
	g.mu.Unlock()

	if onStart != nil {
		onStart()
	}
	return true
}

func (g *gizmoControllerImpl) UpdateDrag(ray common.Ray) {
	g.mu.Lock()
	if !g.dragging || g.attached == nil {
		g.mu.Unlock()
		return
	}

	axis := g.activeAxis
	switch g.mode {
	case ModeTranslate:
		param, _ := ray.ClosestPointToLine(g.startPos, axes[axis])
		delta := param - g.grabParam
		g.attached.SetPosition(g.startPos.Add(axes[axis].Mul(delta)))
		if g.visual != nil {
			g.visual.SetPosition(g.attached.Position())
		}

	case ModeRotate:
		pt, ok := ray.IntersectPlane(g.startPos, axes[axis])
		if !ok || g.grabVector.Len() < 1e-6 {
			g.mu.Unlock()
			return
		}
		current := pt.Sub(g.startPos)
		angle := signedAngle(g.grabVector, current, axes[axis])
		rot := g.startRot
		rot[axis] += angle
		g.attached.SetRotation(rot)

	case ModeScale:
		param, _ := ray.ClosestPointToLine(g.startPos, axes[axis])
		delta := param - g.grabParam
		scale := g.startScale
		scale[axis] = maxf(scale[axis]*(1+delta/g.handleLength), 0.01)
		g.attached.SetScale(scale)
	}

	onChange := g.onChange
	g.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

func (g *gizmoControllerImpl) EndDrag() {
	g.mu.Lock()
	if !g.dragging {
		g.mu.Unlock()
		return
	}
	g.dragging = false
	onEnd := g.onEnd
	g.mu.Unlock()

	if onEnd != nil {
		onEnd()
	}
}

func (g *gizmoControllerImpl) Dragging() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dragging
}

func (g *gizmoControllerImpl) SetStartCallback(cb func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onStart = cb
}

func (g *gizmoControllerImpl) SetChangeCallback(cb func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onChange = cb
}

func (g *gizmoControllerImpl) SetEndCallback(cb func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onEnd = cb
}

func (g *gizmoControllerImpl) Dispose() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.disposed = true
	g.dragging = false
	g.attached = nil
	g.onStart = nil
	g.onChange = nil
	g.onEnd = nil
}

// pickAxisLocked returns the handle axis nearest the ray, or -1 when no
// handle is within its hit distance. Caller must hold the mutex.
func (g *gizmoControllerImpl) pickAxisLocked(ray common.Ray) int {
	center := g.attached.Position()
	bestDist := float32(math32.MaxFloat32)
	bestAxis := -1

	if g.mode == ModeRotate {
		// Rings: intersect the ray with each ring's plane and measure the
		// distance from the intersection to the ring circle.
		for i, axis := range axes {
			pt, ok := ray.IntersectPlane(center, axis)
			if !ok {
				continue
			}
			fromRing := math32.Abs(pt.Sub(center).Len() - g.ringRadius)
			if fromRing < g.ringHitBand && fromRing < bestDist {
				bestDist = fromRing
				bestAxis = i
			}
		}
		return bestAxis
	}

	// Axis handles: closest approach between the ray and each axis segment.
	for i, axis := range axes {
		along, dist := ray.ClosestPointToLine(center, axis)
		if along > 0 && along < g.handleLength && dist < g.hitDistance && dist < bestDist {
			bestDist = dist
			bestAxis = i
		}
	}
	return bestAxis
}

// signedAngle returns the angle from a to b around the given axis, in
// radians, with sign following the right-hand rule.
func signedAngle(a, b, axis mgl32.Vec3) float32 {
	if a.Len() < 1e-8 || b.Len() < 1e-8 {
		return 0
	}
	an := a.Normalize()
	bn := b.Normalize()
	cos := clampf(an.Dot(bn), -1, 1)
	angle := math32.Acos(cos)
	if an.Cross(bn).Dot(axis) < 0 {
		angle = -angle
	}
	return angle
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

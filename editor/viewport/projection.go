package viewport

import (
	"github.com/quarry3d/quarry/editor/node"
	"github.com/quarry3d/quarry/editor/scenegraph"
)

// defaultFrustumHeight is used when an orthographic camera's frustum is
// degenerate (zero or negative height) and nothing has been remembered yet.
const defaultFrustumHeight float32 = 10

// frustumHeightTable remembers each orthographic camera's vertical frustum
// span across resizes, keyed by camera node id. Aspect changes rescale
// left/right only; the remembered height keeps the vertical framing stable
// no matter how the viewport is resized.
type frustumHeightTable struct {
	heights map[string]float32
}

func newFrustumHeightTable() *frustumHeightTable {
	return &frustumHeightTable{
		heights: make(map[string]float32),
	}
}

// heightFor returns the remembered frustum height for a camera, capturing it
// from the camera's current frustum on first sight.
func (t *frustumHeightTable) heightFor(cam node.CameraNode) float32 {
	if h, ok := t.heights[cam.ID()]; ok {
		return h
	}
	_, _, bottom, top := cam.Frustum()
	h := top - bottom
	if h <= 0 {
		h = defaultFrustumHeight
	}
	t.heights[cam.ID()] = h
	return h
}

// evictMissing drops entries for cameras no longer present in the graph, so
// the table cannot grow across scene replacements.
func (t *frustumHeightTable) evictMissing(graph scenegraph.SceneGraph, active node.CameraNode) {
	live := make(map[string]bool, len(t.heights))
	if active != nil {
		live[active.ID()] = true
	}
	if graph != nil {
		var walk func(n node.Node)
		walk = func(n node.Node) {
			if n == nil {
				return
			}
			if _, ok := node.AsCamera(n); ok {
				live[n.ID()] = true
			}
			for _, child := range n.Children() {
				walk(child)
			}
		}
		walk(graph.Root())
	}
	for id := range t.heights {
		if !live[id] {
			delete(t.heights, id)
		}
	}
}

// applyProjection reconfigures a camera for the given pixel dimensions.
// Perspective cameras track the aspect ratio directly; orthographic cameras
// rebuild their frustum from the remembered height so resizing never changes
// the vertical framing.
func (t *frustumHeightTable) applyProjection(cam node.CameraNode, width, height int) {
	if cam == nil || width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)

	if cam.Projection() != node.ProjectionOrthographic {
		cam.SetAspect(aspect)
		return
	}

	h := t.heightFor(cam)
	halfHeight := h / 2
	halfWidth := halfHeight * aspect
	cam.SetFrustum(-halfWidth, halfWidth, -halfHeight, halfHeight)
}

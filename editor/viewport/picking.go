package viewport

import (
	"github.com/quarry3d/quarry/editor/node"
	"github.com/quarry3d/quarry/editor/scenegraph"
)

// toNDC converts viewport-local pixel coordinates to normalized device
// coordinates, with y inverted so +1 is the top edge.
func toNDC(x, y float32, width, height int) (ndcX, ndcY float32) {
	ndcX = (x/float32(width))*2 - 1
	ndcY = -((y/float32(height))*2 - 1)
	return ndcX, ndcY
}

// pickObject casts a ray through the given NDC point and returns the nearest
// selectable object it hits, or nil. Caller must hold the viewport mutex.
func (v *viewportImpl) pickObjectLocked(ndcX, ndcY float32) *scenegraph.SceneObject {
	if v.camera == nil || v.graph == nil {
		return nil
	}
	ray := v.camera.Ray(ndcX, ndcY)

	var nearest *scenegraph.SceneObject
	var nearestT float32

	for _, obj := range v.selectableLocked() {
		minB, maxB, ok := obj.Node.Bounds()
		if !ok {
			continue
		}
		t, hit := ray.IntersectAABB(minB, maxB)
		if !hit {
			continue
		}
		if nearest == nil || t < nearestT {
			nearest = obj
			nearestT = t
		}
	}
	return nearest
}

// selectableLocked returns the objects picking may hit: the configured
// allow-list when one is set, otherwise every non-camera, non-helper object.
// The graph's root container is never selectable. Caller must hold the mutex.
func (v *viewportImpl) selectableLocked() []*scenegraph.SceneObject {
	if len(v.selectableIDs) > 0 {
		out := make([]*scenegraph.SceneObject, 0, len(v.selectableIDs))
		for _, id := range v.selectableIDs {
			if obj := v.graph.ByID(id); obj != nil {
				out = append(out, obj)
			}
		}
		return out
	}

	root := v.graph.Root()
	objects := v.graph.Objects()
	out := make([]*scenegraph.SceneObject, 0, len(objects))
	for _, obj := range objects {
		if obj.Node == nil || obj.Node == root || obj.Node.Helper() {
			continue
		}
		if _, isCamera := node.AsCamera(obj.Node); isCamera {
			continue
		}
		out = append(out, obj)
	}
	return out
}

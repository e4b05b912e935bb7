package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry3d/quarry/editor/node"
	"github.com/quarry3d/quarry/editor/scenegraph"
)

func TestToNDCMapsCornersAndCenter(t *testing.T) {
	x, y := toNDC(0, 0, 800, 600)
	assert.InDelta(t, -1.0, x, 1e-6)
	assert.InDelta(t, 1.0, y, 1e-6)

	x, y = toNDC(800, 600, 800, 600)
	assert.InDelta(t, 1.0, x, 1e-6)
	assert.InDelta(t, -1.0, y, 1e-6)

	x, y = toNDC(400, 300, 800, 600)
	assert.InDelta(t, 0.0, x, 1e-6)
	assert.InDelta(t, 0.0, y, 1e-6)
}

func TestFrustumHeightRememberedAcrossResizes(t *testing.T) {
	table := newFrustumHeightTable()
	cam := node.NewOrthographicCamera(node.WithOrthoFrustum(-8, 8, -8, 8))

	table.applyProjection(cam, 800, 600)
	table.applyProjection(cam, 1600, 600)
	table.applyProjection(cam, 100, 600)

	_, _, bottom, top := cam.Frustum()
	assert.InDelta(t, 8.0, top, 1e-4)
	assert.InDelta(t, -8.0, bottom, 1e-4)
}

func TestDegenerateFrustumFallsBackToDefaultHeight(t *testing.T) {
	table := newFrustumHeightTable()
	cam := node.NewOrthographicCamera(node.WithOrthoFrustum(0, 0, 0, 0))

	table.applyProjection(cam, 600, 600)

	_, _, bottom, top := cam.Frustum()
	assert.InDelta(t, defaultFrustumHeight/2, top, 1e-4)
	assert.InDelta(t, -defaultFrustumHeight/2, bottom, 1e-4)
}

func TestPerspectiveCameraBypassesHeightTable(t *testing.T) {
	table := newFrustumHeightTable()
	cam := node.NewPerspectiveCamera()

	table.applyProjection(cam, 800, 600)

	left, right, bottom, top := cam.Frustum()
	assert.Zero(t, left)
	assert.Zero(t, right)
	assert.Zero(t, bottom)
	assert.Zero(t, top)
	assert.Empty(t, table.heights)
}

func TestEvictMissingDropsDepartedCameras(t *testing.T) {
	table := newFrustumHeightTable()

	kept := node.NewOrthographicCamera(node.WithOrthoFrustum(-8, 8, -8, 8))
	departed := node.NewOrthographicCamera(node.WithOrthoFrustum(-4, 4, -4, 4))
	table.applyProjection(kept, 800, 600)
	table.applyProjection(departed, 800, 600)
	require.Len(t, table.heights, 2)

	graph := scenegraph.NewSceneGraph(
		scenegraph.WithObject(&scenegraph.SceneObject{ID: "kept", Node: kept}),
	)
	table.evictMissing(graph, kept)

	assert.Len(t, table.heights, 1)
	_, ok := table.heights[kept.ID()]
	assert.True(t, ok)
}

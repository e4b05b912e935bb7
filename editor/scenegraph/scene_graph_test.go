package scenegraph

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry3d/quarry/editor/node"
)

func buildTestGraph() SceneGraph {
	return NewSceneGraph(
		WithObject(&SceneObject{
			ID:   "sphere",
			Name: "Sphere",
			Node: node.NewNode(node.WithName("Sphere"), node.WithHalfExtents(1, 1, 1)),
			Tags: []string{"type:mesh", "shape:round"},
		}),
		WithObject(&SceneObject{
			ID:   "cube",
			Name: "Cube",
			Node: node.NewNode(node.WithName("Cube"), node.WithHalfExtents(1, 1, 1)),
			Tags: []string{"type:mesh"},
		}),
		WithObject(&SceneObject{
			ID:   "main-cam",
			Name: "Main Camera",
			Node: node.NewPerspectiveCamera(node.WithCameraName("Main Camera")),
			Tags: []string{"type:camera", "camera:perspective"},
		}),
	)
}

func TestTagIndexPreservesInsertionOrder(t *testing.T) {
	g := buildTestGraph()

	meshes := g.ByTag("type:mesh")
	require.Len(t, meshes, 2)
	assert.Equal(t, "sphere", meshes[0].ID)
	assert.Equal(t, "cube", meshes[1].ID)
}

func TestFirstByTag(t *testing.T) {
	g := buildTestGraph()

	cam := g.FirstByTag("camera:perspective")
	require.NotNil(t, cam)
	assert.Equal(t, "main-cam", cam.ID)

	assert.Nil(t, g.FirstByTag("no-such-tag"))
	assert.Empty(t, g.ByTag("no-such-tag"))
}

func TestByID(t *testing.T) {
	g := buildTestGraph()

	obj := g.ByID("cube")
	require.NotNil(t, obj)
	assert.Equal(t, "Cube", obj.Name)
	assert.Nil(t, g.ByID("missing"))
}

func TestParentlessNodesAttachToRoot(t *testing.T) {
	g := buildTestGraph()

	for _, obj := range g.Objects() {
		assert.Equal(t, g.Root(), obj.Node.Parent())
	}
	assert.Len(t, g.Root().Children(), 3)
}

func TestObjectsWithoutIDsGetUUIDs(t *testing.T) {
	g := NewSceneGraph(
		WithObject(&SceneObject{Name: "anon", Node: node.NewNode()}),
	)

	obj := g.Objects()[0]
	assert.NotEmpty(t, obj.ID)
	assert.Equal(t, obj, g.ByID(obj.ID))
}

func TestHasTag(t *testing.T) {
	obj := &SceneObject{Tags: []string{"type:mesh", "shape:round"}}
	assert.True(t, obj.HasTag("shape:round"))
	assert.False(t, obj.HasTag("type:camera"))
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestSkyboxDecodesAllFaces(t *testing.T) {
	face := encodePNG(t, 4, 4)
	g := NewSceneGraph(
		WithSkyboxData([6][]byte{face, face, face, face, face, face}),
		WithDecodeWorkers(2),
	)

	sky := g.Skybox()
	require.NotNil(t, sky)
	for _, f := range sky.Faces {
		assert.Equal(t, uint32(4), f.Width)
		assert.Equal(t, uint32(4), f.Height)
		assert.Len(t, f.Pixels, 4*4*4)
	}
}

func TestSkyboxDecodeFailureDegradesToNil(t *testing.T) {
	face := encodePNG(t, 4, 4)
	g := NewSceneGraph(
		WithSkyboxData([6][]byte{face, []byte("not an image"), face, face, face, face}),
	)

	assert.Nil(t, g.Skybox())
}

func TestNoSkyboxConfigured(t *testing.T) {
	assert.Nil(t, buildTestGraph().Skybox())
}

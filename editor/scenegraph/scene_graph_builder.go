package scenegraph

import (
	"runtime"

	"github.com/google/uuid"

	"github.com/quarry3d/quarry/editor/node"
)

// SceneGraphBuilderOption is a functional option for configuring a SceneGraph.
type SceneGraphBuilderOption func(*sceneGraphImpl)

// NewSceneGraph creates a SceneGraph from the provided options. The tag and
// id indexes are built here, once, in insertion order; the graph's shape is
// immutable afterwards. Objects whose nodes have no parent are attached to
// the root container.
//
// Parameters:
//   - options: functional options to configure the graph
//
// Returns:
//   - SceneGraph: the newly created graph
func NewSceneGraph(options ...SceneGraphBuilderOption) SceneGraph {
	g := &sceneGraphImpl{
		root:          node.NewNode(node.WithName("root")),
		tagIndex:      make(map[string][]*SceneObject),
		idIndex:       make(map[string]*SceneObject),
		decodeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(g)
	}

	for _, obj := range g.objects {
		if obj.ID == "" {
			obj.ID = uuid.NewString()
		}
		if obj.Node != nil && obj.Node.Parent() == nil {
			g.root.AddChild(obj.Node)
		}
		g.idIndex[obj.ID] = obj
		for _, tag := range obj.Tags {
			g.tagIndex[tag] = append(g.tagIndex[tag], obj)
		}
	}

	if g.skyboxConfig != nil {
		g.skybox = buildSkybox(g.skyboxConfig, g.decodeWorkers)
	}

	return g
}

// WithRoot replaces the auto-created root container.
//
// Parameters:
//   - root: the root node to use
//
// Returns:
//   - SceneGraphBuilderOption: option function to apply
func WithRoot(root node.Node) SceneGraphBuilderOption {
	return func(g *sceneGraphImpl) {
		g.root = root
	}
}

// WithObject adds an object to the graph. Objects without ids are assigned
// fresh UUIDs; parentless nodes are attached to the root.
//
// Parameters:
//   - obj: the object to add
//
// Returns:
//   - SceneGraphBuilderOption: option function to apply
func WithObject(obj *SceneObject) SceneGraphBuilderOption {
	return func(g *sceneGraphImpl) {
		g.objects = append(g.objects, obj)
	}
}

// WithSkyboxFiles configures a skybox decoded from six image files in
// +X, -X, +Y, -Y, +Z, -Z order. Decode failures are logged and degrade to no
// skybox rather than failing graph construction.
//
// Parameters:
//   - faces: paths to the six face images
//
// Returns:
//   - SceneGraphBuilderOption: option function to apply
func WithSkyboxFiles(faces [6]string) SceneGraphBuilderOption {
	return func(g *sceneGraphImpl) {
		g.skyboxConfig = &skyboxConfig{facePaths: faces}
	}
}

// WithSkyboxData configures a skybox decoded from six in-memory encoded
// images in +X, -X, +Y, -Y, +Z, -Z order.
//
// Parameters:
//   - faces: encoded PNG or JPEG bytes for the six faces
//
// Returns:
//   - SceneGraphBuilderOption: option function to apply
func WithSkyboxData(faces [6][]byte) SceneGraphBuilderOption {
	return func(g *sceneGraphImpl) {
		g.skyboxConfig = &skyboxConfig{faceData: faces}
	}
}

// WithDecodeWorkers sets the number of worker goroutines used to decode
// skybox faces. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of decode workers (minimum 1)
//
// Returns:
//   - SceneGraphBuilderOption: option function to apply
func WithDecodeWorkers(n int) SceneGraphBuilderOption {
	return func(g *sceneGraphImpl) {
		if n < 1 {
			n = 1
		}
		g.decodeWorkers = n
	}
}

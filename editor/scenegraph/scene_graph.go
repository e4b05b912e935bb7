// Package scenegraph holds the authoritative collection of positioned scene
// entities plus tag-based lookup. Graphs are built once and replaced
// wholesale; the tag index is immutable after construction.
package scenegraph

import (
	"github.com/quarry3d/quarry/common"
	"github.com/quarry3d/quarry/editor/node"
)

// BoundsConfig configures the bounding-box outline drawn around an object
// while it is selected.
type BoundsConfig struct {
	// Color is the outline color as RGB in [0, 1].
	Color [3]float32

	// Padding expands the outline beyond the object's bounds on every axis.
	Padding float32
}

// SceneObject is a weak indexing wrapper around an engine node. The node's
// ownership lives with the graph's root container; SceneObject only carries
// the editor-facing identity, tags, and selection decoration config.
type SceneObject struct {
	// ID is unique within a graph and stable for the object's lifetime.
	ID string

	// Name is the object's display name.
	Name string

	// Node is the back-reference to the engine node.
	Node node.Node

	// Tags are informal classifiers, e.g. "type:camera" or "type:character".
	Tags []string

	// Bounds optionally configures the selection outline.
	Bounds *BoundsConfig
}

// HasTag reports whether the object carries the given tag.
//
// Parameters:
//   - tag: the tag to test
//
// Returns:
//   - bool: true if the object carries the tag
func (o *SceneObject) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Skybox is the decoded environment texture set, one face per cube side in
// +X, -X, +Y, -Y, +Z, -Z order.
type Skybox struct {
	Faces [6]common.TextureData
}

// SceneGraph is the immutable-shape container the viewport renders. The
// object list and tag index never change after construction; scenes that
// need different content are replaced wholesale.
type SceneGraph interface {
	// Root returns the owned root container node.
	//
	// Returns:
	//   - node.Node: the root node
	Root() node.Node

	// Objects returns the graph's objects in insertion order.
	//
	// Returns:
	//   - []*SceneObject: the objects; callers must not mutate the slice
	Objects() []*SceneObject

	// Skybox returns the decoded environment textures, or nil when the graph
	// has none (or its decode failed).
	//
	// Returns:
	//   - *Skybox: the skybox or nil
	Skybox() *Skybox

	// ByTag returns every object carrying a tag, in insertion order.
	//
	// Parameters:
	//   - tag: the tag to look up
	//
	// Returns:
	//   - []*SceneObject: matching objects; empty when none match
	ByTag(tag string) []*SceneObject

	// FirstByTag returns the first object carrying a tag, or nil.
	//
	// Parameters:
	//   - tag: the tag to look up
	//
	// Returns:
	//   - *SceneObject: the first match or nil
	FirstByTag(tag string) *SceneObject

	// ByID returns the object with the given id, or nil.
	//
	// Parameters:
	//   - id: the object id
	//
	// Returns:
	//   - *SceneObject: the object or nil
	ByID(id string) *SceneObject
}

type sceneGraphImpl struct {
	root    node.Node
	objects []*SceneObject
	skybox  *Skybox

	// tagIndex maps tag -> objects in insertion order. Built once in
	// NewSceneGraph and never mutated afterwards, so reads need no lock.
	tagIndex map[string][]*SceneObject
	idIndex  map[string]*SceneObject

	// decodeWorkers sizes the worker pool used to decode skybox faces.
	decodeWorkers int

	skyboxConfig *skyboxConfig
}

type skyboxConfig struct {
	facePaths [6]string
	faceData  [6][]byte
}

var _ SceneGraph = &sceneGraphImpl{}

func (g *sceneGraphImpl) Root() node.Node {
	return g.root
}

func (g *sceneGraphImpl) Objects() []*SceneObject {
	return g.objects
}

func (g *sceneGraphImpl) Skybox() *Skybox {
	return g.skybox
}

func (g *sceneGraphImpl) ByTag(tag string) []*SceneObject {
	return g.tagIndex[tag]
}

func (g *sceneGraphImpl) FirstByTag(tag string) *SceneObject {
	if objs := g.tagIndex[tag]; len(objs) > 0 {
		return objs[0]
	}
	return nil
}

func (g *sceneGraphImpl) ByID(id string) *SceneObject {
	return g.idIndex[id]
}

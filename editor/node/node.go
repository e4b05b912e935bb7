package node

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Node is the engine-native scene entity surface the editor manipulates.
// Nodes form a shallow hierarchy: group nodes own immediate children, and
// picking resolves hits one level up from a child to its parent.
type Node interface {
	// ID returns the node's unique identifier, assigned once at creation.
	//
	// Returns:
	//   - string: the node id (UUID)
	ID() string

	// Name returns the node's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Position returns the node's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition sets the node's world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// Rotation returns the node's Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation angles around X, Y, Z
	Rotation() mgl32.Vec3

	// SetRotation sets the node's Euler rotation in radians.
	//
	// Parameters:
	//   - r: rotation angles around X, Y, Z
	SetRotation(r mgl32.Vec3)

	// Scale returns the node's per-axis scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// SetScale sets the node's per-axis scale factors.
	//
	// Parameters:
	//   - s: the new scale
	SetScale(s mgl32.Vec3)

	// Visible returns whether the node is rendered.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible sets whether the node is rendered.
	//
	// Parameters:
	//   - visible: the new visibility
	SetVisible(visible bool)

	// Helper returns whether this node is an editor decoration (grid, gizmo
	// visual, bounding-box outline) rather than scene content. Helper nodes
	// are excluded from picking and hidden during frame capture.
	//
	// Returns:
	//   - bool: true for editor decorations
	Helper() bool

	// Parent returns the node's parent, or nil for roots.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// Children returns a copy of the node's immediate children.
	//
	// Returns:
	//   - []Node: the children in insertion order
	Children() []Node

	// AddChild appends a child and sets its parent to this node.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child Node)

	// RemoveChild detaches a child if it is currently parented here.
	//
	// Parameters:
	//   - child: the node to detach
	RemoveChild(child Node)

	// Bounds returns the node's world-space axis-aligned bounding box.
	// Group nodes report the union of their children's bounds. Nodes with no
	// spatial extent (cameras, pure groups with no sized children) report ok
	// = false and are skipped by picking.
	//
	// Returns:
	//   - min: minimum corner of the box
	//   - max: maximum corner of the box
	//   - ok: false if the node has no spatial extent
	Bounds() (min, max mgl32.Vec3, ok bool)

	setParent(p Node)
}

// nodeImpl is the default Node implementation: a transformable entity with an
// optional box extent used for bounds and picking.
type nodeImpl struct {
	mu *sync.Mutex

	id   string
	name string

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	// halfExtents is the node's local half-size per axis. Zero on all axes
	// means the node has no spatial extent of its own.
	halfExtents mgl32.Vec3

	visible bool
	helper  bool

	parent   Node
	children []Node
}

var _ Node = &nodeImpl{}

// NewNode creates a new Node with the provided options.
// The id is a freshly generated UUID and is stable for the node's lifetime.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewNode(options ...NodeBuilderOption) Node {
	return newNodeImpl(options...)
}

// newNodeImpl constructs the concrete node, shared with the camera
// implementations which embed it.
func newNodeImpl(options ...NodeBuilderOption) *nodeImpl {
	n := &nodeImpl{
		mu:      &sync.Mutex{},
		id:      uuid.NewString(),
		scale:   mgl32.Vec3{1, 1, 1},
		visible: true,
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *nodeImpl) ID() string {
	return n.id
}

func (n *nodeImpl) Name() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.name
}

func (n *nodeImpl) Position() mgl32.Vec3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.position
}

func (n *nodeImpl) SetPosition(p mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = p
}

func (n *nodeImpl) Rotation() mgl32.Vec3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.rotation
}

func (n *nodeImpl) SetRotation(r mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = r
}

func (n *nodeImpl) Scale() mgl32.Vec3 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.scale
}

func (n *nodeImpl) SetScale(s mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = s
}

func (n *nodeImpl) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

func (n *nodeImpl) SetVisible(visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = visible
}

func (n *nodeImpl) Helper() bool {
	return n.helper
}

func (n *nodeImpl) Parent() Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.parent
}

func (n *nodeImpl) Children() []Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	cp := make([]Node, len(n.children))
	copy(cp, n.children)
	return cp
}

func (n *nodeImpl) AddChild(child Node) {
	n.mu.Lock()
	n.children = append(n.children, child)
	n.mu.Unlock()
	child.setParent(n)
}

func (n *nodeImpl) RemoveChild(child Node) {
	n.mu.Lock()
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	n.mu.Unlock()
	if child.Parent() == n {
		child.setParent(nil)
	}
}

func (n *nodeImpl) Bounds() (mgl32.Vec3, mgl32.Vec3, bool) {
	n.mu.Lock()
	pos := n.position
	scale := n.scale
	half := n.halfExtents
	children := make([]Node, len(n.children))
	copy(children, n.children)
	n.mu.Unlock()

	var min, max mgl32.Vec3
	found := false

	if half.Len() > 0 {
		// The box is axis-aligned: rotation is intentionally ignored, which
		// keeps bounds conservative enough for editor picking.
		ext := mgl32.Vec3{half.X() * scale.X(), half.Y() * scale.Y(), half.Z() * scale.Z()}
		min = pos.Sub(ext)
		max = pos.Add(ext)
		found = true
	}

	for _, c := range children {
		cmin, cmax, ok := c.Bounds()
		if !ok {
			continue
		}
		if !found {
			min, max = cmin, cmax
			found = true
			continue
		}
		for axis := 0; axis < 3; axis++ {
			if cmin[axis] < min[axis] {
				min[axis] = cmin[axis]
			}
			if cmax[axis] > max[axis] {
				max[axis] = cmax[axis]
			}
		}
	}

	return min, max, found
}

func (n *nodeImpl) setParent(p Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.parent = p
}

package node

import "github.com/go-gl/mathgl/mgl32"

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(*nodeImpl)

// WithName sets the node's display name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - NodeBuilderOption: functional option to set the name
func WithName(name string) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.name = name
	}
}

// WithPosition sets the node's initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - NodeBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the node's initial Euler rotation in radians.
//
// Parameters:
//   - x, y, z: rotation angles around each axis
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithRotation(x, y, z float32) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.rotation = mgl32.Vec3{x, y, z}
	}
}

// WithScale sets the node's initial per-axis scale.
//
// Parameters:
//   - x, y, z: scale factors
//
// Returns:
//   - NodeBuilderOption: functional option to set the scale
func WithScale(x, y, z float32) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.scale = mgl32.Vec3{x, y, z}
	}
}

// WithHalfExtents sets the node's local half-size per axis, giving it a
// spatial extent for bounds computation and picking.
//
// Parameters:
//   - x, y, z: half-size along each axis
//
// Returns:
//   - NodeBuilderOption: functional option to set the extents
func WithHalfExtents(x, y, z float32) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.halfExtents = mgl32.Vec3{x, y, z}
	}
}

// WithVisible sets the node's initial visibility.
//
// Parameters:
//   - visible: whether the node is rendered
//
// Returns:
//   - NodeBuilderOption: functional option to set visibility
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.visible = visible
	}
}

// WithHelper marks the node as an editor decoration, excluding it from
// picking and hiding it during frame capture.
//
// Returns:
//   - NodeBuilderOption: functional option to mark the node as a helper
func WithHelper() NodeBuilderOption {
	return func(n *nodeImpl) {
		n.helper = true
	}
}

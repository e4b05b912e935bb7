// Package gizmo provides the on-screen transform manipulator: axis handles
// for translating, ring handles for rotating, and axis handles for scaling a
// selected node. The controller owns drag state only; the viewport routes
// pointer rays into it and mirrors its begin/end hooks onto the navigation
// controller.
package gizmo

import (
	"github.com/quarry3d/quarry/common"
	"github.com/quarry3d/quarry/editor/node"
)

// Mode is a manipulation mode.
type Mode string

const (
	// ModeTranslate drags the attached node along one axis.
	ModeTranslate Mode = "translate"

	// ModeRotate spins the attached node around one axis.
	ModeRotate Mode = "rotate"

	// ModeScale stretches the attached node along one axis.
	ModeScale Mode = "scale"
)

// ParseMode converts a mode string to a Mode, defaulting to translate for
// anything unrecognized.
//
// Parameters:
//   - s: the mode string
//
// Returns:
//   - Mode: the parsed mode
//   - bool: false if the string was not a known mode
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeTranslate, ModeRotate, ModeScale:
		return Mode(s), true
	default:
		return ModeTranslate, false
	}
}

// Controller is the gizmo collaborator contract the viewport consumes.
// Unlike navigation controllers, a gizmo is not camera-scoped: switching
// cameras repoints the existing controller via SetCamera.
type Controller interface {
	// Mode returns the current manipulation mode.
	//
	// Returns:
	//   - Mode: the mode
	Mode() Mode

	// SetMode switches the manipulation mode. Ignored mid-drag.
	//
	// Parameters:
	//   - mode: the new mode
	SetMode(mode Mode)

	// Attach binds the gizmo to a node and shows its visual at the node's
	// position.
	//
	// Parameters:
	//   - n: the node to manipulate
	Attach(n node.Node)

	// Detach unbinds the gizmo and hides its visual. Ends any active drag
	// without firing the end hook's transform side effects twice.
	Detach()

	// Attached returns the currently bound node, or nil.
	//
	// Returns:
	//   - node.Node: the bound node or nil
	Attached() node.Node

	// Camera returns the camera the gizmo projects its handles through.
	//
	// Returns:
	//   - node.CameraNode: the camera or nil
	Camera() node.CameraNode

	// SetCamera repoints the gizmo at a different camera without
	// reconstructing it.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam node.CameraNode)

	// VisualNode answers the scene-insertion capability query: the helper
	// node carrying the gizmo's handles, or nil when this implementation has
	// no visual representation.
	//
	// Returns:
	//   - node.Node: the visual helper node or nil
	VisualNode() node.Node

	// BeginDrag tests a pointer ray against the handles of the current mode
	// and starts a manipulation when one is hit. Fires the start hook on a
	// hit.
	//
	// Parameters:
	//   - ray: the world-space pointer ray
	//
	// Returns:
	//   - bool: true if a handle was hit and a drag began
	BeginDrag(ray common.Ray) bool

	// UpdateDrag advances an active manipulation with a new pointer ray,
	// applying the transform delta to the attached node and firing the
	// change hook. No-op when not dragging.
	//
	// Parameters:
	//   - ray: the world-space pointer ray
	UpdateDrag(ray common.Ray)

	// EndDrag finishes an active manipulation and fires the end hook.
	// No-op when not dragging.
	EndDrag()

	// Dragging reports whether a manipulation is active.
	//
	// Returns:
	//   - bool: true between BeginDrag and EndDrag
	Dragging() bool

	// SetStartCallback sets the hook fired when a manipulation begins.
	//
	// Parameters:
	//   - cb: the hook (or nil to disable)
	SetStartCallback(cb func())

	// SetChangeCallback sets the hook fired on every manipulation delta.
	//
	// Parameters:
	//   - cb: the hook (or nil to disable)
	SetChangeCallback(cb func())

	// SetEndCallback sets the hook fired when a manipulation ends.
	//
	// Parameters:
	//   - cb: the hook (or nil to disable)
	SetEndCallback(cb func())

	// Dispose detaches the gizmo and drops its callbacks. Further calls are
	// no-ops.
	Dispose()
}

// Package render provides the drawing surface the viewport renders into. The
// viewport only consumes the Surface interface; the WebGPU implementation
// draws each visible node's bounds as a shaded box, which is all the editor
// shell needs for framing, picking feedback and frame capture.
package render

import (
	"image"

	"github.com/quarry3d/quarry/editor/node"
)

// Surface is a resizable render target for a scene tree.
type Surface interface {
	// Width returns the surface width in pixels.
	//
	// Returns:
	//   - int: the width
	Width() int

	// Height returns the surface height in pixels.
	//
	// Returns:
	//   - int: the height
	Height() int

	// Resize reconfigures the surface for new pixel dimensions. Zero or
	// negative dimensions are ignored.
	//
	// Parameters:
	//   - width: new width in pixels
	//   - height: new height in pixels
	Resize(width, height int)

	// Render draws the scene rooted at root through the given camera and
	// presents the result.
	//
	// Parameters:
	//   - root: the scene root node
	//   - cam: the camera to render through
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	Render(root node.Node, cam node.CameraNode) error

	// Snapshot draws the scene offscreen and returns the resulting pixels.
	// The presented surface is untouched.
	//
	// Parameters:
	//   - root: the scene root node
	//   - cam: the camera to render through
	//
	// Returns:
	//   - image.Image: the rendered frame
	//   - error: an error if the frame could not be drawn or read back
	Snapshot(root node.Node, cam node.CameraNode) (image.Image, error)

	// Dispose releases GPU resources. Further calls are no-ops.
	Dispose()
}

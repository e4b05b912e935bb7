// Package window provides platform windowing and input routing for the
// editor. It wraps GLFW behind a small interface whose callbacks line up with
// the viewport's pointer surface: primary-button events drive picking and
// gizmo drags, middle-button drags pan, and the scroll wheel zooms.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for primary (left) mouse button
	// press. The viewport routes these into picking and gizmo drags.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y in pixels
	SetMouseDownCallback(callback func(x, y float32))

	// SetMouseUpCallback sets the callback for primary (left) mouse button
	// release.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y in pixels
	SetMouseUpCallback(callback func(x, y float32))

	// SetMiddleMouseDownCallback sets the callback for middle mouse button
	// press, conventionally the start of a pan gesture.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y in pixels
	SetMiddleMouseDownCallback(callback func(x, y float32))

	// SetMiddleMouseUpCallback sets the callback for middle mouse button
	// release.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y in pixels
	SetMiddleMouseUpCallback(callback func(x, y float32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving cursor x, y in pixels
	SetMouseMoveCallback(callback func(x, y float32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for
	// creating a WebGPU surface over this window, or nil before the platform
	// window exists.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor or nil
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true while the window is open.
	//
	// Returns:
	//   - bool: true if the window is running
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: an error if the close fails
	Close() error

	// ProcessMessages runs the message loop until the window closes, calling
	// the update callback each iteration.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// editorWindow is the implementation of the Window interface.
type editorWindow struct {
	title  string
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate func()
	onResize func(width, height int)
	onScroll func(delta float32)

	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)

	onMouseDown       func(x, y float32)
	onMouseUp         func(x, y float32)
	onMiddleMouseDown func(x, y float32)
	onMiddleMouseUp   func(x, y float32)
	onMouseMove       func(x, y float32)
}

var _ Window = &editorWindow{}

// NewWindow creates a new Window with the specified options. The platform
// window is created immediately.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &editorWindow{
		title:  "Quarry Editor",
		width:  1280,
		height: 720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *editorWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *editorWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *editorWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *editorWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *editorWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *editorWindow) SetMouseDownCallback(callback func(x, y float32)) {
	w.onMouseDown = callback
}

func (w *editorWindow) SetMouseUpCallback(callback func(x, y float32)) {
	w.onMouseUp = callback
}

func (w *editorWindow) SetMiddleMouseDownCallback(callback func(x, y float32)) {
	w.onMiddleMouseDown = callback
}

func (w *editorWindow) SetMiddleMouseUpCallback(callback func(x, y float32)) {
	w.onMiddleMouseUp = callback
}

func (w *editorWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *editorWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *editorWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *editorWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *editorWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *editorWindow) Width() int {
	return w.width
}

func (w *editorWindow) Height() int {
	return w.height
}

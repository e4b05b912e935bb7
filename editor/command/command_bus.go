// Package command provides the editor's inbound control channel: a
// single-slot registry that forwards toolbar and panel commands to whichever
// viewport is currently mounted, without the callers holding a reference to
// it.
package command

import "sync"

// Handler is the command surface a mounted viewport exposes to external UI.
type Handler interface {
	// SetCameraByTag switches the active camera to the first camera tagged
	// with the given tag.
	//
	// Parameters:
	//   - tag: the camera tag, e.g. "camera:orthographic"
	SetCameraByTag(tag string)

	// SetTransformMode switches the gizmo manipulation mode.
	//
	// Parameters:
	//   - mode: "translate", "rotate", or "scale"
	SetTransformMode(mode string)

	// MoveCameraToPreset moves the active camera to a named preset pose.
	//
	// Parameters:
	//   - name: "home", "front", "side", or "top"
	MoveCameraToPreset(name string)

	// SelectObject selects a scene object by id.
	//
	// Parameters:
	//   - id: the scene object id
	SelectObject(id string)

	// SelectObjectByTag selects the first scene object carrying a tag.
	//
	// Parameters:
	//   - tag: the tag to resolve
	SelectObjectByTag(tag string)

	// ClearSelection deselects the current object, if any.
	ClearSelection()
}

// Bus is a single-slot command registry. At most one handler (the currently
// mounted viewport) is active at a time; every dispatch method is a safe
// no-op while the slot is empty, so callers never check readiness.
//
// Bus itself implements Handler, so a Bus can be handed to anything that
// expects a command surface.
type Bus interface {
	Handler

	// Register installs a handler, replacing any current one unconditionally.
	//
	// Parameters:
	//   - h: the handler to install
	Register(h Handler)

	// Unregister clears the slot only if the given handler is still the
	// registered one. A stale teardown racing a fast remount therefore never
	// clobbers the newer registration.
	//
	// Parameters:
	//   - h: the handler that is tearing down
	Unregister(h Handler)
}

type busImpl struct {
	mu      *sync.Mutex
	handler Handler
}

var _ Bus = &busImpl{}

// NewBus creates an empty command bus. Construct one per editor surface and
// inject it into both the viewport and the UI that drives it.
//
// Returns:
//   - Bus: the newly created bus
func NewBus() Bus {
	return &busImpl{
		mu: &sync.Mutex{},
	}
}

func (b *busImpl) Register(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handler = h
}

func (b *busImpl) Unregister(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handler == h {
		b.handler = nil
	}
}

// current snapshots the handler so dispatch happens outside the lock.
func (b *busImpl) current() Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handler
}

func (b *busImpl) SetCameraByTag(tag string) {
	if h := b.current(); h != nil {
		h.SetCameraByTag(tag)
	}
}

func (b *busImpl) SetTransformMode(mode string) {
	if h := b.current(); h != nil {
		h.SetTransformMode(mode)
	}
}

func (b *busImpl) MoveCameraToPreset(name string) {
	if h := b.current(); h != nil {
		h.MoveCameraToPreset(name)
	}
}

func (b *busImpl) SelectObject(id string) {
	if h := b.current(); h != nil {
		h.SelectObject(id)
	}
}

func (b *busImpl) SelectObjectByTag(tag string) {
	if h := b.current(); h != nil {
		h.SelectObjectByTag(tag)
	}
}

func (b *busImpl) ClearSelection() {
	if h := b.current(); h != nil {
		h.ClearSelection()
	}
}

package viewport

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quarry3d/quarry/editor/capability"
	"github.com/quarry3d/quarry/editor/command"
	"github.com/quarry3d/quarry/editor/event"
)

// ViewportBuilderOption is a functional option for configuring a Viewport.
type ViewportBuilderOption func(*viewportImpl)

// WithCommandBus mounts the viewport onto a command bus: Start registers it
// and Dispose unregisters it.
//
// Parameters:
//   - bus: the command bus to mount on
//
// Returns:
//   - ViewportBuilderOption: functional option to set the command bus
func WithCommandBus(bus command.Bus) ViewportBuilderOption {
	return func(v *viewportImpl) {
		v.commands = bus
	}
}

// WithEventBus sets the bus selection and transform events are emitted on.
// Without it the viewport creates a private bus.
//
// Parameters:
//   - bus: the event bus to emit on
//
// Returns:
//   - ViewportBuilderOption: functional option to set the event bus
func WithEventBus(bus event.Bus) ViewportBuilderOption {
	return func(v *viewportImpl) {
		if bus != nil {
			v.events = bus
		}
	}
}

// WithResolver sets the capability resolver initialization runs through.
//
// Parameters:
//   - resolver: the resolver to use
//
// Returns:
//   - ViewportBuilderOption: functional option to set the resolver
func WithResolver(resolver capability.Resolver) ViewportBuilderOption {
	return func(v *viewportImpl) {
		if resolver != nil {
			v.resolver = resolver
		}
	}
}

// WithSelectable restricts picking to the given scene object ids. Without it
// every non-camera, non-helper object is selectable.
//
// Parameters:
//   - ids: the selectable object ids
//
// Returns:
//   - ViewportBuilderOption: functional option to set the allow-list
func WithSelectable(ids ...string) ViewportBuilderOption {
	return func(v *viewportImpl) {
		v.selectableIDs = ids
	}
}

// WithDefaultCameraTag overrides the tag the initial camera is resolved by.
//
// Parameters:
//   - tag: the tag to resolve the initial camera with
//
// Returns:
//   - ViewportBuilderOption: functional option to set the camera tag
func WithDefaultCameraTag(tag string) ViewportBuilderOption {
	return func(v *viewportImpl) {
		if tag != "" {
			v.cameraTag = tag
		}
	}
}

// WithNavTarget sets the initial navigation pivot.
//
// Parameters:
//   - x, y, z: world-space coordinates of the pivot
//
// Returns:
//   - ViewportBuilderOption: functional option to set the pivot
func WithNavTarget(x, y, z float32) ViewportBuilderOption {
	return func(v *viewportImpl) {
		v.navTarget = mgl32.Vec3{x, y, z}
	}
}

// WithFrameInterval sets the render loop tick interval.
//
// Parameters:
//   - interval: time between frames (must be > 0 to have effect)
//
// Returns:
//   - ViewportBuilderOption: functional option to set the frame interval
func WithFrameInterval(interval time.Duration) ViewportBuilderOption {
	return func(v *viewportImpl) {
		if interval > 0 {
			v.frameInterval = interval
		}
	}
}

// Package nav provides orbit/pan/zoom camera navigation. A controller is
// camera-scoped: switching the active camera disposes the old controller and
// constructs a fresh one rather than rebinding in place.
package nav

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Controller owns the navigation state (orbit angles, target, damping
// velocities) for one camera. Input methods accumulate velocity; Update
// integrates it each frame and writes the resulting pose onto the camera.
type Controller interface {
	// Enabled returns whether the controller is applying input. The viewport
	// disables navigation for the duration of a gizmo drag.
	//
	// Returns:
	//   - bool: true if input is applied
	Enabled() bool

	// SetEnabled toggles input handling without losing navigation state.
	//
	// Parameters:
	//   - enabled: whether input is applied
	SetEnabled(enabled bool)

	// DampingEnabled returns whether release-to-drift damping is active.
	//
	// Returns:
	//   - bool: true if damping is active
	DampingEnabled() bool

	// SetDampingEnabled toggles release-to-drift damping.
	//
	// Parameters:
	//   - enabled: whether damping is active
	SetDampingEnabled(enabled bool)

	// Target returns the look-at/pivot point.
	//
	// Returns:
	//   - mgl32.Vec3: the target
	Target() mgl32.Vec3

	// SetTarget sets the look-at/pivot point and recomputes the camera pose.
	//
	// Parameters:
	//   - target: the new pivot point
	SetTarget(target mgl32.Vec3)

	// Orbit accumulates an orbit rotation from pointer movement.
	//
	// Parameters:
	//   - dx: horizontal pointer delta (orbits around the Y axis)
	//   - dy: vertical pointer delta (tilts elevation)
	Orbit(dx, dy float32)

	// Pan accumulates a planar translation of both camera and target along
	// the camera's local right/up axes.
	//
	// Parameters:
	//   - dx: horizontal pointer delta
	//   - dy: vertical pointer delta
	Pan(dx, dy float32)

	// Zoom accumulates a radius change. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: scroll delta scaled by the zoom speed
	Zoom(delta float32)

	// Update advances the damping integration by dt seconds and writes the
	// resulting position and look-at onto the bound camera. Call once per
	// rendered frame. No-op after Dispose.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous update
	Update(dt float32)

	// Sync recomputes the controller's spherical coordinates from the
	// camera's current position relative to the target. Call after writing
	// the camera pose directly (e.g. restoring a serialized camera state).
	Sync()

	// Dispose releases the controller. Further input and updates are no-ops.
	Dispose()
}

package gizmo

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*gizmoControllerImpl)

// WithMode sets the initial manipulation mode.
//
// Parameters:
//   - mode: the starting mode
//
// Returns:
//   - ControllerBuilderOption: functional option to set the mode
func WithMode(mode Mode) ControllerBuilderOption {
	return func(g *gizmoControllerImpl) {
		g.mode = mode
	}
}

// WithHandleLength sets the reach of the translate/scale axis handles.
//
// Parameters:
//   - length: handle length in world units (must be > 0 to have effect)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the handle length
func WithHandleLength(length float32) ControllerBuilderOption {
	return func(g *gizmoControllerImpl) {
		if length > 0 {
			g.handleLength = length
		}
	}
}

// WithHitDistance sets how close a pointer ray must pass to an axis handle to
// grab it.
//
// Parameters:
//   - dist: pick tolerance in world units (must be > 0 to have effect)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the pick tolerance
func WithHitDistance(dist float32) ControllerBuilderOption {
	return func(g *gizmoControllerImpl) {
		if dist > 0 {
			g.hitDistance = dist
		}
	}
}

// WithRingRadius sets the radius of the rotate rings.
//
// Parameters:
//   - radius: ring radius in world units (must be > 0 to have effect)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the ring radius
func WithRingRadius(radius float32) ControllerBuilderOption {
	return func(g *gizmoControllerImpl) {
		if radius > 0 {
			g.ringRadius = radius
		}
	}
}

// WithRingHitBand sets how far from a rotate ring's circle a pointer ray may
// land and still grab it.
//
// Parameters:
//   - band: pick tolerance in world units (must be > 0 to have effect)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the ring pick band
func WithRingHitBand(band float32) ControllerBuilderOption {
	return func(g *gizmoControllerImpl) {
		if band > 0 {
			g.ringHitBand = band
		}
	}
}

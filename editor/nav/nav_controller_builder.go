package nav

import "github.com/go-gl/mathgl/mgl32"

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*navControllerImpl)

// WithTarget sets the initial look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the pivot
//
// Returns:
//   - ControllerBuilderOption: functional option to set the target
func WithTarget(x, y, z float32) ControllerBuilderOption {
	return func(c *navControllerImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithDamping sets whether release-to-drift damping starts enabled.
//
// Parameters:
//   - enabled: whether damping is active
//
// Returns:
//   - ControllerBuilderOption: functional option to set damping
func WithDamping(enabled bool) ControllerBuilderOption {
	return func(c *navControllerImpl) {
		c.damping = enabled
	}
}

// WithDampingFactor sets the exponential decay rate of pending input.
// Higher values track the pointer more tightly; lower values drift longer.
//
// Parameters:
//   - factor: decay rate per second (must be > 0 to have effect)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the decay rate
func WithDampingFactor(factor float32) ControllerBuilderOption {
	return func(c *navControllerImpl) {
		if factor > 0 {
			c.dampingFactor = factor
		}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - ControllerBuilderOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) ControllerBuilderOption {
	return func(c *navControllerImpl) {
		c.minRadius = min
		c.maxRadius = max
	}
}

// WithOrbitSpeed sets the orbit sensitivity in radians per pointer unit.
//
// Parameters:
//   - speed: radians per pointer delta unit
//
// Returns:
//   - ControllerBuilderOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) ControllerBuilderOption {
	return func(c *navControllerImpl) {
		c.orbitSpeed = speed
	}
}

// WithPanSpeed sets the pan sensitivity per pointer unit.
//
// Parameters:
//   - speed: pan multiplier
//
// Returns:
//   - ControllerBuilderOption: functional option to set pan speed
func WithPanSpeed(speed float32) ControllerBuilderOption {
	return func(c *navControllerImpl) {
		c.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
//
// Parameters:
//   - speed: multiplier for scroll input
//
// Returns:
//   - ControllerBuilderOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(c *navControllerImpl) {
		c.zoomSpeed = speed
	}
}

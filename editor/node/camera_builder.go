package node

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a CameraNode.
type CameraBuilderOption func(*cameraImpl)

// WithCameraName sets the camera's display name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - CameraBuilderOption: functional option to set the name
func WithCameraName(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = name
	}
}

// WithCameraPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: functional option to set the position
func WithCameraPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithCameraTarget sets the initial look-at target.
//
// Parameters:
//   - x, y, z: target point components
//
// Returns:
//   - CameraBuilderOption: functional option to set the target
func WithCameraTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithFov sets the perspective field of view in radians.
//
// Parameters:
//   - fov: vertical field of view in radians
//
// Returns:
//   - CameraBuilderOption: functional option to set the field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the initial aspect ratio.
//
// Parameters:
//   - aspect: viewport width divided by height
//
// Returns:
//   - CameraBuilderOption: functional option to set the aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithOrthoFrustum sets the orthographic frustum bounds.
//
// Parameters:
//   - left, right, bottom, top: frustum bounds in view space
//
// Returns:
//   - CameraBuilderOption: functional option to set the frustum
func WithOrthoFrustum(left, right, bottom, top float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.left = left
		c.right = right
		c.bottom = bottom
		c.top = top
	}
}

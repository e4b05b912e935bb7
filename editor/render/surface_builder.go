package render

import "github.com/cogentcore/webgpu/wgpu"

// SurfaceBuilderOption is a functional option for configuring a Surface.
type SurfaceBuilderOption func(*wgpuSurfaceImpl)

// WithSize sets the initial pixel dimensions.
//
// Parameters:
//   - width: initial width in pixels (must be > 0 to have effect)
//   - height: initial height in pixels (must be > 0 to have effect)
//
// Returns:
//   - SurfaceBuilderOption: functional option to set the size
func WithSize(width, height int) SurfaceBuilderOption {
	return func(s *wgpuSurfaceImpl) {
		if width > 0 && height > 0 {
			s.width = width
			s.height = height
		}
	}
}

// WithSurfaceDescriptor binds the surface to a native window surface so
// frames are presented on screen. Without it the surface renders offscreen
// only.
//
// Parameters:
//   - desc: the native surface descriptor from the window layer
//
// Returns:
//   - SurfaceBuilderOption: functional option to set the descriptor
func WithSurfaceDescriptor(desc *wgpu.SurfaceDescriptor) SurfaceBuilderOption {
	return func(s *wgpuSurfaceImpl) {
		s.surfaceDescriptor = desc
	}
}

// WithClearColor sets the background clear color.
//
// Parameters:
//   - r, g, b, a: color components in [0, 1]
//
// Returns:
//   - SurfaceBuilderOption: functional option to set the clear color
func WithClearColor(r, g, b, a float64) SurfaceBuilderOption {
	return func(s *wgpuSurfaceImpl) {
		s.clearColor = wgpu.Color{R: r, G: g, B: b, A: a}
	}
}

// WithFallbackAdapter forces the software fallback adapter, useful on
// machines without a GPU.
//
// Parameters:
//   - force: whether to force the fallback adapter
//
// Returns:
//   - SurfaceBuilderOption: functional option to force the fallback adapter
func WithFallbackAdapter(force bool) SurfaceBuilderOption {
	return func(s *wgpuSurfaceImpl) {
		s.forceFallbackAdapter = force
	}
}

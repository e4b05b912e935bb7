// Package capability resolves the optional controller constructors the
// viewport depends on. Resolution may be asynchronous (controllers backed by
// lazily loaded resources), so the viewport races it against its own teardown
// and treats a failed resolve as a degraded-but-alive editor.
package capability

import (
	"context"

	"github.com/quarry3d/quarry/editor/gizmo"
	"github.com/quarry3d/quarry/editor/nav"
	"github.com/quarry3d/quarry/editor/node"
)

// Module bundles the controller constructors a viewport wires up once
// resolution completes.
type Module struct {
	// NewNavController constructs a navigation controller for a camera.
	NewNavController func(cam node.CameraNode, options ...nav.ControllerBuilderOption) nav.Controller

	// NewGizmoController constructs a transform gizmo controller for a camera.
	NewGizmoController func(cam node.CameraNode, options ...gizmo.ControllerBuilderOption) gizmo.Controller
}

// Complete reports whether both constructors are present.
//
// Returns:
//   - bool: true when the module can back a fully interactive viewport
func (m Module) Complete() bool {
	return m.NewNavController != nil && m.NewGizmoController != nil
}

// Resolver produces a Module, possibly blocking while backing resources load.
type Resolver interface {
	// Resolve returns the capability module, honoring context cancellation.
	//
	// Parameters:
	//   - ctx: cancellation context for the resolution
	//
	// Returns:
	//   - Module: the resolved module
	//   - error: an error if resolution failed or the context was cancelled
	Resolve(ctx context.Context) (Module, error)
}

type staticResolver struct {
	module Module
	err    error
}

var _ Resolver = &staticResolver{}

// DefaultResolver returns a resolver yielding the built-in nav and gizmo
// controller constructors.
//
// Returns:
//   - Resolver: the default resolver
func DefaultResolver() Resolver {
	return &staticResolver{
		module: Module{
			NewNavController:   nav.NewController,
			NewGizmoController: gizmo.NewController,
		},
	}
}

// NewStaticResolver returns a resolver that always yields the given module.
// Useful for swapping in alternative controller implementations.
//
// Parameters:
//   - m: the module to yield
//
// Returns:
//   - Resolver: the resolver
func NewStaticResolver(m Module) Resolver {
	return &staticResolver{module: m}
}

// NewFailingResolver returns a resolver that always fails with the given
// error.
//
// Parameters:
//   - err: the error to yield
//
// Returns:
//   - Resolver: the resolver
func NewFailingResolver(err error) Resolver {
	return &staticResolver{err: err}
}

func (r *staticResolver) Resolve(ctx context.Context) (Module, error) {
	select {
	case <-ctx.Done():
		return Module{}, ctx.Err()
	default:
	}
	if r.err != nil {
		return Module{}, r.err
	}
	return r.module, nil
}

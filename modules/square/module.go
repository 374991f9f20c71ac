// Package square implements the "square" type, a child of "rectangle". It
// overrides only "name"; "area" and "scale" resolve to the rectangle
// behaviors through the descriptor chain.
package square

import (
	"context"

	"github.com/vk/dispatchgo/internal/dispatch"
	"github.com/vk/dispatchgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Name returns the type's display name, overriding rectangle's.
func Name(ctx context.Context, self *dispatch.Self, _ *struct{}, _ *struct{}) (any, error) {
	return "square", nil
}

// Register registers the square behaviors with the engine.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register("square", "name", &registry.Behavior{
		Fn: Name,
	})
}

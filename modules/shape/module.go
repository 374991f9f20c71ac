// Package shape provides the default behaviors for the abstract "shape"
// type. It registers no implementation for the required operations ("name",
// "area", "scale"), so "shape" itself stays abstract; it only supplies the
// overridable "describe" behavior that descendants inherit.
package shape

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/dispatchgo/internal/dispatch"
	"github.com/vk/dispatchgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// State carries the attributes the describe behavior reads.
type State struct {
	Color string `cty:"color"`
}

// Describe composes the shape's self-description from its late-bound "name"
// and "area" operations. Because resolution starts from the handle's runtime
// tag, a circle handle reaches circle's implementations even though this
// behavior is registered on the base type.
func Describe(ctx context.Context, self *dispatch.Self, state *State, _ *struct{}) (any, error) {
	nameVal, err := self.Call(ctx, "name", nil)
	if err != nil {
		return nil, err
	}
	areaVal, err := self.Call(ctx, "area", nil)
	if err != nil {
		return nil, err
	}

	area, _ := areaVal.AsBigFloat().Float64()
	return fmt.Sprintf("Drawing a %s %s with area %g.", state.Color, nameVal.AsString(), area), nil
}

// Register registers the base behaviors with the engine.
func (m *Module) Register(r *registry.Registry) error {
	return r.Register("shape", "describe", &registry.Behavior{
		NewState:  func() any { return new(State) },
		StateType: reflect.TypeOf(State{}),
		Fn:        Describe,
	})
}

// Package circle implements the "circle" type: the required shape
// operations plus state mutation through "scale".
package circle

import (
	"context"
	"reflect"

	"github.com/vk/dispatchgo/internal/dispatch"
	"github.com/vk/dispatchgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// State carries the circle's instance attributes.
type State struct {
	Radius float64 `cty:"radius"`
}

// ScaleArgs defines the arguments for the "scale" operation.
type ScaleArgs struct {
	Factor float64 `cty:"factor"`
}

// Area computes the circle's area.
func Area(ctx context.Context, self *dispatch.Self, state *State, _ *struct{}) (any, error) {
	return 3.14159 * state.Radius * state.Radius, nil
}

// Name returns the type's display name.
func Name(ctx context.Context, self *dispatch.Self, _ *struct{}, _ *struct{}) (any, error) {
	return "circle", nil
}

// Scale multiplies the radius by the given factor. The mutated state is
// committed back to the handle by the dispatcher.
func Scale(ctx context.Context, self *dispatch.Self, state *State, args *ScaleArgs) (any, error) {
	state.Radius *= args.Factor
	return state.Radius, nil
}

// Register registers the circle behaviors with the engine.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.Register("circle", "area", &registry.Behavior{
		NewState:  func() any { return new(State) },
		StateType: reflect.TypeOf(State{}),
		Fn:        Area,
	}); err != nil {
		return err
	}
	if err := r.Register("circle", "name", &registry.Behavior{
		Fn: Name,
	}); err != nil {
		return err
	}
	return r.Register("circle", "scale", &registry.Behavior{
		NewState:  func() any { return new(State) },
		StateType: reflect.TypeOf(State{}),
		NewArgs:   func() any { return new(ScaleArgs) },
		ArgsType:  reflect.TypeOf(ScaleArgs{}),
		Fn:        Scale,
	})
}

// Package rectangle implements the "rectangle" type. Its behaviors are also
// inherited by "square", which only overrides "name".
package rectangle

import (
	"context"
	"reflect"

	"github.com/vk/dispatchgo/internal/dispatch"
	"github.com/vk/dispatchgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// State carries the rectangle's instance attributes.
type State struct {
	Width  float64 `cty:"width"`
	Height float64 `cty:"height"`
}

// ScaleArgs defines the arguments for the "scale" operation.
type ScaleArgs struct {
	Factor float64 `cty:"factor"`
}

// Area computes the rectangle's area.
func Area(ctx context.Context, self *dispatch.Self, state *State, _ *struct{}) (any, error) {
	return state.Width * state.Height, nil
}

// Name returns the type's display name.
func Name(ctx context.Context, self *dispatch.Self, _ *struct{}, _ *struct{}) (any, error) {
	return "rectangle", nil
}

// Scale multiplies both dimensions by the given factor.
func Scale(ctx context.Context, self *dispatch.Self, state *State, args *ScaleArgs) (any, error) {
	state.Width *= args.Factor
	state.Height *= args.Factor
	return state.Width * state.Height, nil
}

// Register registers the rectangle behaviors with the engine.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.Register("rectangle", "area", &registry.Behavior{
		NewState:  func() any { return new(State) },
		StateType: reflect.TypeOf(State{}),
		Fn:        Area,
	}); err != nil {
		return err
	}
	if err := r.Register("rectangle", "name", &registry.Behavior{
		Fn: Name,
	}); err != nil {
		return err
	}
	return r.Register("rectangle", "scale", &registry.Behavior{
		NewState:  func() any { return new(State) },
		StateType: reflect.TypeOf(State{}),
		NewArgs:   func() any { return new(ScaleArgs) },
		ArgsType:  reflect.TypeOf(ScaleArgs{}),
		Fn:        Scale,
	})
}

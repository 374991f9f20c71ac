package dispatch

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/vk/dispatchgo/internal/bind"
	"github.com/vk/dispatchgo/internal/config"
	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/vk/dispatchgo/internal/descriptor"
	"github.com/vk/dispatchgo/internal/object"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Dispatcher invokes operations on handles through the sealed descriptor
// set. It holds no mutable state of its own, so repeated invocations of the
// same operation on the same handle always resolve to the same behavior.
type Dispatcher struct {
	set *descriptor.Set
}

// New creates a dispatcher over a built descriptor set.
func New(set *descriptor.Set) *Dispatcher {
	return &Dispatcher{set: set}
}

// Self is the receiver view passed to every behavior. It exposes the
// handle's identity and re-entrant dispatch, so a behavior registered on a
// base type can invoke operations that a more derived type overrides.
//
// Nested calls run synchronously on the same goroutine. A nested call that
// mutates state commits immediately; because the outer behavior only commits
// the fields it actually changed, nested mutations survive the outer return
// unless the outer behavior wrote the same field, in which case the outer
// value wins.
type Self struct {
	d      *Dispatcher
	handle *object.Handle
}

// ID returns the identity of the handle being operated on.
func (s *Self) ID() uuid.UUID { return s.handle.ID() }

// Tag returns the runtime type tag of the handle being operated on.
func (s *Self) Tag() string { return s.handle.Tag() }

// Call dispatches another operation on the same handle. Resolution starts
// from the handle's runtime tag, never from the type the calling behavior
// was registered on — this is what makes a base behavior's call land on the
// most derived implementation.
func (s *Self) Call(ctx context.Context, operation string, args map[string]cty.Value) (cty.Value, error) {
	return s.d.Invoke(ctx, s.handle, operation, args)
}

// Invoke resolves and calls the implementation of the named operation for
// the handle's runtime tag. The returned value is the behavior's result
// converted to cty; state mutated by the behavior is committed to the
// handle before Invoke returns.
func (d *Dispatcher) Invoke(ctx context.Context, h *object.Handle, operation string, args map[string]cty.Value) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx).With("object", h.ID().String(), "tag", h.Tag(), "operation", operation)

	if h.Released() {
		return cty.NilVal, fmt.Errorf("dispatch %s on %s: %w", operation, h.Tag(), object.ErrReleased)
	}

	res, err := d.set.Resolve(h.Tag(), operation)
	if err != nil {
		return cty.NilVal, fmt.Errorf("dispatch %s on %s: %w", operation, h.Tag(), err)
	}
	logger.Debug("Operation resolved.", "owner", res.Owner)

	b := res.Behavior
	fn := reflect.ValueOf(b.Fn)
	ft := fn.Type()
	if ft.Kind() != reflect.Func || ft.NumIn() != 4 || ft.NumOut() != 2 {
		return cty.NilVal, fmt.Errorf("behavior '%s.%s' has an invalid function signature %s", res.Owner, operation, ft)
	}

	coerced, err := coerceArgs(args, res.Contract)
	if err != nil {
		return cty.NilVal, fmt.Errorf("dispatch %s on %s: %w", operation, h.Tag(), err)
	}

	callArgs := make([]reflect.Value, 4)
	callArgs[0] = reflect.ValueOf(ctx)
	callArgs[1] = reflect.ValueOf(&Self{d: d, handle: h})

	var stateStruct any
	var baseline cty.Value
	if b.NewState != nil {
		stateStruct = b.NewState()
		if err := bind.Decode(ctx, h.State(), stateStruct); err != nil {
			return cty.NilVal, fmt.Errorf("failed to decode state for %s on %s: %w", operation, h.Tag(), err)
		}
		// Snapshot the decoded struct so the commit below can be limited to
		// the fields the behavior actually changed. Without the snapshot a
		// null optional attribute would round-trip through the struct's zero
		// value and be committed as "" or 0 even though the behavior never
		// touched it.
		baseline, err = bind.Encode(stateStruct)
		if err != nil {
			return cty.NilVal, fmt.Errorf("failed to encode state for %s on %s: %w", operation, h.Tag(), err)
		}
		callArgs[2] = reflect.ValueOf(stateStruct)
	} else {
		callArgs[2] = reflect.Zero(ft.In(2))
	}

	if b.NewArgs != nil {
		argsStruct := b.NewArgs()
		if err := bind.Decode(ctx, cty.ObjectVal(coerced), argsStruct); err != nil {
			return cty.NilVal, fmt.Errorf("failed to decode arguments for %s on %s: %w", operation, h.Tag(), err)
		}
		callArgs[3] = reflect.ValueOf(argsStruct)
	} else {
		callArgs[3] = reflect.Zero(ft.In(3))
	}

	logger.Debug("Calling behavior.", "behavior", fmt.Sprintf("%s.%s", res.Owner, operation))
	results := fn.Call(callArgs)
	if errResult := results[1].Interface(); errResult != nil {
		return cty.NilVal, errResult.(error)
	}

	// Commit the (possibly mutated) state back onto the handle. Only the
	// fields the behavior changed relative to the pre-call snapshot are
	// merged; untouched attributes, including null optionals, keep their
	// current values.
	if stateStruct != nil {
		updated, err := bind.Encode(stateStruct)
		if err != nil {
			return cty.NilVal, fmt.Errorf("failed to encode state after %s on %s: %w", operation, h.Tag(), err)
		}
		changed := diffStateAttrs(baseline, updated)
		if len(changed) > 0 {
			if err := h.Commit(cty.ObjectVal(changed)); err != nil {
				return cty.NilVal, fmt.Errorf("failed to commit state after %s on %s: %w", operation, h.Tag(), err)
			}
		}
	}

	out, err := bind.Encode(results[0].Interface())
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to convert result of %s on %s: %w", operation, h.Tag(), err)
	}

	if res.Contract.Returns != cty.NilType && !res.Contract.Returns.Equals(cty.DynamicPseudoType) && !out.IsNull() {
		converted, err := convert.Convert(out, res.Contract.Returns)
		if err != nil {
			return cty.NilVal, fmt.Errorf("result of %s on %s does not match declared type %s: %w", operation, h.Tag(), res.Contract.Returns.FriendlyName(), err)
		}
		out = converted
	}

	return out, nil
}

// diffStateAttrs returns the attributes of updated whose values differ from
// the pre-call baseline. Both values come from encoding the same state
// struct, so they carry the same attribute set.
func diffStateAttrs(baseline, updated cty.Value) map[string]cty.Value {
	if !updated.Type().IsObjectType() || !baseline.Type().IsObjectType() {
		return nil
	}
	before := baseline.AsValueMap()
	changed := make(map[string]cty.Value)
	for name, after := range updated.AsValueMap() {
		if prev, ok := before[name]; ok && prev.RawEquals(after) {
			continue
		}
		changed[name] = after
	}
	return changed
}

// coerceArgs validates the provided arguments against the operation's
// declared parameters, applies defaults, and converts every value to its
// declared type.
func coerceArgs(args map[string]cty.Value, op *config.OperationDefinition) (map[string]cty.Value, error) {
	for name := range args {
		if _, ok := op.Params[name]; !ok {
			return nil, fmt.Errorf("operation %q declares no parameter %q", op.Name, name)
		}
	}

	coerced := make(map[string]cty.Value, len(op.Params))
	for name, param := range op.Params {
		raw, ok := args[name]
		switch {
		case ok:
			converted, err := convert.Convert(raw, param.Type)
			if err != nil {
				return nil, fmt.Errorf("parameter %q of operation %q: %w", name, op.Name, err)
			}
			coerced[name] = converted
		case param.Default != nil:
			coerced[name] = *param.Default
		case param.Optional:
			coerced[name] = cty.NullVal(param.Type)
		default:
			return nil, fmt.Errorf("missing required parameter %q for operation %q", name, op.Name)
		}
	}
	return coerced, nil
}

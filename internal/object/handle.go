package object

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vk/dispatchgo/internal/descriptor"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

var (
	// ErrAbstractInstantiation is returned when creating a handle for a type
	// whose required operations do not all resolve.
	ErrAbstractInstantiation = errors.New("cannot instantiate abstract type")

	// ErrReleased is returned when a released handle is used.
	ErrReleased = errors.New("handle has been released")
)

// Handle is an opaque reference to one object: a unique identity, an
// immutable type tag, and private instance state held as a cty object.
type Handle struct {
	id       uuid.UUID
	tag      string
	desc     *descriptor.Descriptor
	state    cty.Value
	released bool
}

// New creates a handle of the given type, validating the initial state
// against the type's merged attribute schema. Creation fails with
// ErrAbstractInstantiation if, and only if, the type is not concrete.
func New(set *descriptor.Set, tag string, initial map[string]cty.Value) (*Handle, error) {
	d, err := set.Get(tag)
	if err != nil {
		return nil, err
	}

	if !d.IsConcrete() {
		return nil, fmt.Errorf("%w: type %q has unimplemented required operations: %s",
			ErrAbstractInstantiation, tag, strings.Join(d.MissingOperations(), ", "))
	}

	attrs := d.Attributes()
	for name := range initial {
		if _, ok := attrs[name]; !ok {
			return nil, fmt.Errorf("type %q declares no attribute %q", tag, name)
		}
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		raw, ok := initial[name]
		switch {
		case ok:
			converted, err := convert.Convert(raw, attr.Type)
			if err != nil {
				return nil, fmt.Errorf("attribute %q of type %q: %w", name, tag, err)
			}
			values[name] = converted
		case attr.Default != nil:
			values[name] = *attr.Default
		case attr.Optional:
			values[name] = cty.NullVal(attr.Type)
		default:
			return nil, fmt.Errorf("missing required attribute %q for type %q", name, tag)
		}
	}

	return &Handle{
		id:    uuid.New(),
		tag:   tag,
		desc:  d,
		state: cty.ObjectVal(values),
	}, nil
}

// ID returns the handle's unique identity.
func (h *Handle) ID() uuid.UUID { return h.id }

// Tag returns the handle's type tag. The tag never changes after creation;
// it is what dispatch reads to pick the implementation.
func (h *Handle) Tag() string { return h.tag }

// State returns the current instance state as an immutable cty object.
func (h *Handle) State() cty.Value { return h.state }

// Released reports whether the handle has been released.
func (h *Handle) Released() bool { return h.released }

// Commit merges updated attribute values into the handle's state, validating
// each against the declared schema. It is the capability granted to the
// dispatcher so operations can mutate state; application code must go
// through dispatched operations instead of calling it directly.
func (h *Handle) Commit(updates cty.Value) error {
	if h.released {
		return fmt.Errorf("%w: %s handle %s", ErrReleased, h.tag, h.id)
	}
	if updates.IsNull() || !updates.Type().IsObjectType() {
		return fmt.Errorf("state update for %q must be a cty object, got %s", h.tag, updates.Type().FriendlyName())
	}

	attrs := h.desc.Attributes()
	merged := h.state.AsValueMap()
	for name, raw := range updates.AsValueMap() {
		attr, ok := attrs[name]
		if !ok {
			return fmt.Errorf("type %q declares no attribute %q", h.tag, name)
		}
		converted, err := convert.Convert(raw, attr.Type)
		if err != nil {
			return fmt.Errorf("attribute %q of type %q: %w", name, h.tag, err)
		}
		merged[name] = converted
	}

	h.state = cty.ObjectVal(merged)
	return nil
}

// Release marks the handle dead. Any later dispatch or commit fails with
// ErrReleased. Releasing twice is a no-op.
func (h *Handle) Release() {
	h.released = true
}

package descriptor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/dispatchgo/internal/config"
	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/vk/dispatchgo/internal/registry"
)

var (
	// ErrDuplicateType is returned when a tag is declared twice.
	ErrDuplicateType = errors.New("type already declared")

	// ErrUnknownParent is returned when a type names a parent that has not
	// been declared before it.
	ErrUnknownParent = errors.New("unknown parent type")

	// ErrUnknownType is returned when an undeclared tag is referenced.
	ErrUnknownType = errors.New("unknown type")

	// ErrUnresolvedOperation is returned when an operation cannot be
	// resolved anywhere along a type's ancestor chain.
	ErrUnresolvedOperation = errors.New("unresolved operation")
)

// Resolved is one entry of a type's dispatch table: the behavior that wins
// for an operation, together with the tag it was registered on and the
// operation contract it fulfills.
type Resolved struct {
	Owner    string
	Contract *config.OperationDefinition
	Behavior *registry.Behavior
}

// Descriptor is the metadata record for one declared type.
type Descriptor struct {
	tag    string
	parent *Descriptor

	// attrs and ops are the merged views over the whole ancestor chain.
	attrs map[string]*config.AttributeDefinition
	ops   map[string]*config.OperationDefinition

	// table is the flattened dispatch table. A child registration for an
	// operation replaces the inherited entry.
	table map[string]*Resolved

	// missing lists required operations with no registered behavior
	// anywhere in the chain. Empty means the type is concrete.
	missing []string
}

// Tag returns the type's unique tag.
func (d *Descriptor) Tag() string { return d.tag }

// Parent returns the parent descriptor, or nil for a root type.
func (d *Descriptor) Parent() *Descriptor { return d.parent }

// Attributes returns the merged attribute schema for the type, including
// inherited attributes.
func (d *Descriptor) Attributes() map[string]*config.AttributeDefinition { return d.attrs }

// Operations returns the merged operation contracts for the type.
func (d *Descriptor) Operations() map[string]*config.OperationDefinition { return d.ops }

// IsConcrete reports whether every required operation in the ancestor chain
// resolves to a registered behavior.
func (d *Descriptor) IsConcrete() bool { return len(d.missing) == 0 }

// MissingOperations returns the required operations that keep the type
// abstract, sorted by name.
func (d *Descriptor) MissingOperations() []string { return d.missing }

// Set is the sealed collection of all declared descriptors.
type Set struct {
	types map[string]*Descriptor
	order []string
}

// Build constructs the descriptor set from the loaded model and the
// populated behavior registry. Types are processed in declaration order, so
// a parent must be declared before any of its children; this also rules out
// cycles in the ancestry by construction.
func Build(ctx context.Context, model *config.Model, reg *registry.Registry) (*Set, error) {
	logger := ctxlog.FromContext(ctx)

	s := &Set{types: make(map[string]*Descriptor)}

	for _, td := range model.Types {
		if _, exists := s.types[td.Tag]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateType, td.Tag)
		}

		var parent *Descriptor
		if td.Parent != "" {
			p, ok := s.types[td.Parent]
			if !ok {
				return nil, fmt.Errorf("%w: type %q declares parent %q", ErrUnknownParent, td.Tag, td.Parent)
			}
			parent = p
		}

		d := &Descriptor{
			tag:    td.Tag,
			parent: parent,
			attrs:  make(map[string]*config.AttributeDefinition),
			ops:    make(map[string]*config.OperationDefinition),
			table:  make(map[string]*Resolved),
		}

		if parent != nil {
			for name, attr := range parent.attrs {
				d.attrs[name] = attr
			}
			for name, op := range parent.ops {
				d.ops[name] = op
			}
			for name, res := range parent.table {
				d.table[name] = res
			}
		}

		for name, attr := range td.Attributes {
			if _, exists := d.attrs[name]; exists {
				return nil, fmt.Errorf("type %q redeclares inherited attribute %q", td.Tag, name)
			}
			d.attrs[name] = attr
		}
		for name, op := range td.Operations {
			if _, exists := d.ops[name]; exists {
				return nil, fmt.Errorf("type %q redeclares inherited operation %q", td.Tag, name)
			}
			d.ops[name] = op
		}

		// Own registrations override anything inherited from the chain.
		for name, op := range d.ops {
			if b, ok := reg.Lookup(td.Tag, name); ok {
				d.table[name] = &Resolved{Owner: td.Tag, Contract: op, Behavior: b}
			}
		}

		for name, op := range d.ops {
			if !op.Required {
				continue
			}
			if _, ok := d.table[name]; !ok {
				d.missing = append(d.missing, name)
			}
		}
		sort.Strings(d.missing)

		s.types[td.Tag] = d
		s.order = append(s.order, td.Tag)

		logger.Debug("Type descriptor built.",
			"tag", d.tag,
			"operations", len(d.ops),
			"resolved", len(d.table),
			"concrete", d.IsConcrete(),
		)
	}

	return s, nil
}

// Get returns the descriptor for the given tag.
func (s *Set) Get(tag string) (*Descriptor, error) {
	d, ok := s.types[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return d, nil
}

// Tags returns all declared tags in declaration order.
func (s *Set) Tags() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Resolve returns the winning behavior for an operation on the given tag.
// Precedence follows the chain most-derived first: a behavior registered on
// the tag itself always beats one inherited from an ancestor.
func (s *Set) Resolve(tag, operation string) (*Resolved, error) {
	d, err := s.Get(tag)
	if err != nil {
		return nil, err
	}
	res, ok := d.table[operation]
	if !ok {
		return nil, fmt.Errorf("%w: %q on type %q", ErrUnresolvedOperation, operation, tag)
	}
	return res, nil
}

// IsConcrete reports whether the given tag may be instantiated.
func (s *Set) IsConcrete(tag string) (bool, error) {
	d, err := s.Get(tag)
	if err != nil {
		return false, err
	}
	return d.IsConcrete(), nil
}

package config

import (
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of everything the
// engine loads from manifest and scenario files: the declared type graph
// and the driver scenario.
type Model struct {
	// Types preserves declaration order. A type naming a parent that has
	// not been declared earlier in this slice is a setup error.
	Types    []*TypeDefinition
	Scenario *Scenario
}

// TypeDefinition is the format-agnostic representation of a `type` block.
type TypeDefinition struct {
	Tag         string
	Parent      string // empty for a root type
	Description string
	Attributes  map[string]*AttributeDefinition
	Operations  map[string]*OperationDefinition
}

// AttributeDefinition declares a single instance-state field for a type.
// Attributes are inherited by descendant types and may not be redeclared.
type AttributeDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
	Optional    bool
}

// OperationDefinition declares a named operation contract on a type.
//
// A required operation must resolve to a registered behavior somewhere along
// the descriptor chain before the type counts as concrete. A non-required
// operation is a plain overridable: it may resolve to an ancestor's behavior,
// and invoking it without any registration anywhere in the chain fails at
// dispatch time.
type OperationDefinition struct {
	Name        string
	Required    bool
	Description string
	Params      map[string]*ParamDefinition
	Returns     cty.Type
}

// ParamDefinition declares a single argument for an operation.
type ParamDefinition struct {
	Name     string
	Type     cty.Type
	Default  *cty.Value
	Optional bool
}

// Scenario is the fixed driver sequence: objects to construct, in order,
// followed by calls to dispatch, in order.
type Scenario struct {
	Objects []*ObjectDecl
	Calls   []*CallDecl
}

// ObjectDecl is the format-agnostic representation of an `object` block.
// State values are evaluated at load time so the model carries no
// format-specific expression types.
type ObjectDecl struct {
	Name    string
	TypeTag string
	State   map[string]cty.Value
}

// CallDecl is the format-agnostic representation of a `call` block.
type CallDecl struct {
	Object    string
	Operation string
	Args      map[string]cty.Value
}

// NewModel creates an empty model ready for a loader to populate.
func NewModel() *Model {
	return &Model{
		Scenario: &Scenario{},
	}
}

// Merge appends another model's declarations onto this one, preserving
// encounter order. Duplicate tags are left for descriptor construction to
// reject, so the error surfaces with full context.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Types = append(m.Types, other.Types...)
	if other.Scenario != nil {
		m.Scenario.Objects = append(m.Scenario.Objects, other.Scenario.Objects...)
		m.Scenario.Calls = append(m.Scenario.Calls, other.Scenario.Calls...)
	}
}

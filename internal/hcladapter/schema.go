package hcladapter

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is a struct used to decode all possible top-level blocks from any
// file. Manifests and scenarios may share files or be split freely.
type fileRoot struct {
	Types   []*typeBlock   `hcl:"type,block"`
	Objects []*objectBlock `hcl:"object,block"`
	Calls   []*callBlock   `hcl:"call,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// typeBlock represents a `type` block: one node of the descriptor graph.
type typeBlock struct {
	Tag         string            `hcl:"tag,label"`
	Parent      string            `hcl:"parent,optional"`
	Description string            `hcl:"description,optional"`
	Attributes  []*attributeBlock `hcl:"attribute,block"`
	Operations  []*operationBlock `hcl:"operation,block"`
}

// attributeBlock declares one instance-state field.
type attributeBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Optional    bool           `hcl:"optional,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// operationBlock declares one operation contract. `required = true` models a
// pure virtual: every instantiable descendant must have an implementation
// somewhere in its chain.
type operationBlock struct {
	Name        string         `hcl:"name,label"`
	Required    bool           `hcl:"required,optional"`
	Description string         `hcl:"description,optional"`
	Returns     hcl.Expression `hcl:"returns,optional"`
	Params      []*paramBlock  `hcl:"param,block"`
}

// paramBlock declares one operation argument.
type paramBlock struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type"`
	Optional bool           `hcl:"optional,optional"`
	Default  hcl.Expression `hcl:"default,optional"`
}

// stateBlock carries arbitrary attribute assignments for an object.
type stateBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// argsBlock carries arbitrary argument assignments for a call.
type argsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// objectBlock represents an `object` block from a scenario file.
type objectBlock struct {
	Name  string      `hcl:"name,label"`
	Type  string      `hcl:"type"`
	State *stateBlock `hcl:"state,block"`
}

// callBlock represents a `call` block from a scenario file.
type callBlock struct {
	Object    string     `hcl:"object"`
	Operation string     `hcl:"operation"`
	Args      *argsBlock `hcl:"args,block"`
}

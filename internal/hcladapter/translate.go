// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic configuration model defined in the config package.

package hcladapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/dispatchgo/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// translateType converts an HCL `type` block into the agnostic model.
func (l *Loader) translateType(tb *typeBlock) (*config.TypeDefinition, error) {
	def := &config.TypeDefinition{
		Tag:         tb.Tag,
		Parent:      tb.Parent,
		Description: tb.Description,
		Attributes:  make(map[string]*config.AttributeDefinition),
		Operations:  make(map[string]*config.OperationDefinition),
	}

	for _, ab := range tb.Attributes {
		if _, exists := def.Attributes[ab.Name]; exists {
			return nil, fmt.Errorf("type %q declares attribute %q twice", tb.Tag, ab.Name)
		}
		attr, err := l.translateAttribute(tb.Tag, ab)
		if err != nil {
			return nil, err
		}
		def.Attributes[ab.Name] = attr
	}

	for _, ob := range tb.Operations {
		if _, exists := def.Operations[ob.Name]; exists {
			return nil, fmt.Errorf("type %q declares operation %q twice", tb.Tag, ob.Name)
		}
		op, err := l.translateOperation(tb.Tag, ob)
		if err != nil {
			return nil, err
		}
		def.Operations[ob.Name] = op
	}

	return def, nil
}

// translateAttribute processes a single `attribute` block, handling its
// declared type and optional default value.
func (l *Loader) translateAttribute(tag string, ab *attributeBlock) (*config.AttributeDefinition, error) {
	parsedType, err := typeExprToCtyType(ab.Type)
	if err != nil {
		return nil, fmt.Errorf("in type %q, attribute %q: %w", tag, ab.Name, err)
	}

	defaultVal, err := evaluateDefault(ab.Default, parsedType)
	if err != nil {
		return nil, fmt.Errorf("in type %q, attribute %q: %w", tag, ab.Name, err)
	}

	return &config.AttributeDefinition{
		Name:        ab.Name,
		Type:        parsedType,
		Description: ab.Description,
		Default:     defaultVal,
		Optional:    ab.Optional || defaultVal != nil,
	}, nil
}

// translateOperation processes a single `operation` block and its params.
func (l *Loader) translateOperation(tag string, ob *operationBlock) (*config.OperationDefinition, error) {
	op := &config.OperationDefinition{
		Name:        ob.Name,
		Required:    ob.Required,
		Description: ob.Description,
		Params:      make(map[string]*config.ParamDefinition),
		Returns:     cty.NilType,
	}

	if isExprDefined(ob.Returns) {
		parsedType, err := typeExprToCtyType(ob.Returns)
		if err != nil {
			return nil, fmt.Errorf("in type %q, operation %q: %w", tag, ob.Name, err)
		}
		op.Returns = parsedType
	}

	for _, pb := range ob.Params {
		if _, exists := op.Params[pb.Name]; exists {
			return nil, fmt.Errorf("type %q, operation %q declares parameter %q twice", tag, ob.Name, pb.Name)
		}

		parsedType, err := typeExprToCtyType(pb.Type)
		if err != nil {
			return nil, fmt.Errorf("in type %q, operation %q, param %q: %w", tag, ob.Name, pb.Name, err)
		}
		defaultVal, err := evaluateDefault(pb.Default, parsedType)
		if err != nil {
			return nil, fmt.Errorf("in type %q, operation %q, param %q: %w", tag, ob.Name, pb.Name, err)
		}

		op.Params[pb.Name] = &config.ParamDefinition{
			Name:     pb.Name,
			Type:     parsedType,
			Default:  defaultVal,
			Optional: pb.Optional || defaultVal != nil,
		}
	}

	return op, nil
}

// translateObject converts an `object` block into the agnostic model,
// evaluating its state expressions.
func (l *Loader) translateObject(ob *objectBlock) (*config.ObjectDecl, error) {
	var body hcl.Body
	if ob.State != nil {
		body = ob.State.Body
	}
	state, err := extractBodyValues(body)
	if err != nil {
		return nil, fmt.Errorf("in object %q: %w", ob.Name, err)
	}
	return &config.ObjectDecl{
		Name:    ob.Name,
		TypeTag: ob.Type,
		State:   state,
	}, nil
}

// translateCall converts a `call` block into the agnostic model, evaluating
// its argument expressions.
func (l *Loader) translateCall(cb *callBlock) (*config.CallDecl, error) {
	var body hcl.Body
	if cb.Args != nil {
		body = cb.Args.Body
	}
	args, err := extractBodyValues(body)
	if err != nil {
		return nil, fmt.Errorf("in call %s.%s: %w", cb.Object, cb.Operation, err)
	}
	return &config.CallDecl{
		Object:    cb.Object,
		Operation: cb.Operation,
		Args:      args,
	}, nil
}

// extractBodyValues evaluates every attribute of a free-form block body.
// Scenario values are literals; there is no evaluation context to reference.
func extractBodyValues(body hcl.Body) (map[string]cty.Value, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	if len(attrs) == 0 {
		return nil, nil
	}

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value for %q: %w", name, diags)
		}
		values[name] = val
	}
	return values, nil
}

// evaluateDefault evaluates a `default` expression, when present, and
// converts it to the declared type.
func evaluateDefault(expr hcl.Expression, want cty.Type) (*cty.Value, error) {
	if !isExprDefined(expr) {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid default value: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return nil, fmt.Errorf("default value does not match declared type %s: %w", want.FriendlyName(), err)
	}
	return &converted, nil
}

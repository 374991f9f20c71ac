package descriptor

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vk/dispatchgo/internal/config"
	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/vk/dispatchgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Validate performs a strict parity check between the declared manifests and
// the registered Go behaviors. It checks that every behavior targets a
// declared type and operation, that state structs only name declared
// attributes with compatible types, and that args structs match the declared
// parameters exactly. All problems are reported at once.
func (s *Set) Validate(ctx context.Context, reg *registry.Registry) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	keys := make([]registry.Key, 0, len(reg.Behaviors))
	for key := range reg.Behaviors {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Tag != keys[j].Tag {
			return keys[i].Tag < keys[j].Tag
		}
		return keys[i].Operation < keys[j].Operation
	})

	for _, key := range keys {
		b := reg.Behaviors[key]

		d, ok := s.types[key.Tag]
		if !ok {
			errs = append(errs, fmt.Sprintf("behavior '%s': registered for undeclared type '%s'", key, key.Tag))
			continue
		}

		opDef, ok := d.ops[key.Operation]
		if !ok {
			errs = append(errs, fmt.Sprintf("behavior '%s': type '%s' declares no operation '%s' anywhere in its chain", key, key.Tag, key.Operation))
			continue
		}

		errs = append(errs, checkStateStruct(ctx, key, b.StateType, d.attrs)...)
		errs = append(errs, checkArgsStruct(ctx, key, b.ArgsType, opDef)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "behaviors", len(reg.Behaviors))
	return nil
}

// checkStateStruct validates a behavior's state struct against the merged
// attribute schema of the tag it is registered on. The check is one-way:
// a state struct may carry fewer fields than the schema declares, since a
// behavior only decodes the attributes it reads.
func checkStateStruct(ctx context.Context, key registry.Key, stateType reflect.Type, attrs map[string]*config.AttributeDefinition) []string {
	if stateType == nil {
		return nil
	}

	var errs []string
	for name, field := range taggedFields(stateType) {
		attr, ok := attrs[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("behavior '%s': state field '%s' maps to attribute '%s' which is not declared for type '%s'", key, field.Name, name, key.Tag))
			continue
		}
		if msg := checkFieldType(ctx, key, field, name, attr.Type); msg != "" {
			errs = append(errs, msg)
		}
	}
	return errs
}

// checkArgsStruct validates a behavior's args struct against the declared
// parameters of the operation contract it implements. Unlike state, the
// check runs both ways: a declared parameter with no struct field would be
// silently dropped at dispatch, so it is a setup error.
func checkArgsStruct(ctx context.Context, key registry.Key, argsType reflect.Type, op *config.OperationDefinition) []string {
	if argsType == nil {
		if len(op.Params) > 0 {
			return []string{fmt.Sprintf("behavior '%s': operation declares parameters, but Go behavior has no args struct", key)}
		}
		return nil
	}

	var errs []string
	fields := taggedFields(argsType)

	for name, field := range fields {
		param, ok := op.Params[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("behavior '%s': args field '%s' maps to parameter '%s' which is not declared on operation '%s'", key, field.Name, name, op.Name))
			continue
		}
		if msg := checkFieldType(ctx, key, field, name, param.Type); msg != "" {
			errs = append(errs, msg)
		}
	}

	for name := range op.Params {
		if _, ok := fields[name]; !ok {
			errs = append(errs, fmt.Sprintf("behavior '%s': operation '%s' declares parameter '%s' which is not found in the Go args struct", key, op.Name, name))
		}
	}
	return errs
}

// checkFieldType compares a Go struct field's implied cty type against the
// declared manifest type. Returns an empty string when compatible.
func checkFieldType(ctx context.Context, key registry.Key, field reflect.StructField, name string, declared cty.Type) string {
	if field.Type == reflect.TypeOf(cty.Value{}) {
		return "" // Raw cty.Value fields accept anything.
	}

	if declared.Equals(cty.DynamicPseudoType) {
		ctxlog.FromContext(ctx).Warn("Declared type 'any' disables static type checking. Consider using a specific type like 'string', 'number', or 'bool'.", "behavior", key.String(), "field", name)
		return ""
	}

	impliedType, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
	if err != nil {
		return fmt.Sprintf("behavior '%s', field '%s': could not imply cty type from Go type %s: %v", key, name, field.Type, err)
	}

	if !declared.Equals(impliedType) {
		return fmt.Sprintf("behavior '%s', field '%s': type mismatch: manifest requires '%s', but Go struct field '%s' provides '%s'", key, name, declared.FriendlyName(), field.Name, impliedType.FriendlyName())
	}
	return ""
}

// taggedFields collects the exported struct fields that carry a `cty` tag,
// keyed by tag name.
func taggedFields(t reflect.Type) map[string]reflect.StructField {
	out := make(map[string]reflect.StructField)
	if t == nil || t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get("cty"), ",")[0]
		if tagName == "" || tagName == "-" {
			continue
		}
		out[tagName] = field
	}
	return out
}

package bind

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/dispatchgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decode populates a Go value from a cty.Value. The target must be a non-nil
// pointer. Struct fields are matched to object attributes by their `cty` tag;
// attributes with no matching field are ignored, which lets a behavior's
// state struct carry only the attributes it actually reads.
func Decode(ctx context.Context, val cty.Value, target any) error {
	valPtr := reflect.ValueOf(target)
	if valPtr.Kind() != reflect.Ptr || valPtr.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}

	goPtr := valPtr.Elem()
	goType := goPtr.Type()
	logger := ctxlog.FromContext(ctx).With("go_kind", goType.Kind().String())

	// A target field of type cty.Value takes the value as-is, no decoding.
	if goType == reflect.TypeOf(cty.Value{}) {
		if val.IsKnown() {
			goPtr.Set(reflect.ValueOf(val))
		}
		return nil
	}

	if !val.IsKnown() || val.IsNull() {
		logger.Debug("Skipping decode for null or unknown value.")
		return nil
	}

	switch goType.Kind() {
	case reflect.Struct:
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return fmt.Errorf("type mismatch: cannot decode cty value of type %s into Go struct %s", val.Type().FriendlyName(), goType.String())
		}
		attrMap := val.AsValueMap()

		for i := 0; i < goType.NumField(); i++ {
			fieldDef := goType.Field(i)
			fieldVal := goPtr.Field(i)

			if !fieldDef.IsExported() || !fieldVal.CanSet() {
				continue
			}

			tagName := strings.Split(fieldDef.Tag.Get("cty"), ",")[0]
			if tagName == "" || tagName == "-" {
				continue
			}

			attrVal, ok := attrMap[tagName]
			if !ok {
				continue
			}

			if err := Decode(ctx, attrVal, fieldVal.Addr().Interface()); err != nil {
				return fmt.Errorf("in attribute %q: %w", tagName, err)
			}
		}
		return nil

	case reflect.Interface: // This handles 'any'.
		nativeVal, err := ToNative(val)
		if err != nil {
			return err
		}
		if nativeVal != nil {
			goPtr.Set(reflect.ValueOf(nativeVal))
		}
		return nil

	case reflect.Map:
		if goType.Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s: only string keys are supported", goType.Key())
		}
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return fmt.Errorf("type mismatch: cannot decode cty value of type %s into Go map %s", val.Type().FriendlyName(), goType.String())
		}
		newMap := reflect.MakeMap(goType)
		for key, elemVal := range val.AsValueMap() {
			elem := reflect.New(goType.Elem())
			if err := Decode(ctx, elemVal, elem.Interface()); err != nil {
				return fmt.Errorf("in map key %q: %w", key, err)
			}
			newMap.SetMapIndex(reflect.ValueOf(key), elem.Elem())
		}
		goPtr.Set(newMap)
		return nil

	case reflect.Slice:
		if !val.CanIterateElements() {
			return fmt.Errorf("type mismatch: cannot decode cty value of type %s into Go slice %s", val.Type().FriendlyName(), goType.String())
		}
		newSlice := reflect.MakeSlice(goType, val.LengthInt(), val.LengthInt())
		it := val.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, elemVal := it.Element()
			if err := Decode(ctx, elemVal, newSlice.Index(i).Addr().Interface()); err != nil {
				return fmt.Errorf("in slice element %d: %w", i, err)
			}
		}
		goPtr.Set(newSlice)
		return nil

	default: // Base cases for primitives (string, int, bool, float64, etc.)
		wantType, err := gocty.ImpliedType(goPtr.Interface())
		if err != nil {
			return fmt.Errorf("cannot imply cty type for Go %s: %w", goType.String(), err)
		}
		convertedVal, err := convert.Convert(val, wantType)
		if err != nil {
			return fmt.Errorf("cannot convert value of type %s to %s: %w", val.Type().FriendlyName(), wantType.FriendlyName(), err)
		}
		return gocty.FromCtyValue(convertedVal, target)
	}
}

// ToNative converts a cty.Value into an untyped Go value: numbers become
// float64, collections become []any or map[string]any.
func ToNative(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		it := val.ElementIterator()
		for it.Next() {
			_, elemVal := it.Element()
			native, err := ToNative(elemVal)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, val.LengthInt())
		for key, elemVal := range val.AsValueMap() {
			native, err := ToNative(elemVal)
			if err != nil {
				return nil, err
			}
			out[key] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
	}
}

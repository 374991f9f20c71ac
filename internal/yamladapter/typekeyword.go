package yamladapter

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// parseTypeKeyword converts a type keyword string into its cty.Type
// equivalent. It accepts the same grammar as the HCL adapter's type
// expressions: `string`, `number`, `bool`, `any`, the collection
// constructors `list(T)`, `map(T)` and `set(T)`, and the structural
// constructor `object({ key = type, ... })`.
func parseTypeKeyword(keyword string) (cty.Type, error) {
	keyword = strings.TrimSpace(keyword)

	switch keyword {
	case "":
		return cty.DynamicPseudoType, fmt.Errorf("missing type keyword")
	case "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	case "any":
		return cty.DynamicPseudoType, nil
	}

	open := strings.IndexByte(keyword, '(')
	if open < 0 || !strings.HasSuffix(keyword, ")") {
		return cty.DynamicPseudoType, fmt.Errorf("unknown primitive type %q", keyword)
	}
	inner := keyword[open+1 : len(keyword)-1]

	if keyword[:open] == "object" {
		return parseObjectBody(inner)
	}

	elementType, err := parseTypeKeyword(inner)
	if err != nil {
		return cty.DynamicPseudoType, err
	}
	if elementType == cty.DynamicPseudoType {
		return cty.DynamicPseudoType, fmt.Errorf("collection types cannot contain type 'any'")
	}

	switch keyword[:open] {
	case "list":
		return cty.List(elementType), nil
	case "map":
		return cty.Map(elementType), nil
	case "set":
		return cty.Set(elementType), nil
	default:
		return cty.DynamicPseudoType, fmt.Errorf("unknown type constructor function %q", keyword[:open])
	}
}

// parseObjectBody parses the object literal passed to object(). Keys may
// be simple identifiers or quoted strings, separated from their type by
// an equals sign.
func parseObjectBody(body string) (cty.Type, error) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		return cty.DynamicPseudoType, fmt.Errorf("the argument to object() must be an object literal like { key = type, ... }")
	}

	body = strings.TrimSpace(body[1 : len(body)-1])
	if body == "" {
		return cty.Object(map[string]cty.Type{}), nil
	}

	attrTypes := make(map[string]cty.Type)
	for _, pair := range splitTopLevel(body) {
		rawKey, rawType, found := strings.Cut(pair, "=")
		if !found {
			return cty.DynamicPseudoType, fmt.Errorf("invalid object attribute %q: expected key = type", strings.TrimSpace(pair))
		}

		key := strings.TrimSpace(rawKey)
		if strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) && len(key) >= 2 {
			key = key[1 : len(key)-1]
		}
		if key == "" || strings.ContainsAny(key, `"{}(), `) {
			return cty.DynamicPseudoType, fmt.Errorf("invalid key in object type definition: keys must be simple identifiers or quoted strings")
		}

		valueType, err := parseTypeKeyword(rawType)
		if err != nil {
			return cty.DynamicPseudoType, fmt.Errorf("in object attribute '%s': %w", key, err)
		}
		attrTypes[key] = valueType
	}

	return cty.Object(attrTypes), nil
}

// splitTopLevel splits a comma separated list while ignoring commas that
// sit inside nested parentheses or braces.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

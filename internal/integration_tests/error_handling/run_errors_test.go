package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/dispatchgo/internal/testutil"
)

// geometryTypesHCL is the hierarchy served by the built-in behavior modules.
const geometryTypesHCL = `
	type "shape" {
		attribute "color" {
			type     = string
			optional = true
			default  = "unknown"
		}

		operation "name" {
			required = true
			returns  = string
		}

		operation "area" {
			required = true
			returns  = number
		}

		operation "scale" {
			required = true
			returns  = number

			param "factor" {
				type = number
			}
		}

		operation "describe" {
			returns = string
		}
	}

	type "circle" {
		parent = "shape"

		attribute "radius" {
			type = number
		}
	}

	type "rectangle" {
		parent = "shape"

		attribute "width" {
			type = number
		}

		attribute "height" {
			type = number
		}
	}

	type "square" {
		parent = "rectangle"
	}
`

func TestErrorHandling_AbstractInstantiation(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// "shape" has required operations with no behaviors of its own, so it is
	// abstract and must not be constructible.
	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "blob" {
				type = "shape"
			}
		`,
	}

	// --- Act ---
	result := testutil.RunScenario(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "cannot instantiate abstract type")
	require.Contains(t, result.Err.Error(), "area", "the error should list the unimplemented operations")
}

func TestErrorHandling_UnknownObjectType(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "h1" {
				type = "hexagon"
			}
		`,
	}

	result := testutil.RunScenario(t, files)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "unknown type")
}

func TestErrorHandling_DuplicateObjectName(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "c1" {
				type = "circle"
				state { radius = 1 }
			}
			object "c1" {
				type = "circle"
				state { radius = 2 }
			}
		`,
	}

	result := testutil.RunScenario(t, files)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `declares object "c1" twice`)
}

func TestErrorHandling_CallOnUnknownObject(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "c1" {
				type = "circle"
				state { radius = 1 }
			}

			call {
				object    = "c2"
				operation = "area"
			}
		`,
	}

	result := testutil.RunScenario(t, files)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `unknown object "c2"`)
}

func TestErrorHandling_UnresolvedOperationAtDispatch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// "poke" is declared on the hierarchy nowhere, so resolution fails at
	// dispatch time, after the object was constructed fine.
	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "c1" {
				type = "circle"
				state { radius = 1 }
			}

			call {
				object    = "c1"
				operation = "poke"
			}
		`,
	}

	// --- Act ---
	result := testutil.RunScenario(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "unresolved operation")
}

func TestErrorHandling_MissingRequiredArgument(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "c1" {
				type = "circle"
				state { radius = 1 }
			}

			call {
				object    = "c1"
				operation = "scale"
			}
		`,
	}

	result := testutil.RunScenario(t, files)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `missing required parameter "factor"`)
}

func TestErrorHandling_UndeclaredArgument(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "c1" {
				type = "circle"
				state { radius = 1 }
			}

			call {
				object    = "c1"
				operation = "scale"
				args {
					factor    = 2
					magnitude = 3
				}
			}
		`,
	}

	result := testutil.RunScenario(t, files)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `declares no parameter "magnitude"`)
}

func TestErrorHandling_UndeclaredStateAttribute(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl": `
			object "c1" {
				type = "circle"
				state {
					radius   = 1
					diameter = 2
				}
			}
		`,
	}

	result := testutil.RunScenario(t, files)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), `no attribute "diameter"`)
}

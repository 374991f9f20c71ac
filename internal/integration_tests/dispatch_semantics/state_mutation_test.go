package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/dispatchgo/internal/testutil"
)

// TestDispatch_ScaleMutationIsVisibleToLaterCalls scales a circle, then
// reads its area again: the committed radius must feed the second dispatch.
func TestDispatch_ScaleMutationIsVisibleToLaterCalls(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	scenarioHCL := `
		object "c1" {
			type = "circle"
			state {
				radius = 2
			}
		}

		call {
			object    = "c1"
			operation = "area"
		}
		call {
			object    = "c1"
			operation = "scale"
			args {
				factor = 2
			}
		}
		call {
			object    = "c1"
			operation = "area"
		}
	`
	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl":  scenarioHCL,
	}

	// --- Act ---
	result := testutil.RunScenario(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)

	expected := "c1 (circle): area => 12.56636\n" +
		"c1 (circle): scale => 4\n" +
		"c1 (circle): area => 50.26544\n"
	require.Equal(t, expected, result.Output)
}

// TestDispatch_MutationScalesBothRectangleDimensions exercises the inherited
// scale on a square: rectangle's behavior multiplies width and height, so
// the area grows by the square of the factor.
func TestDispatch_MutationScalesBothRectangleDimensions(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	scenarioHCL := `
		object "s1" {
			type = "square"
			state {
				width  = 5
				height = 5
			}
		}

		call {
			object    = "s1"
			operation = "scale"
			args {
				factor = 2
			}
		}
		call {
			object    = "s1"
			operation = "area"
		}
	`
	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl":  scenarioHCL,
	}

	// --- Act ---
	result := testutil.RunScenario(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, "s1 (square): scale => 100\ns1 (square): area => 100\n", result.Output)
}

// TestDispatch_MutationIsPerHandle checks that committing state on one
// handle never leaks into another handle of the same type.
func TestDispatch_MutationIsPerHandle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	scenarioHCL := `
		object "big" {
			type = "circle"
			state {
				radius = 2
			}
		}

		object "small" {
			type = "circle"
			state {
				radius = 1
			}
		}

		call {
			object    = "big"
			operation = "scale"
			args {
				factor = 10
			}
		}
		call {
			object    = "small"
			operation = "area"
		}
	`
	files := map[string]string{
		"types.hcl": geometryTypesHCL,
		"main.hcl":  scenarioHCL,
	}

	// --- Act ---
	result := testutil.RunScenario(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, "big (circle): scale => 20\nsmall (circle): area => 3.14159\n", result.Output)
}

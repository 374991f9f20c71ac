package integration_tests

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/dispatchgo/internal/dispatch"
	"github.com/vk/dispatchgo/internal/registry"
	"github.com/vk/dispatchgo/internal/testutil"
)

// TestTypeSystem_CollectionAttributesDecode declares list and map
// attributes and checks they arrive in the behavior's state struct as the
// corresponding Go collections.
func TestTypeSystem_CollectionAttributesDecode(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	typesHCL := `
		type "inventory" {
			attribute "items" {
				type = list(string)
			}

			attribute "counts" {
				type = map(number)
			}

			operation "audit" {
				required = true
			}
		}
	`
	scenarioHCL := `
		object "store" {
			type = "inventory"
			state {
				items  = ["bolt", "nut"]
				counts = {
					bolt = 3
					nut  = 7
				}
			}
		}

		call {
			object    = "store"
			operation = "audit"
		}
	`
	files := map[string]string{
		"types.hcl": typesHCL,
		"main.hcl":  scenarioHCL,
	}

	type inventoryState struct {
		Items  []string           `cty:"items"`
		Counts map[string]float64 `cty:"counts"`
	}

	var mu sync.Mutex
	var captured inventoryState

	mockModule := &testutil.SimpleModule{
		Tag:       "inventory",
		Operation: "audit",
		Behavior: &registry.Behavior{
			NewState:  func() any { return new(inventoryState) },
			StateType: reflect.TypeOf(inventoryState{}),
			Fn: func(ctx context.Context, self *dispatch.Self, state *inventoryState, _ *struct{}) (any, error) {
				mu.Lock()
				captured = *state
				mu.Unlock()
				return nil, nil
			},
		},
	}

	// --- Act ---
	result := testutil.RunScenario(t, files, mockModule)

	// --- Assert ---
	require.NoError(t, result.Err)

	expected := inventoryState{
		Items:  []string{"bolt", "nut"},
		Counts: map[string]float64{"bolt": 3, "nut": 7},
	}

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff(expected, captured); diff != "" {
		t.Errorf("captured state mismatch (-want +got):\n%s", diff)
	}
}

// TestTypeSystem_DefaultsAndOptionals leaves a defaulted attribute and an
// optional parameter unset and checks the declared fallbacks arrive in the
// behavior.
func TestTypeSystem_DefaultsAndOptionals(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	typesHCL := `
		type "greeter" {
			attribute "greeting" {
				type    = string
				default = "hello"
			}

			attribute "suffix" {
				type     = string
				optional = true
			}

			operation "greet" {
				required = true
				returns  = string

				param "target" {
					type    = string
					default = "world"
				}
			}
		}
	`
	scenarioHCL := `
		object "g" {
			type = "greeter"
		}

		call {
			object    = "g"
			operation = "greet"
		}
	`
	files := map[string]string{
		"types.hcl": typesHCL,
		"main.hcl":  scenarioHCL,
	}

	type greeterState struct {
		Greeting string `cty:"greeting"`
		Suffix   string `cty:"suffix"`
	}
	type greetArgs struct {
		Target string `cty:"target"`
	}

	mockModule := &testutil.SimpleModule{
		Tag:       "greeter",
		Operation: "greet",
		Behavior: &registry.Behavior{
			NewState:  func() any { return new(greeterState) },
			StateType: reflect.TypeOf(greeterState{}),
			NewArgs:   func() any { return new(greetArgs) },
			ArgsType:  reflect.TypeOf(greetArgs{}),
			Fn: func(ctx context.Context, self *dispatch.Self, state *greeterState, args *greetArgs) (any, error) {
				return state.Greeting + " " + args.Target + state.Suffix, nil
			},
		},
	}

	// --- Act ---
	result := testutil.RunScenario(t, files, mockModule)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, "g (greeter): greet => hello world\n", result.Output)
}

// TestTypeSystem_AnyAttributePassesThrough stores a heterogeneous value in
// an any-typed attribute and reads it back untouched through a raw
// cty.Value state field.
func TestTypeSystem_AnyAttributePassesThrough(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	typesHCL := `
		type "box" {
			attribute "payload" {
				type = any
			}

			operation "open" {
				required = true
			}
		}
	`
	scenarioHCL := `
		object "b" {
			type = "box"
			state {
				payload = ["mixed", 1, true]
			}
		}

		call {
			object    = "b"
			operation = "open"
		}
	`
	files := map[string]string{
		"types.hcl": typesHCL,
		"main.hcl":  scenarioHCL,
	}

	type boxState struct {
		Payload any `cty:"payload"`
	}

	var mu sync.Mutex
	var captured any

	mockModule := &testutil.SimpleModule{
		Tag:       "box",
		Operation: "open",
		Behavior: &registry.Behavior{
			NewState:  func() any { return new(boxState) },
			StateType: reflect.TypeOf(boxState{}),
			Fn: func(ctx context.Context, self *dispatch.Self, state *boxState, _ *struct{}) (any, error) {
				mu.Lock()
				captured = state.Payload
				mu.Unlock()
				return nil, nil
			},
		},
	}

	// --- Act ---
	result := testutil.RunScenario(t, files, mockModule)

	// --- Assert ---
	require.NoError(t, result.Err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []any{"mixed", 1.0, true}, captured)
}

// TestTypeSystem_StringToNumberConversion relies on the cty conversion
// rules: a numeric string in the manifest satisfies a number attribute.
func TestTypeSystem_StringToNumberConversion(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	typesHCL := `
		type "meter" {
			attribute "reading" {
				type = number
			}

			operation "read" {
				required = true
				returns  = number
			}
		}
	`
	scenarioHCL := `
		object "m" {
			type = "meter"
			state {
				reading = "42"
			}
		}

		call {
			object    = "m"
			operation = "read"
		}
	`
	files := map[string]string{
		"types.hcl": typesHCL,
		"main.hcl":  scenarioHCL,
	}

	type meterState struct {
		Reading float64 `cty:"reading"`
	}

	mockModule := &testutil.SimpleModule{
		Tag:       "meter",
		Operation: "read",
		Behavior: &registry.Behavior{
			NewState:  func() any { return new(meterState) },
			StateType: reflect.TypeOf(meterState{}),
			Fn: func(ctx context.Context, self *dispatch.Self, state *meterState, _ *struct{}) (any, error) {
				return state.Reading, nil
			},
		},
	}

	// --- Act ---
	result := testutil.RunScenario(t, files, mockModule)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Equal(t, "m (meter): read => 42\n", result.Output)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_PreservesEncounterOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := NewModel()
	first.Types = append(first.Types, &TypeDefinition{Tag: "shape"})
	first.Scenario.Objects = append(first.Scenario.Objects, &ObjectDecl{Name: "a"})

	second := NewModel()
	second.Types = append(second.Types, &TypeDefinition{Tag: "circle"})
	second.Scenario.Objects = append(second.Scenario.Objects, &ObjectDecl{Name: "b"})
	second.Scenario.Calls = append(second.Scenario.Calls, &CallDecl{Object: "b", Operation: "area"})

	// --- Act ---
	merged := NewModel()
	merged.Merge(first)
	merged.Merge(second)

	// --- Assert ---
	require.Len(t, merged.Types, 2)
	assert.Equal(t, "shape", merged.Types[0].Tag)
	assert.Equal(t, "circle", merged.Types[1].Tag)

	require.Len(t, merged.Scenario.Objects, 2)
	assert.Equal(t, "a", merged.Scenario.Objects[0].Name)
	assert.Equal(t, "b", merged.Scenario.Objects[1].Name)

	require.Len(t, merged.Scenario.Calls, 1)
}

func TestMerge_NilIsNoOp(t *testing.T) {
	t.Parallel()

	m := NewModel()
	m.Merge(nil)

	assert.Empty(t, m.Types)
	assert.NotNil(t, m.Scenario)
}

func TestMerge_KeepsDuplicateTagsForLaterRejection(t *testing.T) {
	t.Parallel()

	// Merge itself never rejects duplicates; descriptor construction does,
	// with full context about which declaration collided.
	a := NewModel()
	a.Types = append(a.Types, &TypeDefinition{Tag: "shape"})
	b := NewModel()
	b.Types = append(b.Types, &TypeDefinition{Tag: "shape"})

	merged := NewModel()
	merged.Merge(a)
	merged.Merge(b)

	assert.Len(t, merged.Types, 2)
}

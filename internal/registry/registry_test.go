package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	behavior := &Behavior{Fn: func() {}}

	// --- Act ---
	err := r.Register("circle", "area", behavior)

	// --- Assert ---
	require.NoError(t, err)
	got, ok := r.Lookup("circle", "area")
	require.True(t, ok, "registered behavior should be found by Lookup")
	assert.Same(t, behavior, got)
}

func TestRegister_DuplicateFails(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()
	require.NoError(t, r.Register("circle", "area", &Behavior{Fn: func() {}}))

	// --- Act ---
	err := r.Register("circle", "area", &Behavior{Fn: func() {}})

	// --- Assert ---
	require.Error(t, err, "registering the same (tag, operation) twice must fail")
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.Contains(t, err.Error(), "circle.area")
}

func TestRegister_SameOperationDifferentTags(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := New()

	// --- Act ---
	err1 := r.Register("circle", "area", &Behavior{Fn: func() {}})
	err2 := r.Register("rectangle", "area", &Behavior{Fn: func() {}})

	// --- Assert ---
	// The key is the (tag, operation) pair; the same operation name on two
	// different tags is two distinct registrations.
	require.NoError(t, err1)
	require.NoError(t, err2)
}

func TestRegister_MissingFnFails(t *testing.T) {
	t.Parallel()

	r := New()

	require.Error(t, r.Register("circle", "area", &Behavior{}))
	require.Error(t, r.Register("circle", "name", nil))
}

func TestLookup_DoesNotWalkChain(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Lookup is a flat map access: a behavior registered on a parent tag is
	// invisible under the child tag. Chain resolution belongs to the
	// descriptor set.
	r := New()
	require.NoError(t, r.Register("rectangle", "area", &Behavior{Fn: func() {}}))

	// --- Act ---
	_, ok := r.Lookup("square", "area")

	// --- Assert ---
	assert.False(t, ok)
}

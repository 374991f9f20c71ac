package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertCallDispatched checks the log output within a HarnessResult to
// confirm that a specific scenario call completed. It keys off the structured
// log attributes, making tests resilient to transcript formatting changes.
func AssertCallDispatched(t *testing.T, result *HarnessResult, objectName, operation string) {
	t.Helper()

	expected := fmt.Sprintf("object=%s operation=%s", objectName, operation)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected log output for call '%s.%s' was not found in logs", objectName, operation,
	)
}

// AssertObjectConstructed confirms that an object handle was created for the
// named scenario object.
func AssertObjectConstructed(t *testing.T, result *HarnessResult, objectName string) {
	t.Helper()

	expected := fmt.Sprintf("Object constructed.\" object=%s", objectName)
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected construction log for object '%s' was not found in logs", objectName,
	)
}

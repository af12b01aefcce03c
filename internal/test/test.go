package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/rulematch"
)

// ExpectErrorCode stops the test unless e is *rulematch.Error with given code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	require.Error(t, e, "expecting error code %d", expected)
	re, valid := e.(*rulematch.Error)
	require.True(t, valid, "expecting *rulematch.Error, got %T: %v", e, e)
	require.Equal(t, expected, re.Code, "unexpected error: %s", re.Message)
}

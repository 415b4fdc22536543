package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("WAYFARER_TEST_VARIABLE", "some=value")

	env := GetEnvironmentVariables()

	// Only the first "=" separates name from value.
	assert.Equal(t, "some=value", env["WAYFARER_TEST_VARIABLE"])
}

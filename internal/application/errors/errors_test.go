package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchError_CarriesField(t *testing.T) {
	cause := errors.New("store not populated")
	err := NewPatchError("terminal.Store.major", cause)

	assert.Contains(t, err.Error(), "terminal.Store.major")
	assert.ErrorIs(t, err, cause)
}

func TestIncompatibleEnvironmentError_WrapsClasspathError(t *testing.T) {
	cpErr := NewClasspathError("file:///plugins/consolepatch", errors.New("sealed"))
	err := NewIncompatibleEnvironmentError("failed to append to the class path", cpErr)

	var target *ClasspathError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "file:///plugins/consolepatch", target.Artifact)
	assert.Contains(t, err.Error(), "incompatible environment")
}

func TestSinkError_Message(t *testing.T) {
	err := NewSinkError("Console", "initialize", nil)
	assert.Equal(t, "sink Console: initialize failed", err.Error())
}

func TestValidationError_Details(t *testing.T) {
	err := NewValidationError("config", "schema mismatch", "a", "b")
	assert.Equal(t, "validation failed: config: schema mismatch (2 issues)", err.Error())
}

func TestProbeError_Unwrap(t *testing.T) {
	cause := errors.New("empty stack")
	err := NewProbeError("no frames", cause)
	assert.ErrorIs(t, err, cause)

	var guard error = NewGuardError("/tmp/x", cause)
	assert.ErrorIs(t, guard, cause)
	assert.ErrorIs(t, NewConfigurationError("system", "bad", cause), cause)
}

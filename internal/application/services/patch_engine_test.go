package services

import (
	"errors"
	"testing"

	apperrors "github.com/reglet-dev/consolepatch/internal/application/errors"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchEngine_ForceCapability(t *testing.T) {
	store := &fakeStore{record: values.Unsupported}
	logger, _ := testLogger()
	engine := NewPatchEngine(store, logger)

	require.NoError(t, engine.ForceCapability(values.RichANSI))
	assert.Equal(t, values.RichANSI, engine.CurrentCapability())
	assert.True(t, engine.Applied())
}

func TestPatchEngine_IsIdempotent(t *testing.T) {
	store := &fakeStore{record: values.Unsupported}
	engine := NewPatchEngine(store, nil)

	require.NoError(t, engine.ForceCapability(values.RichANSI))
	require.NoError(t, engine.ForceCapability(values.RichANSI))
	require.NoError(t, engine.ForceCapability(values.CapabilityRecord{Major: 2}))

	assert.Equal(t, 1, store.overrides)
	assert.Equal(t, values.RichANSI, store.record)
}

func TestPatchEngine_FailureCarriesFieldName(t *testing.T) {
	store := &fakeStore{err: &namedFieldError{field: "terminal.Store.major"}}
	engine := NewPatchEngine(store, nil)

	err := engine.ForceCapability(values.RichANSI)
	require.Error(t, err)

	var patchErr *apperrors.PatchError
	require.True(t, errors.As(err, &patchErr))
	assert.Equal(t, "terminal.Store.major", patchErr.Field)
	assert.False(t, engine.Applied())

	// A later success is still possible after a failure.
	store.err = nil
	require.NoError(t, engine.ForceCapability(values.RichANSI))
	assert.True(t, engine.Applied())
}

func TestPatchEngine_UnnamedFailure(t *testing.T) {
	engine := NewPatchEngine(&fakeStore{err: errBoom}, nil)

	err := engine.ForceCapability(values.RichANSI)

	var patchErr *apperrors.PatchError
	require.True(t, errors.As(err, &patchErr))
	assert.Equal(t, unknownField, patchErr.Field)
	assert.ErrorIs(t, err, errBoom)
}

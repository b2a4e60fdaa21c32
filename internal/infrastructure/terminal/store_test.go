package terminal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/muesli/termenv"
	"github.com/reglet-dev/consolepatch/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_NonTerminalIsUnsupported(t *testing.T) {
	var buf bytes.Buffer
	s := Detect(&buf)

	assert.Equal(t, values.Unsupported, s.Current())
	assert.True(t, s.Sealed())
}

func TestRecordForProfile(t *testing.T) {
	assert.Equal(t, values.Unsupported, recordForProfile(termenv.Ascii))
	assert.Equal(t, values.CapabilityRecord{Major: 1}, recordForProfile(termenv.ANSI))
	assert.Equal(t, values.CapabilityRecord{Major: 1, Minor: 8}, recordForProfile(termenv.ANSI256))
	assert.Equal(t, values.RichANSI, recordForProfile(termenv.TrueColor))
}

func TestStore_SetAfterSealFails(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(values.Unsupported))
	s.Seal()

	err := s.Set(values.RichANSI)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSealed))
	assert.Equal(t, values.Unsupported, s.Current())
}

func TestStore_OverrideDefeatsSeal(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Set(values.Unsupported))
	s.Seal()

	require.NoError(t, s.Override(values.RichANSI))
	assert.Equal(t, values.RichANSI, s.Current())
	assert.True(t, s.Sealed(), "seal must be restored after override")
}

func TestStore_OverrideRequiresPopulatedRecord(t *testing.T) {
	s := NewStore()

	err := s.Override(values.RichANSI)
	require.Error(t, err)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, FieldMajor, fieldErr.Field)
	assert.ErrorIs(t, err, ErrNotPopulated)
}

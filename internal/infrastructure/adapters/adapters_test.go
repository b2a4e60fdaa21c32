package adapters

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutableLocator_Location(t *testing.T) {
	loc, err := NewExecutableLocator().Location()

	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(loc))
}

func TestExecutableLocator_RelativePathIsMadeAbsolute(t *testing.T) {
	l := &ExecutableLocator{executable: func() (string, error) { return "bin/consolepatch", nil }}

	loc, err := l.Location()

	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(loc))
	assert.Equal(t, "consolepatch", filepath.Base(loc))
}

func TestExecutableLocator_Error(t *testing.T) {
	boom := errors.New("boom")
	l := &ExecutableLocator{executable: func() (string, error) { return "", boom }}

	_, err := l.Location()

	assert.ErrorIs(t, err, boom)
}

func TestStaticLocator(t *testing.T) {
	loc, err := StaticLocator("/opt/host/plugins/consolepatch").Location()
	require.NoError(t, err)
	assert.Equal(t, "/opt/host/plugins/consolepatch", loc)

	_, err = StaticLocator("").Location()
	assert.Error(t, err)
}

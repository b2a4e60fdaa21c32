package values

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseCapabilityRecord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CapabilityRecord
		wantErr bool
	}{
		{"major and minor", "1.18", CapabilityRecord{1, 18}, false},
		{"major only", "2", CapabilityRecord{2, 0}, false},
		{"trims whitespace", " 0.0 ", CapabilityRecord{}, false},
		{"empty", "", CapabilityRecord{}, true},
		{"negative", "-1.0", CapabilityRecord{}, true},
		{"garbage minor", "1.x", CapabilityRecord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseCapabilityRecord(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}

func Test_MustParseCapabilityRecord_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustParseCapabilityRecord("nope")
	})
}

func Test_CapabilityRecord_IsSupported(t *testing.T) {
	assert.False(t, Unsupported.IsSupported())
	assert.True(t, RichANSI.IsSupported())
	assert.True(t, CapabilityRecord{Major: 1}.IsSupported())
}

func Test_CapabilityRecord_Satisfies(t *testing.T) {
	anyVersion, err := semver.NewConstraint("> 0")
	require.NoError(t, err)
	rich, err := semver.NewConstraint(">= 1.18")
	require.NoError(t, err)

	assert.False(t, Unsupported.Satisfies(anyVersion))
	assert.True(t, CapabilityRecord{1, 0}.Satisfies(anyVersion))
	assert.False(t, CapabilityRecord{1, 8}.Satisfies(rich))
	assert.True(t, RichANSI.Satisfies(rich))
	assert.False(t, RichANSI.Satisfies(nil))
}

func Test_CapabilityRecord_String(t *testing.T) {
	assert.Equal(t, "1.18", RichANSI.String())
	assert.Equal(t, "0.0", Unsupported.String())
	assert.True(t, RichANSI.Equals(MustParseCapabilityRecord("1.18")))
}

func Test_Classification(t *testing.T) {
	assert.Equal(t, "normal", ClassificationNormal.String())
	assert.Equal(t, "incompatible-frontend", ClassificationIncompatibleFrontend.String())
	assert.True(t, ClassificationIncompatibleFrontend.IsIncompatible())
	assert.False(t, ClassificationNormal.IsIncompatible())
}

func Test_LaunchID(t *testing.T) {
	id := NewLaunchID()
	assert.False(t, id.IsZero())

	parsed, err := ParseLaunchID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseLaunchID("not-a-uuid")
	assert.Error(t, err)
	assert.True(t, LaunchID{}.IsZero())
}

package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMode(t *testing.T) {
	tests := []struct {
		syntax   Syntax
		implicit bool
		little   bool
	}{
		{ImplicitVRLittleEndian, true, true},
		{ExplicitVRLittleEndian, false, true},
		{ExplicitVRBigEndian, false, false},
		{Syntax("1.2.840.10008.1.2.4.70"), false, true}, // unknown assumes explicit LE
	}
	for _, tc := range tests {
		implicit, little, err := tc.syntax.DecodeMode()
		require.NoError(t, err, tc.syntax)
		assert.Equal(t, tc.implicit, implicit, tc.syntax)
		assert.Equal(t, tc.little, little, tc.syntax)
	}
}

func TestDecodeMode_Deflated(t *testing.T) {
	_, _, err := DeflatedExplicitVR.DecodeMode()
	assert.ErrorIs(t, err, ErrDeflatedNotSupported)
}

func TestSyntaxProperties(t *testing.T) {
	assert.False(t, ImplicitVRLittleEndian.IsExplicitVR())
	assert.True(t, ExplicitVRLittleEndian.IsExplicitVR())
	assert.True(t, ImplicitVRLittleEndian.IsLittleEndian())
	assert.False(t, ExplicitVRBigEndian.IsLittleEndian())
}

func TestName(t *testing.T) {
	assert.Equal(t, "Implicit VR Little Endian", ImplicitVRLittleEndian.Name())
	assert.Equal(t, "1.2.3", FromUID("1.2.3").Name())
}

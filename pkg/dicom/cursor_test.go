package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_Slice(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4})

	got, err := c.Slice(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3}, got)

	_, err = c.Slice(2, 3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = c.Slice(-1, 2)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 2, c.Remaining(2))
	assert.Equal(t, 0, c.Remaining(10))
}

func TestUnpack_ExplicitHeader(t *testing.T) {
	// (0010,0010) PN length 10, little endian
	raw := []byte{0x10, 0x00, 0x10, 0x00, 'P', 'N', 0x0A, 0x00}
	fields, err := Unpack("<HH2sH", raw)
	require.NoError(t, err)
	require.Len(t, fields, 4)
	assert.Equal(t, uint16(0x0010), fields[0])
	assert.Equal(t, uint16(0x0010), fields[1])
	assert.Equal(t, "PN", fields[2])
	assert.Equal(t, uint16(10), fields[3])
}

func TestUnpack_ImplicitHeaderBigEndian(t *testing.T) {
	raw := []byte{0x00, 0x28, 0x00, 0x10, 0x00, 0x00, 0x00, 0x02}
	fields, err := Unpack(">HHL", raw)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, uint16(0x0028), fields[0])
	assert.Equal(t, uint16(0x0010), fields[1])
	assert.Equal(t, uint32(2), fields[2])
}

func TestUnpack_Long(t *testing.T) {
	fields, err := Unpack("<L", []byte{0x10, 0x00, 0x00, 0x00})
	require.NoError(t, err)
	assert.Equal(t, uint32(16), fields[0])
}

func TestUnpack_Errors(t *testing.T) {
	_, err := Unpack("HH", []byte{1, 2, 3, 4})
	assert.Error(t, err, "missing endianness prefix")

	_, err = Unpack("<HH", []byte{1, 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = Unpack("<2x", []byte{1, 2})
	assert.Error(t, err, "bad token")

	_, err = Unpack("<", nil)
	assert.Error(t, err, "too short")
}

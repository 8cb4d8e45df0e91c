package dicom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

func TestConvert_UnsignedShortEndianness(t *testing.T) {
	got, err := convert(vr.US, []byte{0x04, 0x00}, binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(4), got)

	got, err = convert(vr.US, []byte{0x00, 0x04}, binary.BigEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(4), got)
}

func TestConvert_SignedShort(t *testing.T) {
	got, err := convert(vr.SS, []byte{0x00, 0x80}, binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, int16(-32768), got)
}

func TestConvert_Strings(t *testing.T) {
	got, err := convert(vr.PN, []byte("DOE^JOHN  "), binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, "DOE^JOHN", got)

	// UI pads with NUL, not space
	got, err = convert(vr.UI, []byte("1.2.840.10008.1.2\x00"), binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, "1.2.840.10008.1.2", got)

	// multiplicity splits on backslash
	got, err = convert(vr.CS, []byte("ORIGINAL\\PRIMARY"), binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ORIGINAL", "PRIMARY"}, got)

	// text VRs never split
	got, err = convert(vr.LT, []byte("one\\two "), binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, "one\\two", got)
}

func TestConvert_NumericStrings(t *testing.T) {
	got, err := convert(vr.IS, []byte("42"), binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	got, err = convert(vr.DS, []byte("1.5\\2.5 "), binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, got)

	_, err = convert(vr.IS, []byte("forty-two"), binary.LittleEndian, nil)
	assert.Error(t, err)
}

func TestConvert_AttributeTag(t *testing.T) {
	raw := []byte{0x10, 0x00, 0x20, 0x00}
	got, err := convert(vr.AT, raw, binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, tag.New(0x0010, 0x0020), got)

	_, err = convert(vr.AT, raw[:3], binary.LittleEndian, nil)
	assert.Error(t, err)
}

func TestConvert_Blobs(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	got, err := convert(vr.OB, raw, binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = convert(vr.UN, raw, binary.LittleEndian, nil)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestConvert_BadWidth(t *testing.T) {
	_, err := convert(vr.US, []byte{0x01}, binary.LittleEndian, nil)
	assert.Error(t, err)
	_, err = convert(vr.FD, []byte{1, 2, 3, 4}, binary.LittleEndian, nil)
	assert.Error(t, err)
}

func TestConvert_SpecificCharacterSet(t *testing.T) {
	cs, err := parseSpecificCharacterSet([]string{"ISO_IR 100"})
	require.NoError(t, err)
	require.NotNil(t, cs)

	// 0xE9 is é in Latin-1
	got, err := convert(vr.PN, []byte{'R', 0xE9, 'm', 'y'}, binary.LittleEndian, cs)
	require.NoError(t, err)
	assert.Equal(t, "Rémy", got)
}

func TestParseSpecificCharacterSet_Defaults(t *testing.T) {
	cs, err := parseSpecificCharacterSet([]string{"ISO_IR 6"})
	require.NoError(t, err)
	assert.Nil(t, cs, "default repertoire needs no decoder")

	_, err = parseSpecificCharacterSet([]string{"ISO_IR 9999"})
	assert.Error(t, err)
}

package dicom

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

func TestEncodeElementHeader_ShortForm(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, EncodeElementHeader(&b, tag.PatientName, vr.PN, 10))
	assert.Equal(t, []byte{0x10, 0x00, 0x10, 0x00, 'P', 'N', 0x0A, 0x00}, b.Bytes())
}

func TestEncodeElementHeader_ExtraLength(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, EncodeElementHeader(&b, tag.PixelData, vr.OB, 16))
	assert.Equal(t, []byte{
		0xE0, 0x7F, 0x10, 0x00, // (7FE0,0010)
		'O', 'B',
		0x00, 0x00, // reserved
		0x10, 0x00, 0x00, 0x00,
	}, b.Bytes())
}

func TestEncodeElementHeader_Overflow(t *testing.T) {
	var b bytes.Buffer
	err := EncodeElementHeader(&b, tag.PatientName, vr.PN, 0x10000)
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	meta := NewDataset()
	meta.Put(testElement(t, tag.TransferSyntaxUID, vr.UI, []byte("1.2.840.10008.1.2.1\x00")))

	main := NewDataset()
	main.Put(testElement(t, tag.PatientName, vr.PN, []byte("DOE^JOHN")))
	main.Put(testElement(t, tag.Rows, vr.US, us(512)))
	main.Put(testElement(t, tag.PixelData, vr.OB, []byte{1, 2, 3, 4}))

	fd := &FullDataset{Main: main, Meta: meta, Command: NewDataset(), IsLittleEndian: true}

	var buf bytes.Buffer
	n, err := Write(&buf, fd)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	got, err := ReadFile(buf.Bytes())
	require.NoError(t, err)
	assert.False(t, got.IsImplicitVR)
	assert.True(t, got.IsLittleEndian)

	// group length and an implementation UID are synthesized into the meta
	gl, ok := got.Meta.Get("FileMetaInformationGroupLength-1")
	require.True(t, ok)
	glv, _ := gl.GetInt()
	assert.Greater(t, glv, 28, "covers TransferSyntaxUID plus the implementation UID")

	impl, ok := got.Meta.Get("ImplementationClassUID-1")
	require.True(t, ok)
	uid, _ := impl.GetString()
	assert.True(t, strings.HasPrefix(uid, DefaultUIDRoot))

	name, _ := GetTagValue(got, tag.PatientName).GetString()
	assert.Equal(t, "DOE^JOHN", name)
	rows, _ := GetTagValue(got, tag.Rows).GetInt()
	assert.Equal(t, 512, rows)
	assert.Equal(t, []byte{1, 2, 3, 4}, GetTagValue(got, tag.PixelData).RawValue)
}

func TestWrite_PadsOddValues(t *testing.T) {
	main := NewDataset()
	odd := &Element{Tag: tag.PatientID, VR: vr.LO, Keyword: "PatientID", Value: "ODD"}
	main.Put(odd)

	fd := &FullDataset{Main: main, Meta: NewDataset(), Command: NewDataset()}

	var buf bytes.Buffer
	_, err := Write(&buf, fd)
	require.NoError(t, err)

	got, err := ReadFile(buf.Bytes())
	require.NoError(t, err)
	e := GetTagValue(got, tag.PatientID)
	require.NotNil(t, e)
	assert.Equal(t, uint32(4), e.Length, "odd string padded with a space")
	v, _ := e.GetString()
	assert.Equal(t, "ODD", v)
}

func TestWrite_SortsByTag(t *testing.T) {
	main := NewDataset()
	main.Put(testElement(t, tag.Rows, vr.US, us(1)))
	main.Put(testElement(t, tag.PatientName, vr.PN, []byte("A ")))

	var body bytes.Buffer
	_, err := writeDatasetBody(&body, main)
	require.NoError(t, err)

	// (0010,0010) must precede (0028,0010)
	assert.Equal(t, []byte{0x10, 0x00, 0x10, 0x00}, body.Bytes()[:4])
}

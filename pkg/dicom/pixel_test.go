package dicom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
	"github.com/openscan/dicom.go/pkg/dicom/transfer"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

func pixelDataset(t *testing.T, bitsAllocated, bitsStored, highBit, pixelRep uint16, photometric, wc, ww string, pixel []byte) *FullDataset {
	t.Helper()
	main := NewDataset()
	main.Put(testElement(t, tag.BitsAllocated, vr.US, us(bitsAllocated)))
	main.Put(testElement(t, tag.BitsStored, vr.US, us(bitsStored)))
	main.Put(testElement(t, tag.HighBit, vr.US, us(highBit)))
	main.Put(testElement(t, tag.PixelRepresentation, vr.US, us(pixelRep)))
	main.Put(testElement(t, tag.PhotometricInterpretation, vr.CS, []byte(photometric)))
	main.Put(testElement(t, tag.WindowCenter, vr.DS, []byte(wc)))
	main.Put(testElement(t, tag.WindowWidth, vr.DS, []byte(ww)))
	main.Put(testElement(t, tag.PixelData, vr.OW, pixel))
	return &FullDataset{Main: main, Meta: NewDataset(), Command: NewDataset(), IsLittleEndian: true}
}

func TestGetPixelData_IdentityWindow(t *testing.T) {
	fd := pixelDataset(t, 8, 8, 7, 0, "MONOCHROME2", "128", "256", []byte{0, 128, 255})

	colors, err := GetPixelData(fd)
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000", "#808080", "#FFFFFF"}, colors)
}

func TestGetPixelData_Monochrome1Inverts(t *testing.T) {
	fd := pixelDataset(t, 8, 8, 7, 0, "MONOCHROME1", "128", "256", []byte{0, 128, 255})

	colors, err := GetPixelData(fd)
	require.NoError(t, err)
	require.Len(t, colors, 3)
	assert.Equal(t, "#FFFFFF", colors[0])
	assert.Equal(t, "#000000", colors[2])
}

func TestGetPixelData_WindowClipping(t *testing.T) {
	// 16-bit little endian samples 0, 1, 2 against a [-1,1] window
	fd := pixelDataset(t, 16, 16, 15, 0, "MONOCHROME2", "0", "2",
		[]byte{0x00, 0x00, 0x01, 0x00, 0x02, 0x00})

	colors, err := GetPixelData(fd)
	require.NoError(t, err)
	assert.Equal(t, []string{"#808080", "#FFFFFF", "#FFFFFF"}, colors)
}

func TestGetPixelData_EndToEnd(t *testing.T) {
	data := dicomFile(
		metaTS(transfer.ExplicitVRLittleEndian),
		explicitLE(tag.BitsAllocated, vr.US, us(16)),
		explicitLE(tag.BitsStored, vr.US, us(16)),
		explicitLE(tag.HighBit, vr.US, us(15)),
		explicitLE(tag.PixelRepresentation, vr.US, us(0)),
		explicitLE(tag.PhotometricInterpretation, vr.CS, []byte("MONOCHROME2 ")),
		explicitLE(tag.WindowCenter, vr.DS, []byte("0 ")),
		explicitLE(tag.WindowWidth, vr.DS, []byte("2 ")),
		explicitLE(tag.PixelData, vr.OW, []byte{0x00, 0x00, 0x01, 0x00, 0x02, 0x00}),
	)

	fd, err := ReadFile(data)
	require.NoError(t, err)

	colors, err := GetPixelData(fd)
	require.NoError(t, err)
	assert.Equal(t, []string{"#808080", "#FFFFFF", "#FFFFFF"}, colors)
}

func TestGetPixelData_DefaultsApply(t *testing.T) {
	main := NewDataset()
	main.Put(testElement(t, tag.BitsAllocated, vr.US, us(8)))
	main.Put(testElement(t, tag.BitsStored, vr.US, us(8)))
	main.Put(testElement(t, tag.HighBit, vr.US, us(7)))
	main.Put(testElement(t, tag.PixelRepresentation, vr.US, us(0)))
	main.Put(testElement(t, tag.PixelData, vr.OW, []byte{0x00}))
	fd := &FullDataset{Main: main, Meta: NewDataset(), Command: NewDataset()}

	colors, err := GetPixelData(fd)
	require.NoError(t, err)
	assert.Len(t, colors, 1)
}

func TestGetPixelData_NoPixelData(t *testing.T) {
	fd := testFullDataset(t)
	colors, err := GetPixelData(fd)
	require.NoError(t, err)
	assert.Nil(t, colors)
}

func TestGetPixelData_MissingLayout(t *testing.T) {
	main := NewDataset()
	main.Put(testElement(t, tag.PixelData, vr.OW, []byte{0x00, 0x00}))
	fd := &FullDataset{Main: main, Meta: NewDataset(), Command: NewDataset()}

	_, err := GetPixelData(fd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BitsAllocated")
}

func TestSampleValue_Signed(t *testing.T) {
	// little endian 0x8000 reversed to big endian hex, two's complement
	v, err := sampleValue([]byte{0x00, 0x80}, true, true)
	require.NoError(t, err)
	assert.Equal(t, int64(-32768), v)

	v, err = sampleValue([]byte{0xFF, 0xFF}, true, true)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v)

	v, err = sampleValue([]byte{0x00, 0x80}, true, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0x8000), v)
}

func TestSampleValue_ByteOrder(t *testing.T) {
	v, err := sampleValue([]byte{0x01, 0x00}, true, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v, "reversed chunk parses little endian storage")

	v, err = sampleValue([]byte{0x01, 0x00}, false, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0x0100), v)
}

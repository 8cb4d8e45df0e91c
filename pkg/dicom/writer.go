package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sort"
	"sync/atomic"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

// WriteFile writes a full dataset to a DICOM file.
func WriteFile(path string, fd *FullDataset) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return Write(f, fd)
}

// Write emits fd as a DICOM file using Explicit VR Little Endian throughout,
// whatever mode the datasets were read in. The File Meta group length is
// recomputed; elements are written in tag order within each block.
func Write(w io.Writer, fd *FullDataset) (int64, error) {
	cw := &CountingWriter{Writer: w}

	preamble := make([]byte, preambleSize)
	if _, err := cw.Write(preamble); err != nil {
		return cw.Count.Load(), err
	}
	if _, err := cw.Write([]byte(magicWord)); err != nil {
		return cw.Count.Load(), err
	}

	if err := writeMeta(cw, fd.Meta); err != nil {
		return cw.Count.Load(), err
	}
	for _, ds := range []*Dataset{fd.Command, fd.Main} {
		if _, err := writeDatasetBody(cw, ds); err != nil {
			return cw.Count.Load(), err
		}
	}
	return cw.Count.Load(), nil
}

// writeMeta emits the File Meta block with a freshly computed group length.
// The body is buffered first so the length element can precede it.
func writeMeta(w io.Writer, meta *Dataset) error {
	if meta == nil || meta.Len() == 0 {
		return nil
	}
	elements := sortedElements(meta)
	if _, ok := meta.FindByTag(tag.ImplementationClassUID); !ok {
		elements = append(elements, &Element{
			Tag:   tag.ImplementationClassUID,
			VR:    vr.UI,
			Value: NewUID(""),
		})
	}

	var body bytes.Buffer
	for _, e := range elements {
		if e.Tag.Equals(tag.FileMetaInformationGroupLength) {
			continue
		}
		if _, err := writeElement(&body, e); err != nil {
			return err
		}
	}

	groupLength := &Element{
		Tag:    tag.FileMetaInformationGroupLength,
		VR:     vr.UL,
		Length: 4,
		Value:  uint32(body.Len()),
	}
	if _, err := writeElement(w, groupLength); err != nil {
		return err
	}
	_, err := w.Write(body.Bytes())
	return err
}

func writeDatasetBody(w io.Writer, ds *Dataset) (int64, error) {
	cw := &CountingWriter{Writer: w}
	if ds == nil {
		return 0, nil
	}
	for _, e := range sortedElements(ds) {
		if _, err := writeElement(cw, e); err != nil {
			return cw.Count.Load(), fmt.Errorf("writing element %s: %w", e.Tag, err)
		}
	}
	return cw.Count.Load(), nil
}

func sortedElements(ds *Dataset) []*Element {
	elements := ds.Elements()
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].Tag.Compare(elements[j].Tag) < 0
	})
	return elements
}

func writeElement(w io.Writer, e *Element) (int, error) {
	cw := &CountingWriter{Writer: w}

	valBytes, err := encodeValue(e)
	if err != nil {
		return int(cw.Count.Load()), err
	}
	if len(valBytes)%2 != 0 {
		// UI pads with NUL, other string VRs with space
		pad := byte(0)
		if e.VR.IsString() && e.VR != vr.UI {
			pad = ' '
		}
		valBytes = append(valBytes, pad)
	}

	if err := EncodeElementHeader(cw, e.Tag, e.VR, uint32(len(valBytes))); err != nil {
		return int(cw.Count.Load()), err
	}
	if _, err := cw.Write(valBytes); err != nil {
		return int(cw.Count.Load()), err
	}
	return int(cw.Count.Load()), nil
}

// EncodeElementHeader writes one explicit VR little endian element header:
// tag, VR code, then a 16-bit length, or reserved bytes plus a 32-bit length
// for the extra-length VR set.
func EncodeElementHeader(w io.Writer, t tag.Tag, v vr.VR, length uint32) error {
	if len(v) != 2 {
		slog.Warn("invalid VR, writing as UN", "vr", string(v), "tag", t.String())
		v = vr.UN
	}
	if err := binary.Write(w, binary.LittleEndian, t.Group); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, t.Element); err != nil {
		return err
	}
	if _, err := w.Write([]byte(v)); err != nil {
		return err
	}
	if v.IsExtraLength() {
		if _, err := w.Write([]byte{0, 0}); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, length)
	}
	if length > math.MaxUint16 {
		return fmt.Errorf("value length %d overflows short form for VR %s", length, v)
	}
	return binary.Write(w, binary.LittleEndian, uint16(length))
}

// encodeValue renders the element's value bytes. Elements that came from a
// read carry their raw bytes and round-trip unchanged; synthesized elements
// are encoded from their typed value.
func encodeValue(e *Element) ([]byte, error) {
	if e.RawValue != nil {
		return e.RawValue, nil
	}
	switch val := e.Value.(type) {
	case nil:
		return []byte{}, nil
	case string:
		return []byte(val), nil
	case []string:
		return []byte(joinMultiplicity(val)), nil
	case uint16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, val)
		return b, nil
	case int16:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(val))
		return b, nil
	case uint32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, val)
		return b, nil
	case int32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(val))
		return b, nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case []uint16:
		b := make([]byte, len(val)*2)
		for i, u := range val {
			binary.LittleEndian.PutUint16(b[i*2:], u)
		}
		return b, nil
	case float32:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(val))
		return b, nil
	case float64:
		switch e.VR {
		case vr.FD:
			b := make([]byte, 8)
			binary.LittleEndian.PutUint64(b, math.Float64bits(val))
			return b, nil
		case vr.FL:
			b := make([]byte, 4)
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(val)))
			return b, nil
		}
		return []byte(fmt.Sprintf("%v", val)), nil
	case []byte:
		return val, nil
	}
	return nil, fmt.Errorf("unsupported value type %T for VR %s", e.Value, e.VR)
}

func joinMultiplicity(values []string) string {
	out := ""
	for i, s := range values {
		if i > 0 {
			out += "\\"
		}
		out += s
	}
	return out
}

// CountingWriter counts bytes successfully written through it.
type CountingWriter struct {
	Count  atomic.Int64
	Writer io.Writer
}

func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.Writer.Write(p)
	if err == nil {
		c.Count.Add(int64(n))
	}
	return n, err
}

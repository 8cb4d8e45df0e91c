package dicom

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

const (
	preambleSize = 128
	magicWord    = "DICM"

	// UndefinedLength in a length field marks delimited encoding (SQ items,
	// encapsulated pixel data). This reader recognizes and reports it but
	// does not descend into it.
	UndefinedLength uint32 = 0xFFFFFFFF
)

// ErrEmptyInput is the only fatal read error; everything else degrades to a
// partial dataset plus log records.
var ErrEmptyInput = errors.New("empty input buffer")

// elementHeader is one decoded header: tag, VR (vr.None when the stream is
// implicit), the raw length field, and how many bytes the header occupied
// (8, or 12 for the extra-length VR form).
type elementHeader struct {
	tag    tag.Tag
	vr     vr.VR
	length uint32
	size   int
}

// parseElementHeader decodes one element header at pos.
//
// In explicit mode, two bytes that are not both uppercase ASCII letters
// cannot be a VR; the header is re-read as implicit. That defensive fallback
// keeps intermixed or mislabeled streams parseable.
func parseElementHeader(c *Cursor, pos int, implicitVR, little bool) (elementHeader, error) {
	endian := "<"
	if !little {
		endian = ">"
	}
	raw, err := c.Slice(pos, 8)
	if err != nil {
		return elementHeader{}, fmt.Errorf("element header at %d: %w", pos, err)
	}

	if !implicitVR {
		fields, err := Unpack(endian+"HH2sH", raw)
		if err != nil {
			return elementHeader{}, err
		}
		code := fields[2].(string)
		if isUpperAlpha(code[0]) && isUpperAlpha(code[1]) {
			h := elementHeader{
				tag:    tag.New(fields[0].(uint16), fields[1].(uint16)),
				vr:     vr.VR(code),
				length: uint32(fields[3].(uint16)),
				size:   8,
			}
			if h.vr.IsExtraLength() {
				extra, err := c.Slice(pos+8, 4)
				if err != nil {
					return elementHeader{}, fmt.Errorf("extra length of %s at %d: %w", h.tag, pos, err)
				}
				long, err := Unpack(endian+"L", extra)
				if err != nil {
					return elementHeader{}, err
				}
				h.length = long[0].(uint32)
				h.size = 12
			}
			return h, nil
		}
		// Not a VR; fall through and re-read the header as implicit.
	}

	fields, err := Unpack(endian+"HHL", raw)
	if err != nil {
		return elementHeader{}, err
	}
	return elementHeader{
		tag:    tag.New(fields[0].(uint16), fields[1].(uint16)),
		vr:     vr.None,
		length: fields[2].(uint32),
		size:   8,
	}, nil
}

func isUpperAlpha(b byte) bool {
	return b >= 0x41 && b <= 0x5A
}

// readDataset drives parseElementHeader from start until end of buffer, a
// stop predicate hit, or an unrecoverable condition. It always returns what
// it parsed; truncation and undefined lengths terminate the block with a log
// record rather than an error.
func readDataset(c *Cursor, start int, assumedImplicit, little bool, stop stopFunc, cs *charset) (*Dataset, int, *charset) {
	implicitVR := probeImplicitVR(c, start, assumedImplicit, little, true, stop)
	order := byteOrder(little)

	ds := NewDataset()
	d := 0
	for {
		pos := start + d
		if c.Remaining(pos) < 8 {
			break
		}
		h, err := parseElementHeader(c, pos, implicitVR, little)
		if err != nil {
			slog.Warn("truncated element header, stopping block", "offset", pos, "error", err)
			break
		}
		if stop != nil && stop(h.tag.Group, h.vr, h.length) {
			// The probed header is not consumed; the next block starts here.
			break
		}
		d += h.size

		if h.length == UndefinedLength || h.length == 0 {
			// Undefined lengths mean sequences or encapsulated pixel data,
			// neither of which this reader descends into.
			slog.Warn("unhandled element, stopping block",
				"tag", h.tag.String(), "vr", string(h.vr), "length", h.length)
			break
		}
		if h.length%2 != 0 {
			slog.Warn("odd value length", "tag", h.tag.String(), "length", h.length)
		}

		raw, err := c.Slice(start+d, int(h.length))
		if err != nil {
			slog.Warn("truncated element value, stopping block",
				"tag", h.tag.String(), "length", h.length, "error", err)
			break
		}
		d += int(h.length)

		e, err := newElement(h.tag, h.vr, h.length, raw, order, cs)
		if err != nil {
			slog.Warn("value conversion failed, keeping raw bytes", "error", err)
		}
		ds.Put(e)

		if e.Tag.Equals(tag.SpecificCharacterSet) {
			cs = charsetFromElement(e, cs)
		}
	}
	return ds, start + d, cs
}

// readPreamble checks the 128-byte preamble and DICM magic. On mismatch the
// preamble is dropped and the cursor rewinds to 0 so headerless files still
// get a parse attempt; files that are not DICOM at all then fail in the meta
// read and surface as an empty or partial result.
func readPreamble(c *Cursor) ([]byte, int) {
	head, err := c.Slice(0, preambleSize+len(magicWord))
	if err != nil || string(head[preambleSize:]) != magicWord {
		slog.Warn("DICM magic not found, parsing from offset 0", "error", err)
		return nil, 0
	}
	return head[:preambleSize], preambleSize + len(magicWord)
}

// ReadFile parses an in-memory DICOM file: preamble, File Meta Information
// (always explicit VR little endian), optional Command Set elements, then
// the main dataset in the mode named by TransferSyntaxUID or guessed from
// the bytes. Element raw values are slices over data; the buffer must stay
// immutable for the life of the result.
//
// The parse is total: everything decodable before a failure point is
// returned. Only an empty buffer is an error.
func ReadFile(data []byte) (*FullDataset, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	c := NewCursor(data)

	_, pos := readPreamble(c)

	meta, pos, cs := readDataset(c, pos, false, true, notGroupMeta, nil)
	command, pos, cs := readDataset(c, pos, false, true, notGroupCommand, cs)

	tsElement, _ := meta.FindByTag(tag.TransferSyntaxUID)
	implicitVR, littleEndian := detectMode(c, pos, tsElement)

	main, _, _ := readDataset(c, pos, implicitVR, littleEndian, nil, cs)

	return &FullDataset{
		Main:           main,
		Meta:           meta,
		Command:        command,
		IsImplicitVR:   implicitVR,
		IsLittleEndian: littleEndian,
	}, nil
}

// Parse reads a complete DICOM stream into memory and parses it.
func Parse(r io.Reader) (*FullDataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ReadFile(data)
}

// ReadPath parses the file at path.
func ReadPath(path string) (*FullDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadFile(data)
}

package dicom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
)

// ErrOutOfBounds is returned when a slice request exceeds the buffer.
var ErrOutOfBounds = errors.New("read past end of buffer")

// Cursor is a bounded view over an immutable byte buffer. All element reads
// go through Slice so truncated files surface as ErrOutOfBounds instead of
// panics, and raw values can stay zero-copy slices of the original buffer.
type Cursor struct {
	buf []byte
}

// NewCursor wraps a buffer. The buffer is borrowed, not copied; callers must
// not mutate it for the lifetime of the parse.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of bytes available at and after pos.
func (c *Cursor) Remaining(pos int) int {
	if pos >= len(c.buf) {
		return 0
	}
	return len(c.buf) - pos
}

// Slice returns n bytes starting at pos, or ErrOutOfBounds if the range
// exceeds the buffer.
func (c *Cursor) Slice(pos, n int) ([]byte, error) {
	if pos < 0 || n < 0 || pos+n > len(c.buf) {
		return nil, fmt.Errorf("slice [%d:%d) of %d bytes: %w", pos, pos+n, len(c.buf), ErrOutOfBounds)
	}
	return c.buf[pos : pos+n], nil
}

// Unpack decodes fixed-width fields from data according to a pattern string.
//
// The first character selects endianness: '<' little, '>' big. Each following
// token is one of:
//
//	H    uint16
//	L    uint32
//	Ns   N-byte ASCII string, e.g. 2s
//
// The element headers this reader deals in are "<HHL" (implicit VR),
// "<HH2sH" (explicit VR short) and "<L" (extra-length follow-up), with '>'
// variants for big-endian datasets.
func Unpack(pattern string, data []byte) ([]any, error) {
	if len(pattern) < 2 {
		return nil, fmt.Errorf("unpack: pattern %q too short", pattern)
	}
	var order binary.ByteOrder
	switch pattern[0] {
	case '<':
		order = binary.LittleEndian
	case '>':
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("unpack: pattern %q missing endianness prefix", pattern)
	}

	var out []any
	pos := 0
	i := 1
	for i < len(pattern) {
		switch {
		case pattern[i] == 'H':
			if pos+2 > len(data) {
				return nil, fmt.Errorf("unpack %q at byte %d: %w", pattern, pos, ErrOutOfBounds)
			}
			out = append(out, order.Uint16(data[pos:]))
			pos += 2
			i++
		case pattern[i] == 'L':
			if pos+4 > len(data) {
				return nil, fmt.Errorf("unpack %q at byte %d: %w", pattern, pos, ErrOutOfBounds)
			}
			out = append(out, order.Uint32(data[pos:]))
			pos += 4
			i++
		case pattern[i] >= '0' && pattern[i] <= '9':
			j := i
			for j < len(pattern) && pattern[j] >= '0' && pattern[j] <= '9' {
				j++
			}
			if j >= len(pattern) || pattern[j] != 's' {
				return nil, fmt.Errorf("unpack: bad token %q in pattern %q", pattern[i:], pattern)
			}
			n, err := strconv.Atoi(pattern[i:j])
			if err != nil {
				return nil, fmt.Errorf("unpack: bad length in pattern %q: %w", pattern, err)
			}
			if pos+n > len(data) {
				return nil, fmt.Errorf("unpack %q at byte %d: %w", pattern, pos, ErrOutOfBounds)
			}
			out = append(out, string(data[pos:pos+n]))
			pos += n
			i = j + 1
		default:
			return nil, fmt.Errorf("unpack: bad token %q in pattern %q", pattern[i:], pattern)
		}
	}
	return out, nil
}

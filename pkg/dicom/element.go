package dicom

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

// Element is a single parsed data element. Elements are created once during
// the read and never mutated afterwards.
type Element struct {
	Tag tag.Tag

	// VR as resolved for this element: the code read from the stream in
	// explicit mode, or the dictionary VR in implicit mode. Private tags
	// that miss the dictionary carry vr.UN with the keyword sentinel.
	VR vr.VR

	// Length is the raw length field; RawValue holds exactly Length bytes
	// for defined-length elements, sliced over the input buffer.
	Length   uint32
	RawValue []byte

	// Value is the converted, typed value; see convert for the mapping.
	Value any

	// Dictionary attributes.
	Keyword string
	Name    string
	VM      string
	Retired bool
}

// Hex returns the canonical lowercase 8-hex-digit tag form, e.g. "00100010".
func (e *Element) Hex() string {
	return e.Tag.Hex()
}

// IsPrivate reports whether the element carries an odd (private) group.
func (e *Element) IsPrivate() bool {
	return e.Tag.IsPrivate()
}

// GetString returns the value as a string. Multi-valued string elements
// return their first value.
func (e *Element) GetString() (string, bool) {
	switch v := e.Value.(type) {
	case string:
		return v, true
	case []string:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return "", false
}

// GetInt returns the value as an int for any of the integer VR renditions.
func (e *Element) GetInt() (int, bool) {
	switch v := e.Value.(type) {
	case uint16:
		return int(v), true
	case int16:
		return int(v), true
	case uint32:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// GetFloat returns the value as a float64 for numeric VRs, including the
// ASCII decimal VRs.
func (e *Element) GetFloat() (float64, bool) {
	switch v := e.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case int64:
		return float64(v), true
	case uint16:
		return float64(v), true
	case int16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	if n, ok := e.GetInt(); ok {
		return float64(n), true
	}
	return 0, false
}

// String renders a one-line diagnostic form.
func (e *Element) String() string {
	sv := fmt.Sprintf("%v", e.Value)
	if len(sv) > 64 {
		sv = sv[:64] + "(...)"
	}
	return fmt.Sprintf("%s %s %s vl=%d %s", e.Tag, e.VR, e.Keyword, e.Length, sv)
}

// newElement resolves dictionary attributes and converts the raw value.
// A conversion failure is not fatal; the element keeps its raw bytes and the
// error is surfaced for logging.
func newElement(t tag.Tag, v vr.VR, length uint32, raw []byte, order binary.ByteOrder, cs *charset) (*Element, error) {
	info := tag.Find(t)
	if v == vr.None {
		v = vr.VR(info.VR)
	}
	e := &Element{
		Tag:      t,
		VR:       v,
		Length:   length,
		RawValue: raw,
		Keyword:  info.Keyword,
		Name:     info.Name,
		VM:       info.VM,
		Retired:  info.Retired,
	}
	value, err := convert(v, raw, order, cs)
	if err != nil {
		e.Value = raw
		return e, fmt.Errorf("converting %s %s: %w", t, v, err)
	}
	e.Value = value
	return e, nil
}

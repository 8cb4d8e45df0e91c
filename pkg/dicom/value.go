package dicom

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

// convert turns an element's raw bytes into a typed value per its VR.
//
// The dynamic type of the result is the Go rendition of the VR: string or
// []string for text, int64/uint sized integers or slices for the binary
// numeric VRs, []tag.Tag for AT, []byte for the blob VRs. Single-value
// elements collapse to the scalar. SQ is not decoded here; the caller keeps
// the raw bytes and reports the sequence as unhandled.
func convert(v vr.VR, raw []byte, order binary.ByteOrder, cs *charset) (any, error) {
	switch v {
	case vr.ST, vr.LT, vr.UT:
		// Text blocks; no multiplicity.
		return trimPadding(decodeText(raw, cs)), nil
	case vr.UI, vr.CS, vr.SH, vr.LO, vr.PN, vr.AE, vr.AS, vr.DA, vr.TM, vr.DT, vr.UC, vr.UR:
		return scalarOrList(splitMultiplicity(decodeText(raw, cs))), nil
	case vr.IS:
		parts := splitMultiplicity(decodeText(raw, nil))
		values := make([]int64, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("IS value %q: %w", p, err)
			}
			values = append(values, n)
		}
		return scalarOrList(values), nil
	case vr.DS:
		parts := splitMultiplicity(decodeText(raw, nil))
		values := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("DS value %q: %w", p, err)
			}
			values = append(values, f)
		}
		return scalarOrList(values), nil
	case vr.US:
		values, err := fixedWidth(raw, 2, func(b []byte) uint16 { return order.Uint16(b) })
		if err != nil {
			return nil, err
		}
		return scalarOrList(values), nil
	case vr.SS:
		values, err := fixedWidth(raw, 2, func(b []byte) int16 { return int16(order.Uint16(b)) })
		if err != nil {
			return nil, err
		}
		return scalarOrList(values), nil
	case vr.UL:
		values, err := fixedWidth(raw, 4, func(b []byte) uint32 { return order.Uint32(b) })
		if err != nil {
			return nil, err
		}
		return scalarOrList(values), nil
	case vr.SL:
		values, err := fixedWidth(raw, 4, func(b []byte) int32 { return int32(order.Uint32(b)) })
		if err != nil {
			return nil, err
		}
		return scalarOrList(values), nil
	case vr.FL:
		values, err := fixedWidth(raw, 4, func(b []byte) float32 { return math.Float32frombits(order.Uint32(b)) })
		if err != nil {
			return nil, err
		}
		return scalarOrList(values), nil
	case vr.FD:
		values, err := fixedWidth(raw, 8, func(b []byte) float64 { return math.Float64frombits(order.Uint64(b)) })
		if err != nil {
			return nil, err
		}
		return scalarOrList(values), nil
	case vr.AT:
		if len(raw)%4 != 0 {
			return nil, fmt.Errorf("AT value length %d not a multiple of 4", len(raw))
		}
		tags := make([]tag.Tag, 0, len(raw)/4)
		for i := 0; i+4 <= len(raw); i += 4 {
			tags = append(tags, tag.New(order.Uint16(raw[i:]), order.Uint16(raw[i+2:])))
		}
		return scalarOrList(tags), nil
	case vr.SQ:
		// Sequences are recognized but not decoded.
		return nil, nil
	case vr.OB, vr.OW, vr.OF, vr.OD, vr.OL, vr.UN:
		return raw, nil
	default:
		// Unknown VR: keep the bytes, not fatal.
		return raw, nil
	}
}

func fixedWidth[T any](raw []byte, width int, decode func([]byte) T) ([]T, error) {
	if len(raw)%width != 0 {
		return nil, fmt.Errorf("value length %d not a multiple of %d", len(raw), width)
	}
	values := make([]T, 0, len(raw)/width)
	for i := 0; i+width <= len(raw); i += width {
		values = append(values, decode(raw[i:i+width]))
	}
	return values, nil
}

// scalarOrList collapses a single-value slice to its scalar.
func scalarOrList[T any](values []T) any {
	if len(values) == 1 {
		return values[0]
	}
	return values
}

func decodeText(raw []byte, cs *charset) string {
	if cs != nil {
		if s, err := cs.decode(raw); err == nil {
			return s
		}
	}
	return string(raw)
}

// trimPadding strips the trailing NUL or space the standard uses to keep
// value lengths even.
func trimPadding(s string) string {
	return strings.TrimRight(s, " \x00")
}

func splitMultiplicity(s string) []string {
	return strings.Split(trimPadding(s), "\\")
}

package dicom

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// charset decodes raw text-VR bytes to UTF-8. A nil charset means 7-bit
// ASCII, which UTF-8 is a superset of.
type charset struct {
	term string
	dec  *encoding.Decoder
}

// codingSystems maps SpecificCharacterSet defined terms to their decoders.
// Terms absent here fall back to ASCII with a warning.
var codingSystems = map[string]encoding.Encoding{
	"ISO_IR 100":     charmap.ISO8859_1,
	"ISO_IR 101":     charmap.ISO8859_2,
	"ISO_IR 109":     charmap.ISO8859_3,
	"ISO_IR 110":     charmap.ISO8859_4,
	"ISO_IR 144":     charmap.ISO8859_5,
	"ISO_IR 127":     charmap.ISO8859_6,
	"ISO_IR 126":     charmap.ISO8859_7,
	"ISO_IR 138":     charmap.ISO8859_8,
	"ISO_IR 148":     charmap.ISO8859_9,
	"ISO_IR 166":     charmap.Windows874,
	"ISO_IR 13":      japanese.ShiftJIS,
	"ISO 2022 IR 13": japanese.ShiftJIS,
	"ISO 2022 IR 87": japanese.ISO2022JP,
}

// parseSpecificCharacterSet resolves the first defined term of a
// (0008,0005) value. The standard allows per-component code extension
// triples; this reader applies the primary term to all text VRs.
func parseSpecificCharacterSet(terms []string) (*charset, error) {
	for _, term := range terms {
		switch term {
		case "", "ISO_IR 6", "ISO 2022 IR 6":
			continue // default repertoire
		}
		enc, ok := codingSystems[term]
		if !ok {
			return nil, fmt.Errorf("unknown character set term %q", term)
		}
		return &charset{term: term, dec: enc.NewDecoder()}, nil
	}
	return nil, nil
}

func (c *charset) decode(raw []byte) (string, error) {
	out, err := c.dec.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding %s text: %w", c.term, err)
	}
	return string(out), nil
}

// charsetFromElement switches the active decoder when the dataset carries a
// SpecificCharacterSet element. Unknown terms keep the current decoder.
func charsetFromElement(e *Element, current *charset) *charset {
	var terms []string
	switch v := e.Value.(type) {
	case string:
		terms = []string{v}
	case []string:
		terms = v
	default:
		return current
	}
	cs, err := parseSpecificCharacterSet(terms)
	if err != nil {
		slog.Warn("unsupported SpecificCharacterSet, keeping ASCII", "error", err)
		return current
	}
	return cs
}

// Package transfer defines DICOM Transfer Syntaxes
package transfer

import "errors"

// Syntax represents a DICOM Transfer Syntax
type Syntax string

// Uncompressed Transfer Syntaxes. Encapsulated syntaxes are recognized by
// name only; this reader does not decode compressed pixel data.
const (
	ImplicitVRLittleEndian Syntax = "1.2.840.10008.1.2"
	ExplicitVRLittleEndian Syntax = "1.2.840.10008.1.2.1"
	ExplicitVRBigEndian    Syntax = "1.2.840.10008.1.2.2" // Retired
	DeflatedExplicitVR     Syntax = "1.2.840.10008.1.2.1.99"
)

// ErrDeflatedNotSupported is returned when a file declares the deflated
// transfer syntax; the caller falls back to explicit VR little endian.
var ErrDeflatedNotSupported = errors.New("deflated transfer syntax not supported")

// DecodeMode maps a transfer syntax to the element decoding mode of the main
// dataset. Unknown UIDs assume explicit VR little endian.
func (s Syntax) DecodeMode() (implicitVR, littleEndian bool, err error) {
	switch s {
	case ImplicitVRLittleEndian:
		return true, true, nil
	case ExplicitVRLittleEndian:
		return false, true, nil
	case ExplicitVRBigEndian:
		return false, false, nil
	case DeflatedExplicitVR:
		return true, true, ErrDeflatedNotSupported
	default:
		return false, true, nil
	}
}

// IsExplicitVR returns true if this transfer syntax uses explicit VR
func (s Syntax) IsExplicitVR() bool {
	return s != ImplicitVRLittleEndian
}

// IsLittleEndian returns true if this transfer syntax uses little endian byte order
func (s Syntax) IsLittleEndian() bool {
	return s != ExplicitVRBigEndian
}

// Name returns a human-readable name for the transfer syntax
func (s Syntax) Name() string {
	switch s {
	case ImplicitVRLittleEndian:
		return "Implicit VR Little Endian"
	case ExplicitVRLittleEndian:
		return "Explicit VR Little Endian"
	case ExplicitVRBigEndian:
		return "Explicit VR Big Endian (Retired)"
	case DeflatedExplicitVR:
		return "Deflated Explicit VR Little Endian"
	default:
		return string(s)
	}
}

// FromUID converts a UID string to a Syntax
func FromUID(uid string) Syntax {
	return Syntax(uid)
}

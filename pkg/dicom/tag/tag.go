// Package tag defines DICOM tags and the static data dictionary
package tag

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag represents a DICOM tag with Group and Element
type Tag struct {
	Group   uint16
	Element uint16
}

// New creates a new Tag
func New(group, element uint16) Tag {
	return Tag{Group: group, Element: element}
}

// Equals compares two tags
func (t Tag) Equals(other Tag) bool {
	return t.Group == other.Group && t.Element == other.Element
}

// IsPrivate returns true if this is a private tag (odd group number)
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// IsMeta returns true if this tag is in the File Meta Information group
func (t Tag) IsMeta() bool {
	return t.Group == 0x0002
}

// IsCommand returns true if this tag is in the Command Set group
func (t Tag) IsCommand() bool {
	return t.Group == 0x0000
}

// String returns the debug form, e.g. "(0010,0010)"
func (t Tag) String() string {
	return fmt.Sprintf("(%04x,%04x)", t.Group, t.Element)
}

// Hex returns the canonical lowercase 8-hex-digit form, e.g. "00100010"
func (t Tag) Hex() string {
	return fmt.Sprintf("%04x%04x", t.Group, t.Element)
}

// HexGroup returns the group half of the canonical form, e.g. "0010"
func (t Tag) HexGroup() string {
	return fmt.Sprintf("%04x", t.Group)
}

// HexElement returns the element half of the canonical form, e.g. "0010"
func (t Tag) HexElement() string {
	return fmt.Sprintf("%04x", t.Element)
}

// Compare orders tags by group, then element
func (t Tag) Compare(other Tag) int {
	switch {
	case t.Group != other.Group && t.Group < other.Group:
		return -1
	case t.Group != other.Group:
		return 1
	case t.Element < other.Element:
		return -1
	case t.Element > other.Element:
		return 1
	}
	return 0
}

// Parse accepts "(0010,0010)", "0010,0010" or "00100010" in any case
func Parse(s string) (Tag, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', ',', ' ', '\t', '\n', 'x':
			return -1
		}
		return r
	}, strings.TrimPrefix(strings.ToLower(s), "0x"))
	if len(clean) != 8 {
		return Tag{}, fmt.Errorf("malformed tag %q", s)
	}
	group, err := strconv.ParseUint(clean[:4], 16, 16)
	if err != nil {
		return Tag{}, fmt.Errorf("malformed tag group in %q: %w", s, err)
	}
	element, err := strconv.ParseUint(clean[4:], 16, 16)
	if err != nil {
		return Tag{}, fmt.Errorf("malformed tag element in %q: %w", s, err)
	}
	return Tag{Group: uint16(group), Element: uint16(element)}, nil
}

// Standard DICOM Tags - Command Set (Group 0000)
var (
	CommandGroupLength        = Tag{0x0000, 0x0000}
	AffectedSOPClassUID       = Tag{0x0000, 0x0002}
	CommandField              = Tag{0x0000, 0x0100}
	MessageID                 = Tag{0x0000, 0x0110}
	MessageIDBeingRespondedTo = Tag{0x0000, 0x0120}
	CommandDataSetType        = Tag{0x0000, 0x0800}
	Status                    = Tag{0x0000, 0x0900}
)

// File Meta Information (Group 0002)
var (
	FileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	FileMetaInformationVersion     = Tag{0x0002, 0x0001}
	MediaStorageSOPClassUID        = Tag{0x0002, 0x0002}
	MediaStorageSOPInstanceUID     = Tag{0x0002, 0x0003}
	TransferSyntaxUID              = Tag{0x0002, 0x0010}
	ImplementationClassUID         = Tag{0x0002, 0x0012}
	ImplementationVersionName      = Tag{0x0002, 0x0013}
	SourceApplicationEntityTitle   = Tag{0x0002, 0x0016}
)

// SOP Common / General Study (Group 0008)
var (
	SpecificCharacterSet   = Tag{0x0008, 0x0005}
	ImageType              = Tag{0x0008, 0x0008}
	SOPClassUID            = Tag{0x0008, 0x0016}
	SOPInstanceUID         = Tag{0x0008, 0x0018}
	StudyDate              = Tag{0x0008, 0x0020}
	StudyTime              = Tag{0x0008, 0x0030}
	AccessionNumber        = Tag{0x0008, 0x0050}
	Modality               = Tag{0x0008, 0x0060}
	Manufacturer           = Tag{0x0008, 0x0070}
	InstitutionName        = Tag{0x0008, 0x0080}
	ReferringPhysicianName = Tag{0x0008, 0x0090}
	StudyDescription       = Tag{0x0008, 0x1030}
	SeriesDescription      = Tag{0x0008, 0x103E}
)

// Patient Module (Group 0010)
var (
	PatientName      = Tag{0x0010, 0x0010}
	PatientID        = Tag{0x0010, 0x0020}
	PatientBirthDate = Tag{0x0010, 0x0030}
	PatientSex       = Tag{0x0010, 0x0040}
)

// Acquisition (Group 0018)
var (
	SliceThickness = Tag{0x0018, 0x0050}
	KVP            = Tag{0x0018, 0x0060}
)

// Relationship (Group 0020)
var (
	StudyInstanceUID        = Tag{0x0020, 0x000D}
	SeriesInstanceUID       = Tag{0x0020, 0x000E}
	StudyID                 = Tag{0x0020, 0x0010}
	SeriesNumber            = Tag{0x0020, 0x0011}
	InstanceNumber          = Tag{0x0020, 0x0013}
	ImagePositionPatient    = Tag{0x0020, 0x0032}
	ImageOrientationPatient = Tag{0x0020, 0x0037}
	SliceLocation           = Tag{0x0020, 0x1041}
)

// Image Pixel Module (Group 0028)
var (
	SamplesPerPixel           = Tag{0x0028, 0x0002}
	PhotometricInterpretation = Tag{0x0028, 0x0004}
	NumberOfFrames            = Tag{0x0028, 0x0008}
	Rows                      = Tag{0x0028, 0x0010}
	Columns                   = Tag{0x0028, 0x0011}
	PixelSpacing              = Tag{0x0028, 0x0030}
	BitsAllocated             = Tag{0x0028, 0x0100}
	BitsStored                = Tag{0x0028, 0x0101}
	HighBit                   = Tag{0x0028, 0x0102}
	PixelRepresentation       = Tag{0x0028, 0x0103}
	WindowCenter              = Tag{0x0028, 0x1050}
	WindowWidth               = Tag{0x0028, 0x1051}
	RescaleIntercept          = Tag{0x0028, 0x1052}
	RescaleSlope              = Tag{0x0028, 0x1053}
	RescaleType               = Tag{0x0028, 0x1054}
)

// Pixel Data
var (
	PixelData = Tag{0x7FE0, 0x0010}
)

// Sequence delimiters
var (
	Item                     = Tag{0xFFFE, 0xE000}
	ItemDelimitationItem     = Tag{0xFFFE, 0xE00D}
	SequenceDelimitationItem = Tag{0xFFFE, 0xE0DD}
)

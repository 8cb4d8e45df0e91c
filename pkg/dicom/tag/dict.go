package tag

import "strings"

// Info holds the data dictionary entry for a tag.
type Info struct {
	Tag     Tag
	VR      string
	VM      string
	Name    string
	Keyword string
	Retired bool
}

// Sentinel keywords for tags the dictionary cannot resolve.
const (
	UnknownKeyword     = "Unknown"
	PrivateKeyword     = "Unknown-PrivateTag"
	GroupLengthKeyword = "GroupLength"
)

// dict is the static data dictionary, keyed by tag. It covers the tags this
// reader and its callers touch, not the full standard.
var dict = map[Tag]Info{
	CommandGroupLength:        {CommandGroupLength, "UL", "1", "Command Group Length", "CommandGroupLength", false},
	AffectedSOPClassUID:       {AffectedSOPClassUID, "UI", "1", "Affected SOP Class UID", "AffectedSOPClassUID", false},
	CommandField:              {CommandField, "US", "1", "Command Field", "CommandField", false},
	MessageID:                 {MessageID, "US", "1", "Message ID", "MessageID", false},
	MessageIDBeingRespondedTo: {MessageIDBeingRespondedTo, "US", "1", "Message ID Being Responded To", "MessageIDBeingRespondedTo", false},
	CommandDataSetType:        {CommandDataSetType, "US", "1", "Command Data Set Type", "CommandDataSetType", false},
	Status:                    {Status, "US", "1", "Status", "Status", false},

	FileMetaInformationGroupLength: {FileMetaInformationGroupLength, "UL", "1", "File Meta Information Group Length", "FileMetaInformationGroupLength", false},
	FileMetaInformationVersion:     {FileMetaInformationVersion, "OB", "1", "File Meta Information Version", "FileMetaInformationVersion", false},
	MediaStorageSOPClassUID:        {MediaStorageSOPClassUID, "UI", "1", "Media Storage SOP Class UID", "MediaStorageSOPClassUID", false},
	MediaStorageSOPInstanceUID:     {MediaStorageSOPInstanceUID, "UI", "1", "Media Storage SOP Instance UID", "MediaStorageSOPInstanceUID", false},
	TransferSyntaxUID:              {TransferSyntaxUID, "UI", "1", "Transfer Syntax UID", "TransferSyntaxUID", false},
	ImplementationClassUID:         {ImplementationClassUID, "UI", "1", "Implementation Class UID", "ImplementationClassUID", false},
	ImplementationVersionName:      {ImplementationVersionName, "SH", "1", "Implementation Version Name", "ImplementationVersionName", false},
	SourceApplicationEntityTitle:   {SourceApplicationEntityTitle, "AE", "1", "Source Application Entity Title", "SourceApplicationEntityTitle", false},

	SpecificCharacterSet:   {SpecificCharacterSet, "CS", "1-n", "Specific Character Set", "SpecificCharacterSet", false},
	ImageType:              {ImageType, "CS", "2-n", "Image Type", "ImageType", false},
	SOPClassUID:            {SOPClassUID, "UI", "1", "SOP Class UID", "SOPClassUID", false},
	SOPInstanceUID:         {SOPInstanceUID, "UI", "1", "SOP Instance UID", "SOPInstanceUID", false},
	StudyDate:              {StudyDate, "DA", "1", "Study Date", "StudyDate", false},
	StudyTime:              {StudyTime, "TM", "1", "Study Time", "StudyTime", false},
	AccessionNumber:        {AccessionNumber, "SH", "1", "Accession Number", "AccessionNumber", false},
	Modality:               {Modality, "CS", "1", "Modality", "Modality", false},
	Manufacturer:           {Manufacturer, "LO", "1", "Manufacturer", "Manufacturer", false},
	InstitutionName:        {InstitutionName, "LO", "1", "Institution Name", "InstitutionName", false},
	ReferringPhysicianName: {ReferringPhysicianName, "PN", "1", "Referring Physician's Name", "ReferringPhysicianName", false},
	StudyDescription:       {StudyDescription, "LO", "1", "Study Description", "StudyDescription", false},
	SeriesDescription:      {SeriesDescription, "LO", "1", "Series Description", "SeriesDescription", false},

	PatientName:      {PatientName, "PN", "1", "Patient's Name", "PatientName", false},
	PatientID:        {PatientID, "LO", "1", "Patient ID", "PatientID", false},
	PatientBirthDate: {PatientBirthDate, "DA", "1", "Patient's Birth Date", "PatientBirthDate", false},
	PatientSex:       {PatientSex, "CS", "1", "Patient's Sex", "PatientSex", false},

	SliceThickness: {SliceThickness, "DS", "1", "Slice Thickness", "SliceThickness", false},
	KVP:            {KVP, "DS", "1", "KVP", "KVP", false},

	StudyInstanceUID:        {StudyInstanceUID, "UI", "1", "Study Instance UID", "StudyInstanceUID", false},
	SeriesInstanceUID:       {SeriesInstanceUID, "UI", "1", "Series Instance UID", "SeriesInstanceUID", false},
	StudyID:                 {StudyID, "SH", "1", "Study ID", "StudyID", false},
	SeriesNumber:            {SeriesNumber, "IS", "1", "Series Number", "SeriesNumber", false},
	InstanceNumber:          {InstanceNumber, "IS", "1", "Instance Number", "InstanceNumber", false},
	ImagePositionPatient:    {ImagePositionPatient, "DS", "3", "Image Position (Patient)", "ImagePositionPatient", false},
	ImageOrientationPatient: {ImageOrientationPatient, "DS", "6", "Image Orientation (Patient)", "ImageOrientationPatient", false},
	SliceLocation:           {SliceLocation, "DS", "1", "Slice Location", "SliceLocation", false},

	SamplesPerPixel:           {SamplesPerPixel, "US", "1", "Samples per Pixel", "SamplesPerPixel", false},
	PhotometricInterpretation: {PhotometricInterpretation, "CS", "1", "Photometric Interpretation", "PhotometricInterpretation", false},
	NumberOfFrames:            {NumberOfFrames, "IS", "1", "Number of Frames", "NumberOfFrames", false},
	Rows:                      {Rows, "US", "1", "Rows", "Rows", false},
	Columns:                   {Columns, "US", "1", "Columns", "Columns", false},
	PixelSpacing:              {PixelSpacing, "DS", "2", "Pixel Spacing", "PixelSpacing", false},
	BitsAllocated:             {BitsAllocated, "US", "1", "Bits Allocated", "BitsAllocated", false},
	BitsStored:                {BitsStored, "US", "1", "Bits Stored", "BitsStored", false},
	HighBit:                   {HighBit, "US", "1", "High Bit", "HighBit", false},
	PixelRepresentation:       {PixelRepresentation, "US", "1", "Pixel Representation", "PixelRepresentation", false},
	WindowCenter:              {WindowCenter, "DS", "1-n", "Window Center", "WindowCenter", false},
	WindowWidth:               {WindowWidth, "DS", "1-n", "Window Width", "WindowWidth", false},
	RescaleIntercept:          {RescaleIntercept, "DS", "1", "Rescale Intercept", "RescaleIntercept", false},
	RescaleSlope:              {RescaleSlope, "DS", "1", "Rescale Slope", "RescaleSlope", false},
	RescaleType:               {RescaleType, "LO", "1", "Rescale Type", "RescaleType", false},

	PixelData: {PixelData, "OW", "1", "Pixel Data", "PixelData", false},

	Item:                     {Item, "", "1", "Item", "Item", false},
	ItemDelimitationItem:     {ItemDelimitationItem, "", "1", "Item Delimitation Item", "ItemDelimitationItem", false},
	SequenceDelimitationItem: {SequenceDelimitationItem, "", "1", "Sequence Delimitation Item", "SequenceDelimitationItem", false},
}

// Find resolves a tag against the dictionary.
//
// Element 0x0000 of any even group is a group length (VR UL). Private tags
// never consult the dictionary; they resolve to the private sentinel with the
// raw value left to the caller. Unknown even tags resolve to the Unknown
// sentinel so a file with vendor extensions still parses.
func Find(t Tag) Info {
	if t.IsPrivate() {
		return Info{Tag: t, VR: "UN", VM: "1", Name: PrivateKeyword, Keyword: PrivateKeyword}
	}
	if info, ok := dict[t]; ok {
		return info
	}
	if t.Element == 0x0000 {
		return Info{Tag: t, VR: "UL", VM: "1", Name: "Group Length", Keyword: GroupLengthKeyword}
	}
	return Info{Tag: t, VR: "UN", VM: "1", Name: UnknownKeyword, Keyword: UnknownKeyword}
}

// FindByKeyword resolves a dictionary entry by its keyword, case-insensitively.
func FindByKeyword(keyword string) (Info, bool) {
	for _, info := range dict {
		if strings.EqualFold(info.Keyword, keyword) {
			return info, true
		}
	}
	return Info{}, false
}

// FindByName resolves a dictionary entry by its human-readable name,
// case-insensitively.
func FindByName(name string) (Info, bool) {
	for _, info := range dict {
		if strings.EqualFold(info.Name, name) {
			return info, true
		}
	}
	return Info{}, false
}

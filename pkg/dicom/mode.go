package dicom

import (
	"encoding/binary"
	"log/slog"

	"github.com/openscan/dicom.go/pkg/dicom/transfer"
	"github.com/openscan/dicom.go/pkg/dicom/vr"
)

// stopFunc decides, before a header is consumed, whether a dataset read
// should stop at the probed element. v is vr.None when the stream is
// implicit or the VR is not yet known.
type stopFunc func(group uint16, v vr.VR, length uint32) bool

// Stop predicates for the three top-level blocks. File Meta is exactly the
// 0x0002 group and the Command Set exactly 0x0000; the first foreign tag
// ends the block without being consumed.
func notGroupMeta(group uint16, _ vr.VR, _ uint32) bool {
	return group != 0x0002
}

func notGroupCommand(group uint16, _ vr.VR, _ uint32) bool {
	return group != 0x0000
}

// probeImplicitVR peeks at the next element header and decides whether the
// stream is implicit VR, overriding the caller's assumption when the two
// bytes in VR position cannot be a VR code. The broad 0x40..0x5B byte test
// and the inSequence short-circuit mirror how the block readers trust their
// surrounding context.
func probeImplicitVR(c *Cursor, pos int, assumed, little, inSequence bool, stop stopFunc) bool {
	if inSequence && assumed {
		return true
	}
	probe, err := c.Slice(pos, 6)
	if err != nil {
		return assumed
	}
	foundImplicit := !(vrCandidateByte(probe[4]) && vrCandidateByte(probe[5]))
	if foundImplicit != assumed && stop != nil {
		group := byteOrder(little).Uint16(probe[0:2])
		if stop(group, vr.None, 0) {
			return foundImplicit
		}
	}
	if foundImplicit && inSequence {
		return true
	}
	return foundImplicit
}

func vrCandidateByte(b byte) bool {
	return b >= 0x40 && b <= 0x5B
}

// detectMode resolves the decoding mode of the main dataset from the
// TransferSyntaxUID meta element, or by sniffing the next header bytes when
// the element is absent. The group>=0x0400 big-endian guess is a fallback of
// last resort for transfer-syntax-less streams.
func detectMode(c *Cursor, pos int, tsElement *Element) (implicitVR, littleEndian bool) {
	if c.Remaining(pos) == 0 {
		return true, true
	}

	if tsElement == nil {
		probe, err := c.Slice(pos, 6)
		if err != nil {
			return true, true
		}
		fields, err := Unpack("<HH2s", probe)
		if err != nil {
			return true, true
		}
		group := fields[0].(uint16)
		if vr.Known(fields[2].(string)) {
			if group >= 0x0400 {
				return false, false
			}
			return false, true
		}
		return true, true
	}

	uid, _ := tsElement.GetString()
	syntax := transfer.FromUID(uid)
	implicit, little, err := syntax.DecodeMode()
	if err != nil {
		slog.Warn("transfer syntax not implemented, assuming implicit VR little endian",
			"uid", uid, "name", syntax.Name())
		return true, true
	}
	return implicit, little
}

func byteOrder(little bool) binary.ByteOrder {
	if little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

package dicom

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
)

// pixelParams is the image-pixel description harvested from group 0x0028.
// Window and rescale values carry display defaults; the bit-layout fields
// have none and are required.
type pixelParams struct {
	bitsAllocated       int
	bitsStored          int
	highBit             int
	pixelRepresentation int
	photometric         string

	windowCenter     float64
	windowWidth      float64
	rescaleSlope     float64
	rescaleIntercept float64
}

const (
	defaultWindowCenter = 610
	defaultWindowWidth  = 1221
)

// GetPixelData reconstructs a grayscale rendering of the PixelData element:
// one CSS-style "#RRGGBB" string per pixel with R=G=B, row-major in source
// order. No geometry is applied. Returns nil with no error when the dataset
// has no pixel data.
func GetPixelData(fd *FullDataset) ([]string, error) {
	pixel := GetTagValue(fd, tag.PixelData)
	if pixel == nil {
		slog.Debug("no PixelData element in dataset")
		return nil, nil
	}
	params, err := harvestPixelParams(fd)
	if err != nil {
		return nil, err
	}
	return renderPixels(pixel.RawValue, params)
}

func harvestPixelParams(fd *FullDataset) (pixelParams, error) {
	p := pixelParams{
		photometric:      "MONOCHROME2",
		windowCenter:     defaultWindowCenter,
		windowWidth:      defaultWindowWidth,
		rescaleSlope:     1,
		rescaleIntercept: 0,
	}

	for _, req := range []struct {
		t    tag.Tag
		dest *int
	}{
		{tag.BitsAllocated, &p.bitsAllocated},
		{tag.BitsStored, &p.bitsStored},
		{tag.HighBit, &p.highBit},
		{tag.PixelRepresentation, &p.pixelRepresentation},
	} {
		e := GetTagValue(fd, req.t)
		if e == nil {
			return p, fmt.Errorf("missing required element %s (%s)", tag.Find(req.t).Keyword, req.t)
		}
		n, ok := e.GetInt()
		if !ok {
			return p, fmt.Errorf("element %s is not an integer", req.t)
		}
		*req.dest = n
	}

	if e := GetTagValue(fd, tag.PhotometricInterpretation); e != nil {
		if s, ok := e.GetString(); ok {
			p.photometric = strings.TrimSpace(s)
		}
	}
	for _, opt := range []struct {
		t    tag.Tag
		dest *float64
	}{
		{tag.WindowCenter, &p.windowCenter},
		{tag.WindowWidth, &p.windowWidth},
		{tag.RescaleSlope, &p.rescaleSlope},
		{tag.RescaleIntercept, &p.rescaleIntercept},
	} {
		if e := GetTagValue(fd, opt.t); e != nil {
			if f, ok := e.GetFloat(); ok {
				*opt.dest = f
			}
		}
	}
	return p, nil
}

func renderPixels(raw []byte, p pixelParams) ([]string, error) {
	if p.bitsAllocated <= 0 {
		return nil, fmt.Errorf("bitsAllocated %d out of range", p.bitsAllocated)
	}
	bytesPerPixel := (p.bitsAllocated + 7) / 8
	if bytesPerPixel > 8 {
		return nil, fmt.Errorf("bitsAllocated %d exceeds 64-bit samples", p.bitsAllocated)
	}
	if len(raw)%bytesPerPixel != 0 {
		slog.Warn("pixel data not a whole number of samples",
			"bytes", len(raw), "bytesPerPixel", bytesPerPixel)
	}

	// Stored samples are little-endian when the high bit tops out the stored
	// width; reversing each chunk yields big-endian hex for parsing.
	reverse := p.highBit+1 == p.bitsStored

	lo := p.windowCenter - p.windowWidth/2
	hi := p.windowCenter + p.windowWidth/2
	// Assumes the window spans zero; all-positive windows compress toward black.
	scale := 255 / (math.Abs(lo) + math.Abs(hi))

	out := make([]string, 0, len(raw)/bytesPerPixel)
	for off := 0; off+bytesPerPixel <= len(raw); off += bytesPerPixel {
		chunk := raw[off : off+bytesPerPixel]
		v, err := sampleValue(chunk, reverse, p.pixelRepresentation != 0)
		if err != nil {
			return nil, err
		}

		scaled := p.rescaleSlope*float64(v) + p.rescaleIntercept
		scaled = math.Min(math.Max(scaled, lo), hi)
		if lo < 0 {
			scaled -= lo
		}
		gray := int(math.Ceil(scaled * scale))
		if gray < 0 {
			gray = 0
		}
		if gray > 255 {
			gray = 255
		}
		if p.photometric == "MONOCHROME1" {
			gray = 255 - gray
		}
		pair := strings.ToUpper(fmt.Sprintf("%02x", gray))
		out = append(out, "#"+pair+pair+pair)
	}
	return out, nil
}

// sampleValue assembles one pixel integer from its chunk. The chunk is
// rendered as big-endian hex and parsed, reversing first for little-endian
// storage.
func sampleValue(chunk []byte, reverse, signed bool) (int64, error) {
	work := chunk
	if reverse {
		work = make([]byte, len(chunk))
		for i, b := range chunk {
			work[len(chunk)-1-i] = b
		}
	}
	h := hex.EncodeToString(work)
	u, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("pixel chunk %q: %w", h, err)
	}
	if !signed {
		return int64(u), nil
	}
	bits := uint(len(chunk) * 8)
	if u&(1<<(bits-1)) != 0 {
		// Two's complement; 0x8000 lands on -32768, not 0.
		return int64(u) - (1 << bits), nil
	}
	return int64(u), nil
}

package dicom

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/openscan/dicom.go/pkg/dicom/tag"
)

// Dataset is an insertion-ordered mapping from safe keys to elements. The
// safe key is the element's dictionary keyword suffixed with an occurrence
// counter ("PatientName-1", "PatientName-2", ...); the counter is always
// present, even for the first occurrence.
type Dataset struct {
	keys     []string
	elements map[string]*Element
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{elements: make(map[string]*Element)}
}

// Put inserts an element under the next safe key for its keyword and returns
// the key used.
func (ds *Dataset) Put(e *Element) string {
	key := ds.safeKey(e.Keyword)
	ds.keys = append(ds.keys, key)
	ds.elements[key] = e
	return key
}

func (ds *Dataset) safeKey(keyword string) string {
	for n := 1; ; n++ {
		key := fmt.Sprintf("%s-%d", keyword, n)
		if _, taken := ds.elements[key]; !taken {
			return key
		}
	}
}

// Get returns the element stored under key.
func (ds *Dataset) Get(key string) (*Element, bool) {
	e, ok := ds.elements[key]
	return e, ok
}

// Len returns the number of elements.
func (ds *Dataset) Len() int {
	return len(ds.keys)
}

// Keys returns the safe keys in insertion order.
func (ds *Dataset) Keys() []string {
	return ds.keys
}

// Elements returns the elements in insertion order.
func (ds *Dataset) Elements() []*Element {
	out := make([]*Element, 0, len(ds.keys))
	for _, k := range ds.keys {
		out = append(out, ds.elements[k])
	}
	return out
}

// FindByTag returns the first element with the given tag.
func (ds *Dataset) FindByTag(t tag.Tag) (*Element, bool) {
	for _, k := range ds.keys {
		if e := ds.elements[k]; e.Tag.Equals(t) {
			return e, true
		}
	}
	return nil, false
}

// String renders one element per line in insertion order.
func (ds *Dataset) String() string {
	var b strings.Builder
	for _, k := range ds.keys {
		fmt.Fprintf(&b, "%-36s %s\n", k, ds.elements[k])
	}
	return b.String()
}

// MarshalJSON emits an object keyed by safe key, preserving insertion order.
func (ds *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range ds.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		e := ds.elements[k]
		entry, err := json.Marshal(map[string]any{
			"tag":   e.Hex(),
			"vr":    string(e.VR),
			"name":  e.Name,
			"value": jsonValue(e),
		})
		if err != nil {
			return nil, err
		}
		buf.Write(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(e *Element) any {
	if raw, ok := e.Value.([]byte); ok {
		return fmt.Sprintf("<%d bytes>", len(raw))
	}
	return e.Value
}

// FullDataset is the complete product of a file read: the main dataset, the
// File Meta Information block, the Command Set block, and the decode mode of
// the main dataset.
type FullDataset struct {
	Main    *Dataset
	Meta    *Dataset
	Command *Dataset

	IsImplicitVR   bool
	IsLittleEndian bool
}

// blocks returns the three datasets in lookup priority order: main, meta,
// command.
func (fd *FullDataset) blocks() []*Dataset {
	return []*Dataset{fd.Main, fd.Meta, fd.Command}
}

// GetTagValue finds the first element matching id across the main dataset,
// the meta block, then the command set. id may be:
//
//   - a []uint16 or []int of two values, matched as (group, element);
//   - a []string of two hex values, matched case-insensitively;
//   - a string, matched case-insensitively against the element's name,
//     keyword, safe key, or tag form with whitespace, '(', ')' and ','
//     stripped (so "(0010,0010)", "0010,0010" and "00100010" all hit).
//
// Returns nil when nothing matches.
func GetTagValue(fd *FullDataset, id any) *Element {
	switch want := id.(type) {
	case []uint16:
		if len(want) != 2 {
			return nil
		}
		return findByTag(fd, tag.New(want[0], want[1]))
	case []int:
		if len(want) != 2 {
			return nil
		}
		return findByTag(fd, tag.New(uint16(want[0]), uint16(want[1])))
	case tag.Tag:
		return findByTag(fd, want)
	case []string:
		if len(want) != 2 {
			return nil
		}
		t, err := tag.Parse(want[0] + want[1])
		if err != nil {
			return nil
		}
		return findByTag(fd, t)
	case string:
		return findByText(fd, want)
	default:
		return nil
	}
}

func findByTag(fd *FullDataset, t tag.Tag) *Element {
	for _, ds := range fd.blocks() {
		if ds == nil {
			continue
		}
		if e, ok := ds.FindByTag(t); ok {
			return e
		}
	}
	return nil
}

func findByText(fd *FullDataset, id string) *Element {
	want := stripTagText(id)
	for _, ds := range fd.blocks() {
		if ds == nil {
			continue
		}
		for _, k := range ds.keys {
			e := ds.elements[k]
			if strings.EqualFold(e.Name, id) ||
				strings.EqualFold(e.Keyword, id) ||
				strings.EqualFold(k, id) ||
				strings.EqualFold(e.Hex(), want) {
				return e
			}
		}
	}
	return nil
}

func stripTagText(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '(', ')', ',':
			return -1
		}
		return r
	}, s)
}

// GetTagsGroup returns the elements whose group matches the given 4-hex-digit
// string, re-keyed by the lower-camel-case form of their keyword.
func GetTagsGroup(fd *FullDataset, hexGroup string) map[string]*Element {
	want := strings.ToLower(hexGroup)
	out := make(map[string]*Element)
	for _, ds := range fd.blocks() {
		if ds == nil {
			continue
		}
		for _, e := range ds.Elements() {
			if e.Tag.HexGroup() != want {
				continue
			}
			key := lowerCamel(e.Keyword)
			if _, taken := out[key]; !taken {
				out[key] = e
			}
		}
	}
	return out
}

func lowerCamel(keyword string) string {
	if keyword == "" {
		return keyword
	}
	return strings.ToLower(keyword[:1]) + keyword[1:]
}

// FindByPattern returns every element whose keyword or name matches the glob
// pattern, case-insensitively, in block priority order.
func FindByPattern(fd *FullDataset, pattern string) ([]*Element, error) {
	g, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	var out []*Element
	for _, ds := range fd.blocks() {
		if ds == nil {
			continue
		}
		for _, e := range ds.Elements() {
			if g.Match(strings.ToLower(e.Keyword)) || g.Match(strings.ToLower(e.Name)) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// String renders the three blocks with headers.
func (fd *FullDataset) String() string {
	var b strings.Builder
	mode := "explicit"
	if fd.IsImplicitVR {
		mode = "implicit"
	}
	endian := "little-endian"
	if !fd.IsLittleEndian {
		endian = "big-endian"
	}
	fmt.Fprintf(&b, "== transfer: %s VR, %s ==\n", mode, endian)
	for _, section := range []struct {
		name string
		ds   *Dataset
	}{{"file meta", fd.Meta}, {"command set", fd.Command}, {"dataset", fd.Main}} {
		if section.ds == nil || section.ds.Len() == 0 {
			continue
		}
		fmt.Fprintf(&b, "-- %s --\n%s", section.name, section.ds)
	}
	return b.String()
}

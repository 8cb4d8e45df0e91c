package dicom

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// DefaultUIDRoot is the org root used when callers pass an empty prefix.
const DefaultUIDRoot = "1.2.826.0.1.3680043.10.1457"

// NewUID generates a DICOM unique identifier under prefix.
// Format: prefix.<timestamp>.<nanoseconds>.<random>
func NewUID(prefix string) string {
	if prefix == "" {
		prefix = DefaultUIDRoot
	}
	if prefix[len(prefix)-1] != '.' {
		prefix += "."
	}
	now := time.Now()
	return fmt.Sprintf("%s%s.%d.%d", prefix, now.Format("20060102150405"), now.Nanosecond(), rand.Intn(10000))
}

// HashUID derives a stable UUID string from any JSON-encodable value. Equal
// inputs always map to the same identifier, which makes it usable as a
// de-identification key.
func HashUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	sum := md5.Sum(raw)
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		return ""
	}
	return id.String()
}

package dicom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUID(t *testing.T) {
	uid := NewUID("1.2.3")
	assert.True(t, strings.HasPrefix(uid, "1.2.3."), uid)

	uid = NewUID("1.2.3.")
	assert.True(t, strings.HasPrefix(uid, "1.2.3."), uid)
	assert.False(t, strings.Contains(uid, ".."), uid)

	uid = NewUID("")
	assert.True(t, strings.HasPrefix(uid, DefaultUIDRoot+"."), uid)
}

func TestHashUID(t *testing.T) {
	a := HashUID(map[string]string{"patient": "BAG-001"})
	b := HashUID(map[string]string{"patient": "BAG-001"})
	c := HashUID(map[string]string{"patient": "BAG-002"})

	assert.Equal(t, a, b, "equal inputs hash to the same identifier")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}

package coal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHex(t *testing.T) {
	assert.False(t, IsHex("foo"))
	assert.False(t, IsHex(""))
	assert.True(t, IsHex(New().Hex()))
}

func TestFromHex(t *testing.T) {
	id := New()

	parsed, err := FromHex(id.Hex())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = FromHex("foo")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	assert.NotEqual(t, New(), New())
	assert.False(t, New().IsZero())
}

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenUUID(t *testing.T) {
	a, b := GenUUID(), GenUUID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	k1, err := GenerateKey("sk-iris-")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(k1, "sk-iris-"))
	assert.Len(t, k1, len("sk-iris-")+48)

	k2, err := GenerateKey("sk-iris-")
	assert.NoError(t, err)
	assert.NotEqual(t, k1, k2)
}

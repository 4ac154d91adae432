package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "0xabc", NormalizeAddress("  0xABC "))
	assert.Equal(t, "", NormalizeAddress("   "))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
	assert.True(t, IsValidAddress("0xde709f2102306220921060314715629080e2fb77"))
	assert.False(t, IsValidAddress("0x123"))
	assert.False(t, IsValidAddress("52908400098527886E0F7030069857D2E4169EE7"))
	assert.False(t, IsValidAddress("0xzz908400098527886e0f7030069857d2e4169ee7"))
	assert.False(t, IsValidAddress(""))
}

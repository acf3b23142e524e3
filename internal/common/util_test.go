package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"signing secret", SecretByteLength, 64},
		{"short", 4, 8},
		{"empty", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MakeRandHexString(tt.size)
			require.NoError(t, err)
			assert.Len(t, s, tt.want)

			raw, err := hex.DecodeString(s)
			require.NoError(t, err)
			assert.Len(t, raw, tt.size)
		})
	}

	a, err := MakeRandHexString(SecretByteLength)
	require.NoError(t, err)
	b, err := MakeRandHexString(SecretByteLength)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two secrets must not collide")
}

func TestGenerateRandByteArray_SaltSizes(t *testing.T) {
	for _, n := range []int{0, 16, 32} {
		assert.Len(t, GenerateRandByteArray(n), n)
	}
	assert.NotEqual(t, GenerateRandByteArray(16), GenerateRandByteArray(16))
}

func TestWipeByteArray(t *testing.T) {
	password := []byte("correct horse")
	WipeByteArray(password)
	assert.Equal(t, make([]byte, len("correct horse")), password)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

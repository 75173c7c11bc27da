package securemem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReleaseZeroesBackingStorage(t *testing.T) {
	b := FromBytes([]byte("top-secret-key-material"))
	raw := b.Bytes()
	b.Release()

	for i, v := range raw {
		assert.Zero(t, v, "byte %d was not zeroed", i)
	}
	assert.Nil(t, b.Bytes())
}

func TestReleaseIsIdempotent(t *testing.T) {
	b := FromBytes([]byte("secret"))
	b.Release()
	assert.NotPanics(t, func() { b.Release() })
}

func TestCloneIsIndependent(t *testing.T) {
	b := FromBytes([]byte("secret"))
	clone := b.Clone()
	b.Release()

	assert.Nil(t, b.Bytes())
	assert.Equal(t, []byte("secret"), clone.Bytes())
}

func TestEqualSameContent(t *testing.T) {
	assert.True(t, Equal([]byte("abc"), []byte("abc")))
}

func TestEqualDifferentLength(t *testing.T) {
	assert.False(t, Equal([]byte("abc"), []byte("abcd")))
}

func TestEqualDifferentContentSameLength(t *testing.T) {
	assert.False(t, Equal([]byte("abc"), []byte("abd")))
}

func TestEqualHexAndBase64(t *testing.T) {
	assert.True(t, EqualHex("deadbeef", "deadbeef"))
	assert.False(t, EqualHex("deadbeef", "deadbeee"))
	assert.True(t, EqualBase64("aGVsbG8=", "aGVsbG8="))
	assert.False(t, EqualBase64("aGVsbG8=", "d29ybGQ="))
}

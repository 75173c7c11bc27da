package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	data := []byte("Hello World")
	enc, err := Encode(data, Hex)
	require.NoError(t, err)
	assert.True(t, Validate(enc, Hex))

	dec, err := Decode(enc, Hex)
	require.NoError(t, err)
	assert.Equal(t, data, dec)
}

func TestBase64RoundTrip(t *testing.T) {
	data := []byte("Hello World")
	enc, err := Encode(data, Base64)
	require.NoError(t, err)
	assert.True(t, Validate(enc, Base64))

	dec, err := Decode(enc, Base64)
	require.NoError(t, err)
	assert.Equal(t, data, dec)
}

func TestBase64URLAcceptsMissingPadding(t *testing.T) {
	data := []byte("any carnal pleasure.")
	enc, err := Encode(data, Base64URL)
	require.NoError(t, err)
	assert.NotContains(t, enc, "=")

	dec, err := Decode(enc, Base64URL)
	require.NoError(t, err)
	assert.Equal(t, data, dec)
}

func TestEmptyStringDecodesToEmptyBytes(t *testing.T) {
	for _, k := range []Kind{Hex, Base64, Base64URL, UTF8} {
		assert.True(t, Validate("", k))
		dec, err := Decode("", k)
		require.NoError(t, err)
		assert.Empty(t, dec)
	}
}

func TestHexRejectsOddLength(t *testing.T) {
	assert.False(t, Validate("abc", Hex))
}

func TestHexRejectsNonHexChars(t *testing.T) {
	assert.False(t, Validate("zz", Hex))
}

func TestBase64RejectsBadLength(t *testing.T) {
	assert.False(t, Validate("abc", Base64))
}

func TestBase64RejectsMoreThanTwoPaddingChars(t *testing.T) {
	assert.False(t, Validate("ab===", Base64))
}

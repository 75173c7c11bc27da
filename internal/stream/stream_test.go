package stream

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoguard/core/internal/primitive"
)

func randBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func TestChunkedCBCEncryptionMatchesSingleShot(t *testing.T) {
	key := randBytes(t, 32)
	iv := randBytes(t, 16)
	plaintext := randBytes(t, 200*1024)

	params := primitive.SymParams{Algorithm: primitive.AES, Mode: primitive.ModeCBC, Padding: primitive.PKCS7, Key: key, IV: iv}
	wantCiphertext, _, err := primitive.EncryptSym(params, plaintext)
	require.NoError(t, err)

	engine := New(true)
	require.Nil(t, engine.Init(Config{Algorithm: primitive.AES, Mode: primitive.ModeCBC, Padding: primitive.PKCS7, Key: key, IV: iv}))

	thirds := len(plaintext) / 3
	chunks := [][]byte{plaintext[:thirds], plaintext[thirds : 2*thirds], plaintext[2*thirds:]}

	var got []byte
	for _, c := range chunks {
		out, cerr := engine.Update(c)
		require.Nil(t, cerr)
		got = append(got, out...)
	}
	tail, cerr := engine.Finalize()
	require.Nil(t, cerr)
	got = append(got, tail...)

	assert.Equal(t, wantCiphertext, got)
	assert.Equal(t, StateFinalized, engine.State())
}

func TestChunkedDecryptionReversesEncryption(t *testing.T) {
	key := randBytes(t, 32)
	iv := randBytes(t, 16)
	plaintext := []byte("the quick brown fox jumps over the lazy dog, repeated for bulk")

	encEngine := New(true)
	require.Nil(t, encEngine.Init(Config{Algorithm: primitive.AES, Mode: primitive.ModeCBC, Padding: primitive.PKCS7, Key: key, IV: iv}))
	ciphertext, cerr := encEngine.Update(plaintext)
	require.Nil(t, cerr)
	tail, cerr := encEngine.Finalize()
	require.Nil(t, cerr)
	ciphertext = append(ciphertext, tail...)

	decEngine := New(false)
	require.Nil(t, decEngine.Init(Config{Algorithm: primitive.AES, Mode: primitive.ModeCBC, Padding: primitive.PKCS7, Key: key, IV: iv}))
	plainOut, cerr := decEngine.Update(ciphertext)
	require.Nil(t, cerr)
	plainTail, cerr := decEngine.Finalize()
	require.Nil(t, cerr)
	plainOut = append(plainOut, plainTail...)

	assert.Equal(t, plaintext, plainOut)
}

func TestUpdateBeforeInitFails(t *testing.T) {
	engine := New(true)
	_, cerr := engine.Update([]byte("x"))
	require.NotNil(t, cerr)
	assert.Equal(t, "InvalidState", string(cerr.Kind))
}

func TestFinalizeTwiceFailsOnSecondCall(t *testing.T) {
	key := randBytes(t, 32)
	iv := randBytes(t, 16)

	engine := New(true)
	require.Nil(t, engine.Init(Config{Algorithm: primitive.AES, Mode: primitive.ModeCTR, Key: key, IV: iv}))
	_, cerr := engine.Update([]byte("data"))
	require.Nil(t, cerr)
	_, cerr = engine.Finalize()
	require.Nil(t, cerr)

	_, cerr = engine.Finalize()
	require.NotNil(t, cerr)
}

func TestChunkedCTRStreamModeMatchesSingleShot(t *testing.T) {
	key := randBytes(t, 32)
	iv := randBytes(t, 16)
	plaintext := randBytes(t, 10000)

	params := primitive.SymParams{Algorithm: primitive.AES, Mode: primitive.ModeCTR, Key: key, IV: iv}
	want, _, err := primitive.EncryptSym(params, plaintext)
	require.NoError(t, err)

	engine := New(true)
	require.Nil(t, engine.Init(Config{Algorithm: primitive.AES, Mode: primitive.ModeCTR, Key: key, IV: iv}))

	var got []byte
	for i := 0; i < len(plaintext); i += 777 {
		end := i + 777
		if end > len(plaintext) {
			end = len(plaintext)
		}
		out, cerr := engine.Update(plaintext[i:end])
		require.Nil(t, cerr)
		got = append(got, out...)
	}
	tail, cerr := engine.Finalize()
	require.Nil(t, cerr)
	got = append(got, tail...)

	assert.Equal(t, want, got)
}

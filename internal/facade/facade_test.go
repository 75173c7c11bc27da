package facade

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptoguard/core/internal/primitive"
)

func newTestFacade() *Facade {
	return New(nil, nil, nil, nil, nil, 0)
}

func TestAES256CBCRoundTrip(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	key := []byte("0123456789abcdef0123456789abcdef")[:32]

	enc := f.AESEncrypt(ctx, []byte("Hello World"), key, SymmetricOptions{KeySize: 256, Mode: primitive.ModeCBC})
	require.True(t, enc.Success)
	assert.Equal(t, "AES", enc.Algorithm)
	assert.Equal(t, "CBC", enc.Mode)
	assert.Equal(t, 256, enc.KeySize)
	assert.NotEmpty(t, enc.IV)

	dec := f.AESDecrypt(ctx, enc.Data, key, enc.IV, enc.Tag, SymmetricOptions{KeySize: 256, Mode: primitive.ModeCBC})
	require.True(t, dec.Success)
	assert.Equal(t, "Hello World", string(dec.Data))
}

func TestAESWrongKeyAndBitFlipProduceIdenticalError(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	key1 := make([]byte, 32)
	for i := range key1 {
		key1[i] = byte(i)
	}
	key2 := make([]byte, 32)
	for i := range key2 {
		key2[i] = byte(i + 1)
	}

	enc := f.AESEncrypt(ctx, []byte("secret"), key1, SymmetricOptions{KeySize: 256, Mode: primitive.ModeCBC})
	require.True(t, enc.Success)

	wrongKey := f.AESDecrypt(ctx, enc.Data, key2, enc.IV, enc.Tag, SymmetricOptions{KeySize: 256, Mode: primitive.ModeCBC})
	require.False(t, wrongKey.Success)
	require.NotNil(t, wrongKey.Error)
	assert.Equal(t, "DecryptionFailed", wrongKey.Error.Kind)

	flipped := append([]byte{}, enc.Data...)
	flipped[0] ^= 0xFF
	bitFlip := f.AESDecrypt(ctx, flipped, key1, enc.IV, enc.Tag, SymmetricOptions{KeySize: 256, Mode: primitive.ModeCBC})
	require.False(t, bitFlip.Success)
	require.NotNil(t, bitFlip.Error)

	assert.Equal(t, wrongKey.Error.Message, bitFlip.Error.Message)
	assert.Equal(t, wrongKey.Error.Kind, bitFlip.Error.Kind)
}

func TestDESEncryptCarriesLegacyAdvisory(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	key, _ := primitive.RandBytes(8)

	enc := f.DESEncrypt(ctx, []byte("payload"), key, SymmetricOptions{Mode: primitive.ModeCBC})
	require.True(t, enc.Success)
	require.NotNil(t, enc.Warnings)
	assert.Contains(t, enc.Warnings["warning"], "legacy")
}

func TestTripleDESRoundTrip(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	key, _ := primitive.RandBytes(24)

	enc := f.TripleDESEncrypt(ctx, []byte("payload"), key, SymmetricOptions{Mode: primitive.ModeCBC})
	require.True(t, enc.Success)

	dec := f.TripleDESDecrypt(ctx, enc.Data, key, enc.IV, SymmetricOptions{Mode: primitive.ModeCBC})
	require.True(t, dec.Success)
	assert.Equal(t, "payload", string(dec.Data))
}

func TestBlowfishRoundTrip(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	key, _ := primitive.RandBytes(16)

	enc := f.BlowfishEncrypt(ctx, []byte("payload"), key, SymmetricOptions{Mode: primitive.ModeCBC})
	require.True(t, enc.Success)

	dec := f.BlowfishDecrypt(ctx, enc.Data, key, enc.IV, SymmetricOptions{Mode: primitive.ModeCBC})
	require.True(t, dec.Success)
	assert.Equal(t, "payload", string(dec.Data))
}

func TestHashSHA256Determinism(t *testing.T) {
	f := newTestFacade()

	r := f.Hash(primitive.SHA256, []byte("hello"), nil)
	require.True(t, r.Success)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", hex.EncodeToString(r.Data))
}

func TestHMACVerifyDetectsFlip(t *testing.T) {
	f := newTestFacade()

	mac := f.HMAC(primitive.SHA256, []byte("key"), []byte("message"))
	require.True(t, mac.Success)
	assert.True(t, f.HMACVerify(primitive.SHA256, []byte("key"), []byte("message"), mac.Data))

	flipped := append([]byte{}, mac.Data...)
	flipped[0] ^= 0xFF
	assert.False(t, f.HMACVerify(primitive.SHA256, []byte("key"), []byte("message"), flipped))
}

func TestPBKDF2GeneratesSaltWhenOmitted(t *testing.T) {
	f := newTestFacade()

	r := f.DerivePBKDF2([]byte("password"), PBKDF2Options{Iterations: 1000, KeyLen: 32})
	require.True(t, r.Success)
	assert.Len(t, r.Key, 32)
	assert.Len(t, r.Salt, 16)
	assert.Equal(t, 1000, r.Iterations)
}

func TestRSAEncryptDecryptRoundTrip(t *testing.T) {
	f := newTestFacade()

	pair, cerr := f.RSAGenerateKeyPair(2048)
	require.Nil(t, cerr)

	enc := f.RSAEncrypt([]byte("message"), pair.PublicKey, RSAOptions{})
	require.True(t, enc.Success)

	dec := f.RSADecrypt(enc.Data, pair.PrivateKey, RSAOptions{})
	require.True(t, dec.Success)
	assert.Equal(t, "message", string(dec.Data))
}

func TestSignVerifyRoundTrip(t *testing.T) {
	f := newTestFacade()

	pair, cerr := f.RSAGenerateKeyPair(2048)
	require.Nil(t, cerr)

	sig := f.Sign([]byte("message"), pair.PrivateKey, primitive.SHA256)
	require.True(t, sig.Success)

	verified := f.Verify([]byte("message"), sig.Data, pair.PublicKey, primitive.SHA256)
	assert.True(t, verified.Success)

	tampered := f.Verify([]byte("tampered"), sig.Data, pair.PublicKey, primitive.SHA256)
	assert.False(t, tampered.Success)
}

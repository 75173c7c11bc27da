package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESCBCRoundTrip(t *testing.T) {
	key, err := RandBytes(32)
	require.NoError(t, err)
	iv, err := RandBytes(16)
	require.NoError(t, err)

	params := SymParams{Algorithm: AES, Mode: ModeCBC, Padding: PKCS7, Key: key, IV: iv}
	ciphertext, _, err := EncryptSym(params, []byte("Hello World"))
	require.NoError(t, err)

	plaintext, err := DecryptSym(params, ciphertext, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(plaintext))
}

func TestAESGCMRoundTrip(t *testing.T) {
	key, _ := RandBytes(32)
	iv, _ := RandBytes(12)
	params := SymParams{Algorithm: AES, Mode: ModeGCM, Key: key, IV: iv}

	ciphertext, tag, err := EncryptSym(params, []byte("secret"))
	require.NoError(t, err)
	require.NotEmpty(t, tag)

	plaintext, err := DecryptSym(params, ciphertext, tag)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(plaintext))
}

func TestAESCBCEmptyPlaintextPadsFullBlock(t *testing.T) {
	key, _ := RandBytes(32)
	iv, _ := RandBytes(16)
	params := SymParams{Algorithm: AES, Mode: ModeCBC, Padding: PKCS7, Key: key, IV: iv}

	ciphertext, _, err := EncryptSym(params, []byte{})
	require.NoError(t, err)
	assert.Len(t, ciphertext, 16)

	plaintext, err := DecryptSym(params, ciphertext, nil)
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestAESCTRStreamModeEmptyPlaintext(t *testing.T) {
	key, _ := RandBytes(32)
	iv, _ := RandBytes(16)
	params := SymParams{Algorithm: AES, Mode: ModeCTR, Key: key, IV: iv}

	ciphertext, _, err := EncryptSym(params, []byte{})
	require.NoError(t, err)
	assert.Empty(t, ciphertext)
}

func TestWrongKeyProducesGarbagePadding(t *testing.T) {
	iv, _ := RandBytes(16)
	key1, _ := RandBytes(32)
	key2, _ := RandBytes(32)

	params1 := SymParams{Algorithm: AES, Mode: ModeCBC, Padding: PKCS7, Key: key1, IV: iv}
	ciphertext, _, err := EncryptSym(params1, []byte("secret message"))
	require.NoError(t, err)

	params2 := SymParams{Algorithm: AES, Mode: ModeCBC, Padding: PKCS7, Key: key2, IV: iv}
	_, err = DecryptSym(params2, ciphertext, nil)
	assert.Error(t, err)
}

func TestDESRoundTrip(t *testing.T) {
	key, _ := RandBytes(8)
	iv, _ := RandBytes(8)
	params := SymParams{Algorithm: DES, Mode: ModeCBC, Padding: PKCS7, Key: key, IV: iv}

	ciphertext, _, err := EncryptSym(params, []byte("payload"))
	require.NoError(t, err)
	plaintext, err := DecryptSym(params, ciphertext, nil)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plaintext))
}

func TestBlowfishRoundTrip(t *testing.T) {
	key, _ := RandBytes(16)
	iv, _ := RandBytes(8)
	params := SymParams{Algorithm: Blowfish, Mode: ModeCBC, Padding: PKCS7, Key: key, IV: iv}

	ciphertext, _, err := EncryptSym(params, []byte("payload"))
	require.NoError(t, err)
	plaintext, err := DecryptSym(params, ciphertext, nil)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plaintext))
}

func TestSHA256KnownVector(t *testing.T) {
	digest, err := Hash(SHA256, []byte("hello"), nil)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", hexString(digest))
}

func TestHMACVerifyDetectsTampering(t *testing.T) {
	mac, err := HMACDigest(SHA256, []byte("key"), []byte("message"))
	require.NoError(t, err)

	tampered := append([]byte{}, mac...)
	tampered[0] ^= 0xFF

	recomputed, err := HMACDigest(SHA256, []byte("key"), []byte("message"))
	require.NoError(t, err)
	assert.Equal(t, recomputed, mac)
	assert.NotEqual(t, recomputed, tampered)
}

func TestPBKDF2Deterministic(t *testing.T) {
	salt, _ := RandBytes(16)
	k1, err := DerivePBKDF2([]byte("password"), salt, 1000, 32, PRFSHA256)
	require.NoError(t, err)
	k2, err := DerivePBKDF2([]byte("password"), salt, 1000, 32, PRFSHA256)
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestRSAEncryptDecryptOAEP(t *testing.T) {
	pubPEM, privPEM, err := GenRSAKeyPair(2048)
	require.NoError(t, err)

	pub, err := ParseRSAPublicKey(pubPEM)
	require.NoError(t, err)
	priv, err := ParseRSAPrivateKey(privPEM)
	require.NoError(t, err)

	ciphertext, err := RSAEncrypt(pub, []byte("message"), OAEPSHA256)
	require.NoError(t, err)
	plaintext, err := RSADecrypt(priv, ciphertext, OAEPSHA256)
	require.NoError(t, err)
	assert.Equal(t, "message", string(plaintext))
}

func TestRSASignVerify(t *testing.T) {
	_, privPEM, err := GenRSAKeyPair(2048)
	require.NoError(t, err)
	priv, err := ParseRSAPrivateKey(privPEM)
	require.NoError(t, err)

	sig, err := Sign(priv, []byte("message"), SHA256)
	require.NoError(t, err)

	ok, err := Verify(&priv.PublicKey, []byte("message"), sig, SHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(&priv.PublicKey, []byte("tampered"), sig, SHA256)
	require.NoError(t, err)
	assert.False(t, ok)
}

func hexString(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hextable[v>>4]
		out[i*2+1] = hextable[v&0x0f]
	}
	return string(out)
}

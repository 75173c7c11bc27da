package primitive

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// PRF identifies the pseudorandom function PBKDF2 is built on.
type PRF string

const (
	PRFSHA1   PRF = "SHA1"
	PRFSHA256 PRF = "SHA256"
	PRFSHA512 PRF = "SHA512"
)

func newPRFHasher(prf PRF) (func() hash.Hash, error) {
	switch prf {
	case PRFSHA1:
		return sha1.New, nil
	case PRFSHA256:
		return sha256.New, nil
	case PRFSHA512:
		return sha512.New, nil
	default:
		return nil, fail("unsupported PBKDF2 PRF", nil)
	}
}

// DerivePBKDF2 derives keyLen bytes from password and salt.
func DerivePBKDF2(password, salt []byte, iterations, keyLen int, prf PRF) ([]byte, error) {
	newHash, err := newPRFHasher(prf)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, newHash), nil
}

// RandBytes returns n cryptographically secure random bytes.
func RandBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fail("random byte generation failed", err)
	}
	return buf, nil
}

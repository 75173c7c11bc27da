package primitive

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

func newHasher(algo HashAlgorithm) (hash.Hash, error) {
	switch algo {
	case MD5:
		return md5.New(), nil
	case SHA1:
		return sha1.New(), nil
	case SHA224:
		return sha256.New224(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, fail("unsupported hash algorithm", nil)
	}
}

// Hash digests input, prepending salt if supplied.
func Hash(algo HashAlgorithm, input, salt []byte) ([]byte, error) {
	h, err := newHasher(algo)
	if err != nil {
		return nil, err
	}
	if len(salt) > 0 {
		h.Write(salt)
	}
	h.Write(input)
	return h.Sum(nil), nil
}

// HMACDigest computes an HMAC over message with key, using algo as the
// underlying hash.
func HMACDigest(algo HashAlgorithm, key, message []byte) ([]byte, error) {
	var newH func() hash.Hash
	switch algo {
	case MD5:
		newH = md5.New
	case SHA1:
		newH = sha1.New
	case SHA256:
		newH = sha256.New
	case SHA384:
		newH = sha512.New384
	case SHA512:
		newH = sha512.New
	default:
		return nil, fail("unsupported HMAC hash algorithm", nil)
	}
	mac := hmac.New(newH, key)
	mac.Write(message)
	return mac.Sum(nil), nil
}

package primitive

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
)

func cryptoHashFor(algo HashAlgorithm) (crypto.Hash, error) {
	switch algo {
	case SHA1:
		return crypto.SHA1, nil
	case SHA224:
		return crypto.SHA224, nil
	case SHA256:
		return crypto.SHA256, nil
	case SHA384:
		return crypto.SHA384, nil
	case SHA512:
		return crypto.SHA512, nil
	default:
		return 0, fail("unsupported signature hash algorithm", nil)
	}
}

// Sign produces a PKCS1v15 RSA signature over the digest of message.
func Sign(priv *rsa.PrivateKey, message []byte, hashAlg HashAlgorithm) ([]byte, error) {
	ch, err := cryptoHashFor(hashAlg)
	if err != nil {
		return nil, err
	}
	digest, err := Hash(hashAlg, message, nil)
	if err != nil {
		return nil, err
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, ch, digest)
	if err != nil {
		return nil, fail("rsa signing failed", err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid PKCS1v15 signature over message
// under pub.
func Verify(pub *rsa.PublicKey, message, sig []byte, hashAlg HashAlgorithm) (bool, error) {
	ch, err := cryptoHashFor(hashAlg)
	if err != nil {
		return false, err
	}
	digest, err := Hash(hashAlg, message, nil)
	if err != nil {
		return false, err
	}
	err = rsa.VerifyPKCS1v15(pub, ch, digest, sig)
	return err == nil, nil
}

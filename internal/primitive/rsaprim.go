package primitive

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
)

// GenRSAKeyPair generates an RSA key pair of the given modulus size and
// PEM-encodes both halves.
func GenRSAKeyPair(bits int) (publicPEM, privatePEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, fail("rsa key generation failed", err)
	}

	privBytes := x509.MarshalPKCS1PrivateKey(key)
	privatePEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: privBytes})

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fail("rsa public key marshal failed", err)
	}
	publicPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})

	return publicPEM, privatePEM, nil
}

// ParseRSAPublicKey decodes a PEM-encoded PKIX public key.
func ParseRSAPublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fail("invalid PEM block for RSA public key", nil)
	}
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fail("rsa public key parse failed", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fail("PEM block is not an RSA public key", nil)
	}
	return rsaPub, nil
}

// ParseRSAPrivateKey decodes a PEM-encoded PKCS1 private key.
func ParseRSAPrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fail("invalid PEM block for RSA private key", nil)
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fail("rsa private key parse failed", err)
	}
	return priv, nil
}

// RSAEncrypt encrypts plaintext under pub using the given padding scheme.
func RSAEncrypt(pub *rsa.PublicKey, plaintext []byte, padding RSAPadding) ([]byte, error) {
	switch padding {
	case OAEPSHA256:
		out, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
		if err != nil {
			return nil, fail("rsa OAEP encryption failed", err)
		}
		return out, nil
	case PKCS1v15:
		out, err := rsa.EncryptPKCS1v15(rand.Reader, pub, plaintext)
		if err != nil {
			return nil, fail("rsa PKCS1v15 encryption failed", err)
		}
		return out, nil
	default:
		return nil, fail("unsupported RSA padding", nil)
	}
}

// RSADecrypt decrypts ciphertext under priv using the given padding scheme.
func RSADecrypt(priv *rsa.PrivateKey, ciphertext []byte, padding RSAPadding) ([]byte, error) {
	switch padding {
	case OAEPSHA256:
		out, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
		if err != nil {
			return nil, fail("rsa OAEP decryption failed", err)
		}
		return out, nil
	case PKCS1v15:
		out, err := rsa.DecryptPKCS1v15(rand.Reader, priv, ciphertext)
		if err != nil {
			return nil, fail("rsa PKCS1v15 decryption failed", err)
		}
		return out, nil
	default:
		return nil, fail("unsupported RSA padding", nil)
	}
}

// MaxPlaintextSize returns the largest plaintext RSAEncrypt can accept for
// the given key and padding.
func MaxPlaintextSize(pub *rsa.PublicKey, padding RSAPadding) int {
	k := pub.Size()
	switch padding {
	case OAEPSHA256:
		hashLen := sha256.Size
		return k - 2*hashLen - 2
	case PKCS1v15:
		return k - 11
	default:
		return 0
	}
}

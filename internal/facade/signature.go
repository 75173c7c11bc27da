package facade

import (
	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/primitive"
	"github.com/cryptoguard/core/internal/result"
)

// Sign produces an RSA PKCS1v15 signature over message under a PEM-encoded
// private key.
func (f *Facade) Sign(message, privateKeyPEM []byte, hashAlgo primitive.HashAlgorithm) (r result.SignatureResult) {
	algoName := string(primitive.RSA)

	end := f.instrument("sign", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(message), msg)
	}()

	priv, err := primitive.ParseRSAPrivateKey(privateKeyPEM)
	if err != nil {
		return result.FailSignature(algoName, coreerrors.New(coreerrors.KindInvalidKey, "invalid RSA private key").WithAlgorithm(algoName).WithCause(err).Build())
	}

	sig, signErr := primitive.Sign(priv, message, hashAlgo)
	if signErr != nil {
		return result.FailSignature(algoName, coreerrors.New(coreerrors.KindEncryptionFailed, "signing failed").WithAlgorithm(algoName).WithCause(signErr).Build())
	}

	return result.SignatureResult{Success: true, Algorithm: algoName, Data: sig}
}

// Verify checks an RSA PKCS1v15 signature over message under a PEM-encoded
// public key. A malformed key or signature is reported as a failed result,
// never as verified==true.
func (f *Facade) Verify(message, signature, publicKeyPEM []byte, hashAlgo primitive.HashAlgorithm) (r result.SignatureResult) {
	algoName := string(primitive.RSA)

	end := f.instrument("verify", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(message), msg)
	}()

	pub, err := primitive.ParseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return result.FailSignature(algoName, coreerrors.New(coreerrors.KindInvalidKey, "invalid RSA public key").WithAlgorithm(algoName).WithCause(err).Build())
	}

	ok, verErr := primitive.Verify(pub, message, signature, hashAlgo)
	if verErr != nil {
		return result.FailSignature(algoName, coreerrors.New(coreerrors.KindDecryptionFailed, "signature verification failed").WithAlgorithm(algoName).WithCause(verErr).Build())
	}

	if !ok {
		return result.SignatureResult{Success: false, Algorithm: algoName}
	}
	return result.SignatureResult{Success: true, Algorithm: algoName, Data: signature}
}

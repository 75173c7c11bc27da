package facade

import (
	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/primitive"
	"github.com/cryptoguard/core/internal/result"
)

// RSAOptions configures an RSA operation.
type RSAOptions struct {
	Padding primitive.RSAPadding
}

func (o RSAOptions) withDefaults() RSAOptions {
	if o.Padding == "" {
		o.Padding = primitive.OAEPSHA256
	}
	return o
}

// RSAKeyPair is the PEM-encoded result of generateKeyPair.
type RSAKeyPair struct {
	PublicKey  []byte
	PrivateKey []byte
}

var validRSABits = map[int]bool{1024: true, 2048: true, 3072: true, 4096: true}

// RSAGenerateKeyPair generates and PEM-encodes an RSA key pair. 1024 bit
// keys are permitted but flagged as weak (spec §4.10).
func (f *Facade) RSAGenerateKeyPair(bits int) (kp RSAKeyPair, cerr *coreerrors.CoreError) {
	end := f.instrument("rsa.generateKeyPair", string(primitive.RSA))
	defer func() {
		msg := ""
		if cerr != nil {
			msg = cerr.Message
		}
		end(cerr == nil, len(kp.PublicKey)+len(kp.PrivateKey), msg)
	}()

	if !validRSABits[bits] {
		return RSAKeyPair{}, coreerrors.New(coreerrors.KindInvalidInput, "unsupported RSA key size").
			WithAlgorithm(string(primitive.RSA)).
			WithDetails(map[string]any{"bits": bits}).Build()
	}

	pub, priv, err := primitive.GenRSAKeyPair(bits)
	if err != nil {
		return RSAKeyPair{}, coreerrors.New(coreerrors.KindEncryptionFailed, "rsa key generation failed").
			WithAlgorithm(string(primitive.RSA)).WithCause(err).Build()
	}

	if bits == 1024 {
		f.Logger.Sugar().Warnw("generated a 1024-bit RSA key", "recommendation", "use 2048 or larger")
	}

	return RSAKeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

// RSAEncrypt encrypts plaintext under a PEM-encoded public key.
func (f *Facade) RSAEncrypt(plaintext, publicKeyPEM []byte, opts RSAOptions) (r result.EncryptResult) {
	opts = opts.withDefaults()
	algoName := string(primitive.RSA)

	end := f.instrument("encrypt", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(r.Data), msg)
	}()

	pub, err := primitive.ParseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindInvalidKey, "invalid RSA public key").WithAlgorithm(algoName).WithCause(err).Build())
	}

	if maxLen := primitive.MaxPlaintextSize(pub, opts.Padding); len(plaintext) > maxLen {
		return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindInvalidInput, "plaintext exceeds the modulus minus padding overhead").
			WithAlgorithm(algoName).
			WithDetails(map[string]any{"max_bytes": maxLen, "actual_bytes": len(plaintext)}).Build())
	}

	ciphertext, encErr := primitive.RSAEncrypt(pub, plaintext, opts.Padding)
	if encErr != nil {
		return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindEncryptionFailed, "rsa encryption failed").WithAlgorithm(algoName).WithCause(encErr).Build())
	}

	return result.EncryptResult{Success: true, Algorithm: algoName, Data: ciphertext, KeySize: pub.Size() * 8}
}

// RSADecrypt decrypts ciphertext under a PEM-encoded private key.
func (f *Facade) RSADecrypt(ciphertext, privateKeyPEM []byte, opts RSAOptions) (r result.DecryptResult) {
	opts = opts.withDefaults()
	algoName := string(primitive.RSA)

	end := f.instrument("decrypt", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(r.Data), msg)
	}()

	priv, err := primitive.ParseRSAPrivateKey(privateKeyPEM)
	if err != nil {
		return result.FailDecrypt(algoName, coreerrors.New(coreerrors.KindInvalidKey, "invalid RSA private key").WithAlgorithm(algoName).WithCause(err).Build())
	}

	plaintext, decErr := primitive.RSADecrypt(priv, ciphertext, opts.Padding)
	if decErr != nil {
		return result.FailDecrypt(algoName, coreerrors.New(coreerrors.KindDecryptionFailed, "decryption failed").WithAlgorithm(algoName).Build())
	}

	return result.DecryptResult{Success: true, Algorithm: algoName, Data: plaintext}
}

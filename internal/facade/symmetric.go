package facade

import (
	"context"

	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/primitive"
	"github.com/cryptoguard/core/internal/result"
)

// SymmetricOptions configures an AES/DES/3DES/Blowfish operation. KeySize
// is only meaningful for AES (128/192/256); other algorithms derive their
// key size from len(key).
type SymmetricOptions struct {
	KeySize int
	Mode    primitive.Mode
	Padding primitive.Padding
	IV      []byte
}

func (o SymmetricOptions) withDefaults() SymmetricOptions {
	out := o
	if out.Mode == "" {
		out.Mode = primitive.ModeCBC
	}
	if out.Padding == "" {
		out.Padding = primitive.PKCS7
	}
	if out.KeySize == 0 {
		out.KeySize = 256
	}
	return out
}

func ivSizeFor(algo primitive.Algorithm, mode primitive.Mode) int {
	if mode == primitive.ModeGCM {
		return 12
	}
	switch algo {
	case primitive.AES:
		return 16
	case primitive.DES, primitive.TripleDES, primitive.Blowfish:
		return 8
	default:
		return 16
	}
}

func validAESKeyLen(n int) bool { return n == 16 || n == 24 || n == 32 }

func (f *Facade) encryptSymmetric(ctx context.Context, algo primitive.Algorithm, plaintext, key []byte, opts SymmetricOptions) (r result.EncryptResult) {
	opts = opts.withDefaults()
	if algo != primitive.AES {
		opts.KeySize = len(key) * 8
	}
	algoName := string(algo)

	end := f.instrument("encrypt", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(r.Data), msg)
	}()

	if f.rateLimited() {
		return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindRateLimited, "rate limit exceeded").WithAlgorithm(algoName).Build())
	}

	if err := validateSymmetricKey(algo, key, opts); err != nil {
		return result.FailEncrypt(algoName, err)
	}

	if opts.Mode == primitive.ModeECB && len(opts.IV) > 0 {
		return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindInvalidIV, "ECB mode does not accept an IV").WithAlgorithm(algoName).Build())
	}

	iv := opts.IV
	expectedIVLen := ivSizeFor(algo, opts.Mode)
	if opts.Mode != primitive.ModeECB {
		if len(iv) == 0 {
			generated, genErr := primitive.RandBytes(expectedIVLen)
			if genErr != nil {
				return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindEncryptionFailed, "iv generation failed").WithAlgorithm(algoName).WithCause(genErr).Build())
			}
			iv = generated
		} else if len(iv) != expectedIVLen {
			return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindInvalidIV, "iv has the wrong length for this mode").WithAlgorithm(algoName).Build())
		}
	}

	fp := fingerprint("encrypt", algoName, string(opts.Mode), plaintext, key, iv)
	if cached, ok := f.cacheGet(ctx, fp); ok {
		return decodeCachedEncrypt(algoName, string(opts.Mode), opts.KeySize, iv, cached)
	}

	var ciphertext, tag []byte
	var encErr error
	f.withScratch(plaintext, func(scratch []byte) {
		params := primitive.SymParams{Algorithm: algo, Mode: opts.Mode, Padding: opts.Padding, Key: key, IV: iv}
		ciphertext, tag, encErr = primitive.EncryptSym(params, scratch)
	})
	if encErr != nil {
		return result.FailEncrypt(algoName, coreerrors.New(coreerrors.KindEncryptionFailed, "encryption failed").WithAlgorithm(algoName).WithCause(encErr).Build())
	}

	f.cacheSet(ctx, fp, ciphertext)

	return result.EncryptResult{
		Success:   true,
		Algorithm: algoName,
		Data:      ciphertext,
		IV:        iv,
		Mode:      string(opts.Mode),
		KeySize:   opts.KeySize,
		Tag:       tag,
	}
}

func decodeCachedEncrypt(algo, mode string, keySize int, iv, data []byte) result.EncryptResult {
	return result.EncryptResult{Success: true, Algorithm: algo, Mode: mode, KeySize: keySize, IV: iv, Data: data}
}

func (f *Facade) decryptSymmetric(ctx context.Context, algo primitive.Algorithm, ciphertext, key, iv, tag []byte, opts SymmetricOptions) (r result.DecryptResult) {
	opts = opts.withDefaults()
	algoName := string(algo)

	end := f.instrument("decrypt", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(r.Data), msg)
	}()

	if f.rateLimited() {
		return result.FailDecrypt(algoName, coreerrors.New(coreerrors.KindRateLimited, "rate limit exceeded").WithAlgorithm(algoName).Build())
	}

	if err := validateSymmetricKey(algo, key, opts); err != nil {
		return result.FailDecrypt(algoName, err)
	}

	var plaintext []byte
	var decErr error
	f.withScratch(ciphertext, func(scratch []byte) {
		params := primitive.SymParams{Algorithm: algo, Mode: opts.Mode, Padding: opts.Padding, Key: key, IV: iv}
		plaintext, decErr = primitive.DecryptSym(params, scratch, tag)
	})
	if decErr != nil {
		// Key mismatch and padding failure are deliberately not
		// distinguished at the boundary (spec §4.10).
		return result.FailDecrypt(algoName, coreerrors.New(coreerrors.KindDecryptionFailed, "decryption failed").WithAlgorithm(algoName).Build())
	}

	return result.DecryptResult{Success: true, Algorithm: algoName, Data: plaintext}
}

func validateSymmetricKey(algo primitive.Algorithm, key []byte, opts SymmetricOptions) *coreerrors.CoreError {
	if len(key) == 0 {
		return coreerrors.New(coreerrors.KindInvalidInput, "key must not be empty").WithAlgorithm(string(algo)).Build()
	}
	switch algo {
	case primitive.AES:
		expected := opts.KeySize / 8
		if len(key) != expected {
			return coreerrors.New(coreerrors.KindInvalidKey, "AES key length does not match the requested key size").
				WithAlgorithm(string(algo)).
				WithDetails(map[string]any{"expected_bytes": expected, "actual_bytes": len(key)}).Build()
		}
		if !validAESKeyLen(len(key)) {
			return coreerrors.New(coreerrors.KindInvalidKey, "unsupported AES key length").WithAlgorithm(string(algo)).Build()
		}
	case primitive.DES:
		if len(key) != 8 {
			return coreerrors.New(coreerrors.KindInvalidKey, "DES requires an 8 byte key").WithAlgorithm(string(algo)).Build()
		}
	case primitive.TripleDES:
		if len(key) != 24 {
			return coreerrors.New(coreerrors.KindInvalidKey, "3DES requires a 24 byte key").WithAlgorithm(string(algo)).Build()
		}
	case primitive.Blowfish:
		if len(key) < 1 || len(key) > 56 {
			return coreerrors.New(coreerrors.KindInvalidKey, "Blowfish key must be between 1 and 56 bytes").WithAlgorithm(string(algo)).Build()
		}
	}
	return nil
}

// AESEncrypt encrypts plaintext under key using the AES family.
func (f *Facade) AESEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) result.EncryptResult {
	return f.encryptSymmetric(ctx, primitive.AES, plaintext, key, opts)
}

// AESDecrypt decrypts ciphertext under key using the AES family.
func (f *Facade) AESDecrypt(ctx context.Context, ciphertext, key, iv, tag []byte, opts SymmetricOptions) result.DecryptResult {
	return f.decryptSymmetric(ctx, primitive.AES, ciphertext, key, iv, tag, opts)
}

// legacyAdvisory returns the non-fatal warning metadata spec §4.10 requires
// for DES/3DES operations.
func legacyAdvisory(algo string) map[string]any {
	return map[string]any{"warning": algo + " is a legacy cipher; prefer AES for new data"}
}

// DESEncrypt encrypts plaintext under an 8 byte key. The result carries an
// advisory warning but is never itself a failure.
func (f *Facade) DESEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) result.EncryptResult {
	r := f.encryptSymmetric(ctx, primitive.DES, plaintext, key, opts)
	if r.Success {
		r.Warnings = legacyAdvisory(string(primitive.DES))
	}
	return r
}

// DESDecrypt decrypts ciphertext under an 8 byte key.
func (f *Facade) DESDecrypt(ctx context.Context, ciphertext, key, iv []byte, opts SymmetricOptions) result.DecryptResult {
	return f.decryptSymmetric(ctx, primitive.DES, ciphertext, key, iv, nil, opts)
}

// TripleDESEncrypt encrypts plaintext under a 24 byte key.
func (f *Facade) TripleDESEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) result.EncryptResult {
	r := f.encryptSymmetric(ctx, primitive.TripleDES, plaintext, key, opts)
	if r.Success {
		r.Warnings = legacyAdvisory(string(primitive.TripleDES))
	}
	return r
}

// TripleDESDecrypt decrypts ciphertext under a 24 byte key.
func (f *Facade) TripleDESDecrypt(ctx context.Context, ciphertext, key, iv []byte, opts SymmetricOptions) result.DecryptResult {
	return f.decryptSymmetric(ctx, primitive.TripleDES, ciphertext, key, iv, nil, opts)
}

// BlowfishEncrypt encrypts plaintext under a variable-length key (1–56 bytes).
func (f *Facade) BlowfishEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) result.EncryptResult {
	return f.encryptSymmetric(ctx, primitive.Blowfish, plaintext, key, opts)
}

// BlowfishDecrypt decrypts ciphertext under a variable-length key.
func (f *Facade) BlowfishDecrypt(ctx context.Context, ciphertext, key, iv []byte, opts SymmetricOptions) result.DecryptResult {
	return f.decryptSymmetric(ctx, primitive.Blowfish, ciphertext, key, iv, nil, opts)
}

package cryptocore

import (
	"context"
	"encoding/json"

	"github.com/cryptoguard/core/internal/cache"
	"github.com/cryptoguard/core/internal/encoding"
	"github.com/cryptoguard/core/internal/facade"
	"github.com/cryptoguard/core/internal/perf"
	"github.com/cryptoguard/core/internal/primitive"
	"github.com/cryptoguard/core/internal/result"
	"github.com/cryptoguard/core/internal/serializer"
	"github.com/cryptoguard/core/internal/stream"
	"github.com/cryptoguard/core/internal/validator"
)

// Public result and option types re-exported from the internal packages
// that define them, so callers never need to import internal/*.
type (
	EncryptResult     = result.EncryptResult
	DecryptResult     = result.DecryptResult
	HashResult        = result.HashResult
	SignatureResult   = result.SignatureResult
	SymmetricOptions  = facade.SymmetricOptions
	RSAOptions        = facade.RSAOptions
	RSAKeyPair        = facade.RSAKeyPair
	PBKDF2Options     = facade.PBKDF2Options
	PBKDF2Result      = facade.PBKDF2Result
	Algorithm         = primitive.Algorithm
	Mode              = primitive.Mode
	Padding           = primitive.Padding
	HashAlgorithm     = primitive.HashAlgorithm
	RSAPadding        = primitive.RSAPadding
	EncodingKind      = encoding.Kind
	SerializedFormat  = serializer.Format
	SerializedEnvelope = serializer.Envelope
	ValidationResult  = validator.Result
	ValidationOptions = validator.Options
	CacheStatistics   = cache.Statistics
	PrewarmStrategy   = cache.PrewarmStrategy
	PerformanceReport = perf.PerformanceReport
)

// Prewarm strategy constants, re-exported from internal/cache.
const (
	PrewarmLRU       = cache.StrategyLRU
	PrewarmLFU       = cache.StrategyLFU
	PrewarmTimeBased = cache.StrategyTimeBased
	PrewarmHybrid    = cache.StrategyHybrid
)

// Algorithm family constants, re-exported for callers that don't want to
// import internal/primitive directly.
const (
	AES       = primitive.AES
	DES       = primitive.DES
	TripleDES = primitive.TripleDES
	Blowfish  = primitive.Blowfish
	RSA       = primitive.RSA

	ModeCBC = primitive.ModeCBC
	ModeECB = primitive.ModeECB
	ModeCFB = primitive.ModeCFB
	ModeOFB = primitive.ModeOFB
	ModeCTR = primitive.ModeCTR
	ModeGCM = primitive.ModeGCM

	PKCS7       = primitive.PKCS7
	NoPadding   = primitive.NoPadding
	ZeroPadding = primitive.ZeroPadding

	MD5    = primitive.MD5
	SHA1   = primitive.SHA1
	SHA224 = primitive.SHA224
	SHA256 = primitive.SHA256
	SHA384 = primitive.SHA384
	SHA512 = primitive.SHA512

	FormatJSON    = serializer.FormatJSON
	FormatCompact = serializer.FormatCompact
	FormatBase64  = serializer.FormatBase64

	Hex       = encoding.Hex
	Base64    = encoding.Base64
	Base64URL = encoding.Base64URL
)

// AESEncrypt encrypts plaintext under key using the AES family.
func (r *Runtime) AESEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) EncryptResult {
	return r.facade.AESEncrypt(ctx, plaintext, key, opts)
}

// AESDecrypt decrypts ciphertext under key using the AES family.
func (r *Runtime) AESDecrypt(ctx context.Context, ciphertext, key, iv, tag []byte, opts SymmetricOptions) DecryptResult {
	return r.facade.AESDecrypt(ctx, ciphertext, key, iv, tag, opts)
}

// DESEncrypt encrypts plaintext under an 8 byte key.
func (r *Runtime) DESEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) EncryptResult {
	return r.facade.DESEncrypt(ctx, plaintext, key, opts)
}

// DESDecrypt decrypts ciphertext under an 8 byte key.
func (r *Runtime) DESDecrypt(ctx context.Context, ciphertext, key, iv []byte, opts SymmetricOptions) DecryptResult {
	return r.facade.DESDecrypt(ctx, ciphertext, key, iv, opts)
}

// TripleDESEncrypt encrypts plaintext under a 24 byte key.
func (r *Runtime) TripleDESEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) EncryptResult {
	return r.facade.TripleDESEncrypt(ctx, plaintext, key, opts)
}

// TripleDESDecrypt decrypts ciphertext under a 24 byte key.
func (r *Runtime) TripleDESDecrypt(ctx context.Context, ciphertext, key, iv []byte, opts SymmetricOptions) DecryptResult {
	return r.facade.TripleDESDecrypt(ctx, ciphertext, key, iv, opts)
}

// BlowfishEncrypt encrypts plaintext under a 1-56 byte key.
func (r *Runtime) BlowfishEncrypt(ctx context.Context, plaintext, key []byte, opts SymmetricOptions) EncryptResult {
	return r.facade.BlowfishEncrypt(ctx, plaintext, key, opts)
}

// BlowfishDecrypt decrypts ciphertext under a 1-56 byte key.
func (r *Runtime) BlowfishDecrypt(ctx context.Context, ciphertext, key, iv []byte, opts SymmetricOptions) DecryptResult {
	return r.facade.BlowfishDecrypt(ctx, ciphertext, key, iv, opts)
}

// RSAGenerateKeyPair generates a PEM-encoded RSA key pair of the given bit
// size (1024/2048/3072/4096).
func (r *Runtime) RSAGenerateKeyPair(bits int) (RSAKeyPair, error) {
	kp, err := r.facade.RSAGenerateKeyPair(bits)
	if err != nil {
		return RSAKeyPair{}, err
	}
	return kp, nil
}

// RSAEncrypt encrypts plaintext under a PEM-encoded public key.
func (r *Runtime) RSAEncrypt(plaintext, publicKeyPEM []byte, opts RSAOptions) EncryptResult {
	return r.facade.RSAEncrypt(plaintext, publicKeyPEM, opts)
}

// RSADecrypt decrypts ciphertext under a PEM-encoded private key.
func (r *Runtime) RSADecrypt(ciphertext, privateKeyPEM []byte, opts RSAOptions) DecryptResult {
	return r.facade.RSADecrypt(ciphertext, privateKeyPEM, opts)
}

// Hash computes a digest of input, optionally salted.
func (r *Runtime) Hash(algo HashAlgorithm, input, salt []byte) HashResult {
	return r.facade.Hash(algo, input, salt)
}

// HMAC computes a keyed message authentication code.
func (r *Runtime) HMAC(algo HashAlgorithm, key, message []byte) HashResult {
	return r.facade.HMAC(algo, key, message)
}

// HMACVerify recomputes the HMAC over message and compares it against mac
// in constant time.
func (r *Runtime) HMACVerify(algo HashAlgorithm, key, message, mac []byte) bool {
	return r.facade.HMACVerify(algo, key, message, mac)
}

// DerivePBKDF2 derives a key from password via PBKDF2.
func (r *Runtime) DerivePBKDF2(password []byte, opts PBKDF2Options) PBKDF2Result {
	if opts.Iterations == 0 {
		opts.Iterations = r.cfg.Defaults.PBKDF2Iterations
	}
	return r.facade.DerivePBKDF2(password, opts)
}

// Sign produces an RSA-PKCS1v15 signature over message.
func (r *Runtime) Sign(message, privateKeyPEM []byte, hashAlgo HashAlgorithm) SignatureResult {
	return r.facade.Sign(message, privateKeyPEM, hashAlgo)
}

// Verify checks an RSA-PKCS1v15 signature over message.
func (r *Runtime) Verify(message, signature, publicKeyPEM []byte, hashAlgo HashAlgorithm) SignatureResult {
	return r.facade.Verify(message, signature, publicKeyPEM, hashAlgo)
}

// EncodingEncode converts raw bytes to the requested string encoding.
// Base64 and Base64URL results are served from the bounded LRU Base64
// result cache (C4) on repeated encodes of the same bytes.
func (r *Runtime) EncodingEncode(data []byte, kind EncodingKind) (string, error) {
	return r.facade.EncodeBase64Cached(data, kind)
}

// EncodingDecode converts an encoded string back to raw bytes.
func (r *Runtime) EncodingDecode(s string, kind EncodingKind) ([]byte, error) {
	return encoding.Decode(s, kind)
}

// EncodingValidate reports whether s is a well-formed instance of kind.
func (r *Runtime) EncodingValidate(s string, kind EncodingKind) bool {
	return encoding.Validate(s, kind)
}

// SerializeResult renders an EncryptResult-shaped envelope in the
// requested wire format.
func (r *Runtime) SerializeResult(env SerializedEnvelope, format SerializedFormat) (string, error) {
	out, err := serializer.Serialize(env, format, "", 0)
	if err != nil {
		return "", err
	}
	return out, nil
}

// DeserializeResult parses a wire-format string back into an envelope. An
// empty format auto-detects.
func (r *Runtime) DeserializeResult(str string, format SerializedFormat) (SerializedEnvelope, error) {
	env, err := serializer.Deserialize(str, format, "")
	if err != nil {
		return SerializedEnvelope{}, err
	}
	return env, nil
}

// ValidateKey classifies key, estimates its entropy, and reports strength
// and per-algorithm suitability.
func (r *Runtime) ValidateKey(key string, opts ValidationOptions) ValidationResult {
	return validator.Validate(key, opts)
}

// NewChunkEncryptor constructs a Chunked Stream Engine in encrypt mode.
func (r *Runtime) NewChunkEncryptor() *stream.Engine {
	return stream.New(true)
}

// NewChunkDecryptor constructs a Chunked Stream Engine in decrypt mode.
func (r *Runtime) NewChunkDecryptor() *stream.Engine {
	return stream.New(false)
}

// ReportJSON renders a Performance Observer snapshot as JSON (spec §6
// `performance.exportJson()`).
func (r *Runtime) ReportJSON(sinceMillis int64) (string, error) {
	report := r.Report(sinceMillis)
	out, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Package errors implements the uniform error taxonomy (C9) shared by every
// facade operation: a closed set of error kinds with stable numeric code
// bands, a fluent builder, and a message sanitizer that redacts secrets
// before an error ever reaches a caller.
package errors

// Kind is one of the closed set of error categories a public operation can
// surface. Classification never depends on plaintext, key, or IV bytes.
type Kind string

const (
	KindInvalidInput          Kind = "InvalidInput"
	KindUnsupportedAlgorithm  Kind = "UnsupportedAlgorithm"
	KindInvalidKey            Kind = "InvalidKey"
	KindInvalidIV             Kind = "InvalidIV"
	KindEncryptionFailed      Kind = "EncryptionFailed"
	KindDecryptionFailed      Kind = "DecryptionFailed"
	KindHashFailed            Kind = "HashFailed"
	KindKeyNotFound           Kind = "KeyNotFound"
	KindKeyExpired            Kind = "KeyExpired"
	KindKeyDerivationFailed   Kind = "KeyDerivationFailed"
	KindEncodingFailed        Kind = "EncodingFailed"
	KindRateLimited           Kind = "RateLimited"
	KindStorageFailed         Kind = "StorageFailed"
	KindTimeout               Kind = "Timeout"
	KindCancelled             Kind = "Cancelled"
	KindInvalidState          Kind = "InvalidState"
)

// codeBand returns the lowest code in the kind's band. Individual call
// sites may pick a more specific code within the band via WithCode.
func (k Kind) codeBand() int {
	switch k {
	case KindInvalidInput:
		return 1000
	case KindUnsupportedAlgorithm:
		return 1100
	case KindInvalidKey:
		return 2000
	case KindInvalidIV:
		return 2100
	case KindEncryptionFailed:
		return 2200
	case KindDecryptionFailed:
		return 3000
	case KindHashFailed:
		return 4000
	case KindKeyNotFound:
		return 5100
	case KindKeyExpired:
		return 5200
	case KindKeyDerivationFailed:
		return 5300
	case KindEncodingFailed:
		return 6000
	case KindRateLimited:
		return 7000
	case KindStorageFailed:
		return 8000
	case KindTimeout:
		return 9000
	case KindCancelled:
		return 9100
	case KindInvalidState:
		return 9200
	default:
		return 1000
	}
}

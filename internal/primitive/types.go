// Package primitive is the thin adapter over external algorithm
// implementations (C1): AES/DES/3DES/Blowfish/RSA from crypto/* and
// golang.org/x/crypto, SHA/MD5/HMAC from crypto/*, PBKDF2 from
// golang.org/x/crypto/pbkdf2. It accepts raw bytes and returns raw bytes —
// how the algorithm is implemented is opaque to every caller above this
// package (spec §1, §4.1).
package primitive

// Algorithm identifies a symmetric or asymmetric cipher family.
type Algorithm string

const (
	AES       Algorithm = "AES"
	DES       Algorithm = "DES"
	TripleDES Algorithm = "3DES"
	Blowfish  Algorithm = "Blowfish"
	RSA       Algorithm = "RSA"
)

// Mode identifies a block cipher mode of operation.
type Mode string

const (
	ModeCBC Mode = "CBC"
	ModeECB Mode = "ECB"
	ModeCFB Mode = "CFB"
	ModeOFB Mode = "OFB"
	ModeCTR Mode = "CTR"
	ModeGCM Mode = "GCM"
)

// Padding identifies a block-padding scheme.
type Padding string

const (
	PKCS7      Padding = "PKCS7"
	NoPadding  Padding = "NoPadding"
	ZeroPadding Padding = "ZeroPadding"
)

// HashAlgorithm identifies a digest algorithm.
type HashAlgorithm string

const (
	MD5    HashAlgorithm = "MD5"
	SHA1   HashAlgorithm = "SHA1"
	SHA224 HashAlgorithm = "SHA224"
	SHA256 HashAlgorithm = "SHA256"
	SHA384 HashAlgorithm = "SHA384"
	SHA512 HashAlgorithm = "SHA512"
)

// RSAPadding identifies an RSA encryption padding scheme.
type RSAPadding string

const (
	OAEPSHA256 RSAPadding = "OAEP-SHA256"
	PKCS1v15   RSAPadding = "PKCS1v15"
)

// Failure is the narrow error the adapter surfaces; the facade layer
// classifies it into the public error taxonomy. It never carries partial
// output (spec §4.1).
type Failure struct {
	Reason string
	Cause  error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return f.Reason + ": " + f.Cause.Error()
	}
	return f.Reason
}

func (f *Failure) Unwrap() error { return f.Cause }

func fail(reason string, cause error) error {
	return &Failure{Reason: reason, Cause: cause}
}

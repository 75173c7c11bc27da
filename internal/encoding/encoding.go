// Package encoding implements the Base64/Hex/UTF-8 conversion and
// validation layer (C2). It is deliberately thin: no caching, no pooling —
// those live one layer up in internal/pool and internal/cache.
package encoding

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"

	coreerrors "github.com/cryptoguard/core/internal/errors"
)

// Kind enumerates the supported encodings.
type Kind string

const (
	Hex       Kind = "hex"
	Base64    Kind = "base64"
	Base64URL Kind = "base64url"
	UTF8      Kind = "utf8"
)

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]*$`)
var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
var base64URLPattern = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// Encode converts raw bytes to the requested string encoding.
func Encode(data []byte, kind Kind) (string, error) {
	switch kind {
	case Hex:
		return hex.EncodeToString(data), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(data), nil
	case Base64URL:
		return base64.RawURLEncoding.EncodeToString(data), nil
	case UTF8:
		return string(data), nil
	default:
		return "", coreerrors.New(coreerrors.KindUnsupportedAlgorithm, "unsupported encoding kind").
			WithDetails(map[string]any{"kind": string(kind)}).Build()
	}
}

// Decode converts an encoded string back into raw bytes.
func Decode(s string, kind Kind) ([]byte, error) {
	switch kind {
	case Hex:
		if !Validate(s, Hex) {
			return nil, coreerrors.New(coreerrors.KindEncodingFailed, "invalid hex string").Build()
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, coreerrors.New(coreerrors.KindEncodingFailed, "hex decode failed").WithCause(err).Build()
		}
		return b, nil
	case Base64:
		if !Validate(s, Base64) {
			return nil, coreerrors.New(coreerrors.KindEncodingFailed, "invalid base64 string").Build()
		}
		b, err := base64.StdEncoding.DecodeString(canonicalBase64(s))
		if err != nil {
			return nil, coreerrors.New(coreerrors.KindEncodingFailed, "base64 decode failed").WithCause(err).Build()
		}
		return b, nil
	case Base64URL:
		if !Validate(s, Base64URL) {
			return nil, coreerrors.New(coreerrors.KindEncodingFailed, "invalid base64url string").Build()
		}
		b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, coreerrors.New(coreerrors.KindEncodingFailed, "base64url decode failed").WithCause(err).Build()
		}
		return b, nil
	case UTF8:
		return []byte(s), nil
	default:
		return nil, coreerrors.New(coreerrors.KindUnsupportedAlgorithm, "unsupported encoding kind").Build()
	}
}

// Validate reports whether s is a well-formed value for kind. The empty
// string is always valid (spec §4.2).
func Validate(s string, kind Kind) bool {
	if s == "" {
		return true
	}
	switch kind {
	case Hex:
		return len(s)%2 == 0 && hexPattern.MatchString(s)
	case Base64:
		stripped := strings.TrimRight(s, "=")
		if strings.Count(s, "=") > 2 {
			return false
		}
		if len(s)%4 != 0 {
			return false
		}
		return base64Pattern.MatchString(s) && hexOrBase64Body(stripped)
	case Base64URL:
		return base64URLPattern.MatchString(s)
	case UTF8:
		return true
	default:
		return false
	}
}

func hexOrBase64Body(body string) bool {
	for _, r := range body {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+' || r == '/') {
			return false
		}
	}
	return true
}

// canonicalBase64 strips trailing '=' before round-tripping, then re-pads
// to a multiple of 4, per the canonical behavior resolved in spec §9.
func canonicalBase64(s string) string {
	stripped := strings.TrimRight(s, "=")
	if pad := len(stripped) % 4; pad != 0 {
		stripped += strings.Repeat("=", 4-pad)
	}
	return stripped
}

// Package serializer implements the Result Serializer (C14): three
// on-wire formats for EncryptResult-shaped records — JSON, a
// period-delimited Compact form, and Base64 of the JSON form — with
// format auto-detection and a metadata-only fast path (spec §4.14).
package serializer

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	coreerrors "github.com/cryptoguard/core/internal/errors"
)

// Format identifies an on-wire serialization.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCompact Format = "compact"
	FormatBase64  Format = "base64"
)

const envelopeVersion = 1

// Envelope is the serializable subset of an EncryptResult (spec §3.1
// "SerializedEnvelope").
type Envelope struct {
	Success   bool   `json:"success"`
	Algorithm string `json:"algorithm"`
	Data      string `json:"data,omitempty"`
	IV        string `json:"iv,omitempty"`
	Mode      string `json:"mode,omitempty"`
	KeySize   int    `json:"keySize,omitempty"`
}

type jsonEnvelope struct {
	Envelope
	Version   int   `json:"_v,omitempty"`
	Timestamp int64 `json:"_t,omitempty"`
}

// Info is the metadata-only view returned by GetInfo.
type Info struct {
	Algorithm string
	Mode      string
	KeySize   int
	HasIV     bool
	Format    Format
}

var base64Charset = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// Serialize renders env in the requested format. Compact uses sep as its
// field separator (default ".").
func Serialize(env Envelope, format Format, sep string, timestamp int64) (string, *coreerrors.CoreError) {
	if sep == "" {
		sep = "."
	}

	switch format {
	case FormatJSON, "":
		out := jsonEnvelope{Envelope: env, Version: envelopeVersion, Timestamp: timestamp}
		raw, err := json.Marshal(out)
		if err != nil {
			return "", coreerrors.New(coreerrors.KindEncodingFailed, "json serialization failed").WithCause(err).Build()
		}
		return string(raw), nil
	case FormatCompact:
		fields := []string{env.Algorithm, env.Data, env.IV, env.Mode, strconv.Itoa(env.KeySize)}
		return strings.Join(fields, sep), nil
	case FormatBase64:
		raw, err := json.Marshal(env)
		if err != nil {
			return "", coreerrors.New(coreerrors.KindEncodingFailed, "json serialization failed").WithCause(err).Build()
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	default:
		return "", coreerrors.New(coreerrors.KindUnsupportedAlgorithm, "unsupported serialization format").
			WithDetails(map[string]any{"format": string(format)}).Build()
	}
}

// Deserialize parses str back into an Envelope. When format is empty,
// the format is auto-detected per spec §4.14.
func Deserialize(str string, format Format, sep string) (Envelope, *coreerrors.CoreError) {
	if sep == "" {
		sep = "."
	}
	if format == "" {
		format = detectFormat(str)
	}

	switch format {
	case FormatJSON:
		var out jsonEnvelope
		if err := json.Unmarshal([]byte(str), &out); err != nil {
			return Envelope{}, coreerrors.New(coreerrors.KindEncodingFailed, "json deserialization failed").WithCause(err).Build()
		}
		return out.Envelope, nil
	case FormatBase64:
		raw, err := base64.StdEncoding.DecodeString(str)
		if err != nil {
			return Envelope{}, coreerrors.New(coreerrors.KindEncodingFailed, "base64 decoding failed").WithCause(err).Build()
		}
		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return Envelope{}, coreerrors.New(coreerrors.KindEncodingFailed, "json deserialization failed").WithCause(err).Build()
		}
		return env, nil
	case FormatCompact:
		parts := strings.Split(str, sep)
		if len(parts) > 5 {
			return Envelope{}, coreerrors.New(coreerrors.KindEncodingFailed, "compact envelope has too many segments").Build()
		}
		env := Envelope{Success: true}
		if len(parts) > 0 {
			env.Algorithm = parts[0]
		}
		if len(parts) > 1 {
			env.Data = parts[1]
		}
		if len(parts) > 2 {
			env.IV = parts[2]
		}
		if len(parts) > 3 {
			env.Mode = parts[3]
		}
		if len(parts) > 4 && parts[4] != "" {
			keySize, err := strconv.Atoi(parts[4])
			if err != nil {
				return Envelope{}, coreerrors.New(coreerrors.KindEncodingFailed, "compact envelope key size is not numeric").Build()
			}
			env.KeySize = keySize
		}
		return env, nil
	default:
		return Envelope{}, coreerrors.New(coreerrors.KindUnsupportedAlgorithm, "unsupported serialization format").Build()
	}
}

// detectFormat implements the auto-detection rule from spec §4.14: JSON
// starts with "{"; Base64 matches the Base64 alphabet and decodes to a
// string beginning with "{"; anything else is Compact.
func detectFormat(str string) Format {
	trimmed := strings.TrimSpace(str)
	if strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}
	if base64Charset.MatchString(trimmed) {
		if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil && strings.HasPrefix(string(decoded), "{") {
			return FormatBase64
		}
	}
	return FormatCompact
}

// GetInfo decodes only the public metadata of str without ever touching
// ciphertext bytes.
func GetInfo(str string, sep string) (Info, *coreerrors.CoreError) {
	format := detectFormat(str)
	env, err := Deserialize(str, format, sep)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Algorithm: env.Algorithm,
		Mode:      env.Mode,
		KeySize:   env.KeySize,
		HasIV:     env.IV != "",
		Format:    format,
	}, nil
}

// Package validator implements the Key Validator (C15): key type
// detection, entropy estimation, strength banding, and per-algorithm
// suitability assessment (spec §4.15).
package validator

import (
	"encoding/base64"
	"math"
	"regexp"
	"strings"
)

// KeyType is the detected shape of a key string.
type KeyType string

const (
	TypePassword KeyType = "password"
	TypeHex      KeyType = "hex"
	TypeBase64   KeyType = "base64"
	TypeRaw      KeyType = "raw"
)

// Strength is the banded strength classification.
type Strength string

const (
	StrengthWeak      Strength = "weak"
	StrengthFair      Strength = "fair"
	StrengthGood      Strength = "good"
	StrengthStrong    Strength = "strong"
	StrengthExcellent Strength = "excellent"
)

// Options configures a validation request.
type Options struct {
	Algorithm  string
	TargetBits int
}

// Suitability reports whether a key's length fits each algorithm family.
type Suitability struct {
	AES128    bool
	AES192    bool
	AES256    bool
	DES       bool
	TripleDES bool
	RSA       bool
}

// Result is the full validation report (spec §4.15).
type Result struct {
	Valid       bool
	Type        KeyType
	LengthBytes int
	LengthBits  int
	EntropyBits float64
	Strength    Strength
	Warnings    []string
	Suggestions []string
	SuitableFor Suitability
}

var (
	hexPattern    = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)
)

var commonWords = []string{"password", "admin", "user", "login", "123456"}
var keyboardPatterns = []string{"qwerty", "asdf", "1234", "zxcv"}
var datePattern = regexp.MustCompile(`(19|20)\d{2}[-/]?\d{2}[-/]?\d{2}`)
var repeatRun = regexp.MustCompile(`(.)\1{2,}`)

// Validate classifies key, estimates its entropy, and reports strength and
// algorithm suitability.
func Validate(key string, opts Options) Result {
	keyType := detectType(key)

	var lengthBytes int
	switch keyType {
	case TypeHex:
		lengthBytes = len(key) / 2
	case TypeBase64:
		if decoded, err := base64.StdEncoding.DecodeString(key); err == nil {
			lengthBytes = len(decoded)
		} else {
			lengthBytes = len(key)
		}
	default:
		lengthBytes = len(key)
	}
	lengthBits := lengthBytes * 8

	entropy := estimateEntropy(key, keyType)
	effective := math.Max(entropy, float64(lengthBits)/2)
	strength := bandStrength(effective)

	warnings, suggestions := advise(key, keyType, strength)

	return Result{
		Valid:       len(key) > 0,
		Type:        keyType,
		LengthBytes: lengthBytes,
		LengthBits:  lengthBits,
		EntropyBits: entropy,
		Strength:    strength,
		Warnings:    warnings,
		Suggestions: suggestions,
		SuitableFor: Suitability{
			AES128:    lengthBytes == 16,
			AES192:    lengthBytes == 24,
			AES256:    lengthBytes == 32,
			DES:       lengthBytes == 8,
			TripleDES: lengthBytes == 24,
			RSA:       lengthBytes*8 >= 2048,
		},
	}
}

func detectType(key string) KeyType {
	if len(key)%2 == 0 && hexPattern.MatchString(key) {
		return TypeHex
	}
	// A single-class string such as "password" also fits the Base64
	// alphabet; only strings mixing character classes are taken as Base64.
	if len(key) >= 4 && len(key)%4 == 0 && base64Pattern.MatchString(key) && isLikelyPassword(key) {
		if _, err := base64.StdEncoding.DecodeString(key); err == nil {
			return TypeBase64
		}
	}
	if isLikelyPassword(key) {
		return TypePassword
	}
	return TypeRaw
}

func isLikelyPassword(key string) bool {
	hasLower, hasUpper, hasDigit, hasSymbol := false, false, false, false
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	count := 0
	for _, b := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if b {
			count++
		}
	}
	return count >= 2
}

// estimateEntropy implements spec §4.15's three branches.
func estimateEntropy(key string, keyType KeyType) float64 {
	switch keyType {
	case TypeHex:
		return 4 * float64(len(key))
	case TypeBase64:
		return 6 * float64(len(key))
	default:
		return passwordEntropy(key)
	}
}

func passwordEntropy(key string) float64 {
	charsetSize := 0
	hasLower, hasUpper, hasDigit, hasSymbol, hasNonASCII := false, false, false, false, false
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case r > 127:
			hasNonASCII = true
		default:
			hasSymbol = true
		}
	}
	if hasLower {
		charsetSize += 26
	}
	if hasUpper {
		charsetSize += 26
	}
	if hasDigit {
		charsetSize += 10
	}
	if hasSymbol {
		charsetSize += 32
	}
	if hasNonASCII {
		charsetSize += 100
	}
	if charsetSize == 0 {
		charsetSize = 1
	}

	entropy := math.Log2(float64(charsetSize)) * float64(len(key))

	if repeatRun.MatchString(key) {
		entropy -= 10
	}
	lower := strings.ToLower(key)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			entropy -= 20
		}
	}
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) {
			entropy -= 15
		}
	}
	if datePattern.MatchString(key) {
		entropy -= 10
	}

	return math.Max(entropy, 0)
}

func bandStrength(effectiveBits float64) Strength {
	switch {
	case effectiveBits < 40:
		return StrengthWeak
	case effectiveBits < 60:
		return StrengthFair
	case effectiveBits < 80:
		return StrengthGood
	case effectiveBits < 128:
		return StrengthStrong
	default:
		return StrengthExcellent
	}
}

func advise(key string, keyType KeyType, strength Strength) (warnings, suggestions []string) {
	if strength == StrengthWeak || strength == StrengthFair {
		warnings = append(warnings, "key material has low estimated entropy")
		suggestions = append(suggestions, "use a longer, randomly generated key")
	}
	if keyType == TypePassword {
		lower := strings.ToLower(key)
		for _, word := range commonWords {
			if strings.Contains(lower, word) {
				warnings = append(warnings, "key contains a common word")
				break
			}
		}
		if repeatRun.MatchString(key) {
			warnings = append(warnings, "key contains a run of repeated characters")
		}
	}
	return warnings, suggestions
}

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderProducesSanitizedMessage(t *testing.T) {
	err := New(KindInvalidKey, "bad key=supersecretvalue supplied").
		WithAlgorithm("AES").
		Build()

	assert.Equal(t, KindInvalidKey, err.Kind)
	assert.Equal(t, 2000, err.Code)
	assert.Equal(t, "AES", err.Algorithm)
	assert.NotContains(t, err.Message, "supersecretvalue")
	assert.Contains(t, err.Message, "key=[REDACTED]")
}

func TestSanitizeRedactsAllKnownFields(t *testing.T) {
	for _, field := range []string{"key", "password", "secret", "token"} {
		msg := field + "=abc123 was rejected"
		got := Sanitize(msg)
		assert.NotContains(t, got, "abc123")
	}
}

func TestSanitizeLeavesUnrelatedTextAlone(t *testing.T) {
	msg := "ciphertext length mismatch"
	assert.Equal(t, msg, Sanitize(msg))
}

func TestWithCodeOverridesBandFloor(t *testing.T) {
	err := New(KindRateLimited, "too many requests").
		WithCode(7001).
		WithRetryAfter(250).
		Build()

	assert.Equal(t, 7001, err.Code)
	assert.EqualValues(t, 250, err.RetryAfterMs)
}

func TestErrorStringIncludesAlgorithmWhenPresent(t *testing.T) {
	err := New(KindDecryptionFailed, "decryption failed").WithAlgorithm("AES").Build()
	assert.Contains(t, err.Error(), "AES")
	assert.Contains(t, err.Error(), "DecryptionFailed")
}

package errors

import (
	"fmt"
	"time"
)

// CoreError is the single concrete error type returned across the public
// boundary. It never crosses as a panic or language exception — every
// facade operation catches primitive failures and classifies them into a
// CoreError before returning a result record.
type CoreError struct {
	Kind        Kind
	Code        int
	Message     string
	Algorithm   string
	Details     map[string]any
	Timestamp   int64
	RetryAfterMs int64
	cause       error
}

// Error implements the error interface. The message has already passed
// through Sanitize by the time Build() is called.
func (e *CoreError) Error() string {
	if e.Algorithm != "" {
		return fmt.Sprintf("%s[%d] (%s): %s", e.Kind, e.Code, e.Algorithm, e.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", e.Kind, e.Code, e.Message)
}

// Unwrap exposes the underlying primitive failure, if any, for errors.As.
func (e *CoreError) Unwrap() error {
	return e.cause
}

// Builder accumulates optional fields before producing an immutable
// *CoreError. Modeled on the teacher's fluent `NewError(...).With...().Build()`
// pattern (internal/errors/unified_errors.go in the teacher repo).
type Builder struct {
	err *CoreError
}

// New starts a builder for the given kind and human message. The message is
// sanitized immediately so builder fields never carry raw secrets.
func New(kind Kind, message string) *Builder {
	return &Builder{
		err: &CoreError{
			Kind:      kind,
			Code:      kind.codeBand(),
			Message:   Sanitize(message),
			Timestamp: time.Now().UnixMilli(),
		},
	}
}

// WithCode overrides the default band-floor code with a more specific one.
func (b *Builder) WithCode(code int) *Builder {
	b.err.Code = code
	return b
}

// WithAlgorithm records which algorithm family produced the error.
func (b *Builder) WithAlgorithm(algo string) *Builder {
	b.err.Algorithm = algo
	return b
}

// WithDetails attaches opaque structured context (never key/plaintext bytes).
func (b *Builder) WithDetails(details map[string]any) *Builder {
	b.err.Details = details
	return b
}

// WithRetryAfter records the retry-after hint carried by RateLimited errors.
func (b *Builder) WithRetryAfter(ms int64) *Builder {
	b.err.RetryAfterMs = ms
	return b
}

// WithCause attaches the original primitive failure for errors.As/Unwrap,
// without letting its message leak — Error() only ever prints b.err.Message.
func (b *Builder) WithCause(cause error) *Builder {
	b.err.cause = cause
	return b
}

// Build finalizes the error.
func (b *Builder) Build() *CoreError {
	return b.err
}

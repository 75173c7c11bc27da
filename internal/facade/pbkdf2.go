package facade

import (
	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/primitive"
)

const defaultPBKDF2Iterations = 100000

// PBKDF2Options configures a key-derivation request. A zero SaltLen
// defaults to 16; a zero KeyLen defaults to 32; a zero Iterations defaults
// to 100000; an empty PRF defaults to SHA256.
type PBKDF2Options struct {
	Salt       []byte
	SaltLen    int
	KeyLen     int
	Iterations int
	PRF        primitive.PRF
}

func (o PBKDF2Options) withDefaults() PBKDF2Options {
	out := o
	if out.SaltLen == 0 {
		out.SaltLen = 16
	}
	if out.KeyLen == 0 {
		out.KeyLen = 32
	}
	if out.Iterations == 0 {
		out.Iterations = defaultPBKDF2Iterations
	}
	if out.PRF == "" {
		out.PRF = primitive.PRFSHA256
	}
	return out
}

// PBKDF2Result is the derived key material plus the parameters needed to
// reproduce it (spec §6 `pbkdf2(password, opts) → { key, salt, iterations, keySize }`).
type PBKDF2Result struct {
	Success    bool
	Key        []byte
	Salt       []byte
	Iterations int
	KeySize    int
	Error      *coreerrors.CoreError
}

// DerivePBKDF2 derives key material from password, generating a random salt
// when one is not supplied.
func (f *Facade) DerivePBKDF2(password []byte, opts PBKDF2Options) (r PBKDF2Result) {
	opts = opts.withDefaults()

	end := f.instrument("pbkdf2.derive", string(opts.PRF))
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(r.Key), msg)
	}()

	if len(password) == 0 {
		return PBKDF2Result{Error: coreerrors.New(coreerrors.KindInvalidInput, "password must not be empty").Build()}
	}
	if opts.Iterations < 1000 {
		return PBKDF2Result{Error: coreerrors.New(coreerrors.KindInvalidInput, "iterations must be at least 1000").
			WithDetails(map[string]any{"iterations": opts.Iterations}).Build()}
	}

	salt := opts.Salt
	if len(salt) == 0 {
		generated, err := primitive.RandBytes(opts.SaltLen)
		if err != nil {
			return PBKDF2Result{Error: coreerrors.New(coreerrors.KindKeyDerivationFailed, "salt generation failed").WithCause(err).Build()}
		}
		salt = generated
	}

	key, err := primitive.DerivePBKDF2(password, salt, opts.Iterations, opts.KeyLen, opts.PRF)
	if err != nil {
		return PBKDF2Result{Error: coreerrors.New(coreerrors.KindKeyDerivationFailed, "key derivation failed").WithCause(err).Build()}
	}

	return PBKDF2Result{Success: true, Key: key, Salt: salt, Iterations: opts.Iterations, KeySize: opts.KeyLen}
}

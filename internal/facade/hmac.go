package facade

import (
	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/primitive"
	"github.com/cryptoguard/core/internal/result"
	"github.com/cryptoguard/core/internal/securemem"
)

// HMAC computes a message authentication code under key.
func (f *Facade) HMAC(algo primitive.HashAlgorithm, key, message []byte) (r result.HashResult) {
	algoName := string(algo)

	end := f.instrument("hmac", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(message), msg)
	}()

	if len(key) == 0 {
		return result.FailHash(algoName, coreerrors.New(coreerrors.KindInvalidKey, "HMAC key must not be empty").WithAlgorithm(algoName).Build())
	}
	if f.rateLimited() {
		return result.FailHash(algoName, coreerrors.New(coreerrors.KindRateLimited, "rate limit exceeded").WithAlgorithm(algoName).Build())
	}

	mac, err := primitive.HMACDigest(algo, key, message)
	if err != nil {
		return result.FailHash(algoName, coreerrors.New(coreerrors.KindHashFailed, "hmac computation failed").WithAlgorithm(algoName).WithCause(err).Build())
	}

	return result.HashResult{Success: true, Algorithm: algoName, Data: mac}
}

// HMACVerify recomputes the MAC over message and compares it against mac in
// constant time.
func (f *Facade) HMACVerify(algo primitive.HashAlgorithm, key, message, mac []byte) (ok bool) {
	algoName := string(algo)
	end := f.instrument("hmac.verify", algoName)
	defer func() { end(ok, len(message), "") }()

	expected := f.HMAC(algo, key, message)
	if !expected.Success {
		return false
	}
	ok = securemem.Equal(expected.Data, mac)
	return ok
}

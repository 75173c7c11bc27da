package facade

import (
	coreerrors "github.com/cryptoguard/core/internal/errors"
	"github.com/cryptoguard/core/internal/primitive"
	"github.com/cryptoguard/core/internal/result"
)

// Hash computes the digest of input under the given algorithm, optionally
// salted. salt may be nil.
func (f *Facade) Hash(algo primitive.HashAlgorithm, input, salt []byte) (r result.HashResult) {
	algoName := string(algo)

	end := f.instrument("hash", algoName)
	defer func() {
		msg := ""
		if r.Error != nil {
			msg = r.Error.Message
		}
		end(r.Success, len(input), msg)
	}()

	if f.rateLimited() {
		return result.FailHash(algoName, coreerrors.New(coreerrors.KindRateLimited, "rate limit exceeded").WithAlgorithm(algoName).Build())
	}

	var digest []byte
	var err error
	f.withScratch(input, func(scratch []byte) {
		digest, err = primitive.Hash(algo, scratch, salt)
	})
	if err != nil {
		return result.FailHash(algoName, coreerrors.New(coreerrors.KindHashFailed, "hash computation failed").WithAlgorithm(algoName).WithCause(err).Build())
	}

	return result.HashResult{Success: true, Algorithm: algoName, Data: digest}
}

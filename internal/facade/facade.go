// Package facade implements the per-family public operations (C10):
// encrypt/decrypt/hash/hmac/sign/verify/derive. Every operation validates
// inputs, dispatches to internal/primitive, and wraps the outcome into a
// uniform result record — never letting a primitive failure cross the
// boundary as a bare error. Only symmetric encryption consults the cache;
// symmetric encrypt/decrypt, Hash and HMAC pass the rate limiter first.
package facade

import (
	"context"
	"crypto/sha256"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cryptoguard/core/internal/cache"
	"github.com/cryptoguard/core/internal/encoding"
	"github.com/cryptoguard/core/internal/perf"
	"github.com/cryptoguard/core/internal/pool"
	"github.com/cryptoguard/core/internal/ratelimit"
)

const defaultBase64CacheSize = 2000

// Facade bundles the cross-cutting collaborators every operation consults:
// the adaptive cache (C7), buffer pool and Base64 result cache (C4), rate
// limiter (C8), and performance observer (C16). Any field may be nil except
// Buffers and Base64Cache; nil collaborators simply disable that
// cross-cutting concern.
type Facade struct {
	Cache       *cache.Adaptive
	Buffers     *pool.BufferPool
	Base64Cache *pool.Base64ResultCache
	Limiter     *ratelimit.Limiter
	Observer    *perf.Observer
	Logger      *zap.Logger
}

// New constructs a Facade. A nil cache disables memoization; a nil limiter
// disables rate limiting; a nil observer disables metrics. base64CacheSize
// <= 0 falls back to a built-in default capacity.
func New(c *cache.Adaptive, buffers *pool.BufferPool, limiter *ratelimit.Limiter, observer *perf.Observer, logger *zap.Logger, base64CacheSize int) *Facade {
	if buffers == nil {
		buffers = pool.NewBufferPool()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if base64CacheSize <= 0 {
		base64CacheSize = defaultBase64CacheSize
	}
	return &Facade{
		Cache:       c,
		Buffers:     buffers,
		Base64Cache: pool.NewBase64ResultCache(base64CacheSize),
		Limiter:     limiter,
		Observer:    observer,
		Logger:      logger,
	}
}

// EncodeBase64Cached encodes data to the requested Base64 variant, serving
// repeated encodes of the same bytes from the bounded LRU Base64 result
// cache (C4). Non-Base64 kinds bypass the cache entirely. The kind is
// folded into the fingerprint input so the standard and URL-safe variants
// of the same bytes never collide on one cache entry.
func (f *Facade) EncodeBase64Cached(data []byte, kind encoding.Kind) (string, error) {
	if f.Base64Cache == nil || (kind != encoding.Base64 && kind != encoding.Base64URL) {
		return encoding.Encode(data, kind)
	}
	fpInput := append([]byte(string(kind)+":"), data...)
	if cached, ok := f.Base64Cache.Get(fpInput); ok {
		return cached, nil
	}
	out, err := encoding.Encode(data, kind)
	if err != nil {
		return "", err
	}
	f.Base64Cache.Set(fpInput, out)
	return out, nil
}

// fingerprint derives the cache key from (operation, algorithm, mode,
// input-hash, key-hash, ancillary-hash) per spec §3.2.
func fingerprint(operation, algorithm, mode string, input, key, ancillary []byte) string {
	h := sha256.New()
	h.Write([]byte(operation))
	h.Write([]byte{0})
	h.Write([]byte(algorithm))
	h.Write([]byte{0})
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write(input)
	h.Write([]byte{0})
	h.Write(key)
	h.Write([]byte{0})
	h.Write(ancillary)
	sum := h.Sum(nil)
	const hextable = "0123456789abcdef"
	out := make([]byte, len(sum)*2)
	for i, v := range sum {
		out[i*2] = hextable[v>>4]
		out[i*2+1] = hextable[v&0x0f]
	}
	return string(out)
}

// cacheGet is a best-effort lookup: cache errors are swallowed and treated
// as a miss, since a cache outage must never fail the underlying crypto
// operation.
func (f *Facade) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if f.Cache == nil {
		return nil, false
	}
	val, ok, err := f.Cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	return val, ok
}

func (f *Facade) cacheSet(ctx context.Context, key string, value []byte) {
	if f.Cache == nil {
		return
	}
	_ = f.Cache.Set(ctx, key, value)
}

func (f *Facade) rateLimited() bool {
	if f.Limiter == nil {
		return false
	}
	return !f.Limiter.TryAcquire().Granted
}

// instrument opens a Performance Observer span for operation/algo and
// returns a closure that closes it, per spec §4.16 and the control-flow
// rule that C16 instruments every facade operation. A nil Observer makes
// both halves no-ops.
func (f *Facade) instrument(operation, algo string) func(success bool, dataSize int, errMsg string) {
	if f.Observer == nil {
		return func(bool, int, string) {}
	}
	id := uuid.New().String()
	f.Observer.StartOperation(id, algo)
	return func(success bool, dataSize int, errMsg string) {
		var opErr error
		if errMsg != "" {
			opErr = errors.New(errMsg)
		}
		f.Observer.EndOperation(id, operation, success, dataSize, opErr, algo)
	}
}

// withScratch acquires a BufferPool buffer sized to len(src), copies src
// into it, runs fn over the scratch copy, and releases the buffer on every
// exit path (spec §4.10 step 4, §5 "every buffer ... is released on every
// exit path").
func (f *Facade) withScratch(src []byte, fn func(scratch []byte)) {
	scratch := f.Buffers.Acquire(len(src))
	copy(scratch, src)
	defer f.Buffers.Release(scratch)
	fn(scratch)
}

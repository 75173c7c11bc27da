// Package cryptocore is the public entry point of the cryptoguard
// library. It wires the Adaptive Cache, Object & Buffer Pools, Rate
// Limiter, Performance Observer, Primitive Facade, Key Rotation Engine,
// Secure Storage, Chunked Stream Engine, Result Serializer, and Key
// Validator into a single Runtime, configured with functional options.
package cryptocore

import (
	"context"

	"go.uber.org/zap"

	"github.com/cryptoguard/core/internal/cache"
	"github.com/cryptoguard/core/internal/config"
	"github.com/cryptoguard/core/internal/facade"
	"github.com/cryptoguard/core/internal/perf"
	"github.com/cryptoguard/core/internal/pool"
	"github.com/cryptoguard/core/internal/ratelimit"
	"github.com/cryptoguard/core/internal/rotation"
	"github.com/cryptoguard/core/internal/storage"
)

// Runtime is the top-level handle through which every cryptoguard
// operation is invoked. Construct one with New and reuse it — it owns a
// cache, buffer pool, rate limiter, and performance observer that are
// meant to be shared across calls.
type Runtime struct {
	cfg      config.Config
	facade   *facade.Facade
	cache    *cache.Adaptive
	observer *perf.Observer
	rotation *rotation.Registry
	logger   *zap.Logger
}

// options carries the mutable state the functional options below build up
// before New assembles a Runtime from it.
type options struct {
	cfg config.Config
	l2  cache.Persistent
}

// Option configures a Runtime at construction time.
type Option func(*options)

// WithCacheSize overrides the L1 cache entry capacity.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cfg.Cache.L1Size = n }
}

// WithCacheBounds overrides the adaptive cache's resize bounds.
func WithCacheBounds(min, max int) Option {
	return func(o *options) { o.cfg.Cache.MinSize = min; o.cfg.Cache.MaxSize = max }
}

// WithL2Persistent injects a durable L2 backend (C6) behind the Adaptive
// Cache Manager. Without this option the cache runs L1-only.
func WithL2Persistent(l2 cache.Persistent) Option {
	return func(o *options) {
		o.cfg.Cache.L2Enabled = l2 != nil
		o.l2 = l2
	}
}

// WithRateLimit overrides the token bucket's capacity and refill rate. A
// capacity of 0 disables rate limiting entirely.
func WithRateLimit(capacity, refillPerSec float64) Option {
	return func(o *options) {
		o.cfg.RateLimit.Enabled = capacity > 0
		o.cfg.RateLimit.Capacity = capacity
		o.cfg.RateLimit.RefillPerSec = refillPerSec
	}
}

// WithObserverSampleRate overrides the Performance Observer's sampling
// rate, in [0,1].
func WithObserverSampleRate(rate float64) Option {
	return func(o *options) { o.cfg.Observer.SampleRate = rate }
}

// WithObserverDisabled turns off performance observation entirely.
func WithObserverDisabled() Option {
	return func(o *options) { o.cfg.Observer.Enabled = false }
}

// WithNamespace sets the metrics namespace used by the Performance
// Observer's Prometheus collector.
func WithNamespace(ns string) Option {
	return func(o *options) { o.cfg.Observer.Namespace = ns }
}

// WithPBKDF2Iterations overrides the default PBKDF2 iteration count used
// when a caller omits it from DerivePBKDF2's options.
func WithPBKDF2Iterations(n int) Option {
	return func(o *options) { o.cfg.Defaults.PBKDF2Iterations = n }
}

// WithStorageKeyPrefix overrides Secure Storage's namespacing prefix.
func WithStorageKeyPrefix(prefix string) Option {
	return func(o *options) { o.cfg.Storage.KeyPrefix = prefix }
}

// New constructs a Runtime. logger may be nil, in which case a no-op
// logger is used.
func New(logger *zap.Logger, opts ...Option) (*Runtime, error) {
	o := &options{cfg: config.Default()}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	l2 := o.l2
	if l2 == nil {
		l2 = cache.NoOpPersistent{}
	}
	adaptiveCfg := cache.AdaptiveConfig{
		MinSize:                 cfg.Cache.MinSize,
		MaxSize:                 cfg.Cache.MaxSize,
		InitialSize:             cfg.Cache.L1Size,
		MemoryPressureThreshold: cfg.Cache.MemoryPressureThreshold,
		ResizeInterval:          cfg.Cache.ResizeInterval,
		PrewarmBatchSize:        cfg.Cache.PrewarmBatchSize,
	}
	adaptive := cache.NewAdaptive(adaptiveCfg, l2, logger)

	buffers := pool.NewBufferPool()

	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
	}

	var observer *perf.Observer
	if cfg.Observer.Enabled {
		observer = perf.NewObserver(cfg.Observer.Namespace,
			perf.WithMaxMetrics(cfg.Observer.MaxMetrics),
			perf.WithSampleRate(cfg.Observer.SampleRate),
		)
	}

	f := facade.New(adaptive, buffers, limiter, observer, logger, cfg.Pool.Base64CacheSize)

	adaptive.StartResizeLoop(context.Background())

	return &Runtime{
		cfg:      cfg,
		facade:   f,
		cache:    adaptive,
		observer: observer,
		rotation: rotation.New(f),
		logger:   logger,
	}, nil
}

// Config returns the effective configuration the Runtime was built from.
func (r *Runtime) Config() config.Config {
	return r.cfg
}

// Rotation returns the Key Rotation Engine wired to this Runtime's facade.
func (r *Runtime) Rotation() *rotation.Registry {
	return r.rotation
}

// NewStorage constructs a Secure Storage instance sharing this Runtime's
// facade. Each caller supplies its own encryption key and persistence
// adapter; the Runtime does not own storage state itself since a given
// process may need several independently-keyed stores.
func (r *Runtime) NewStorage(key []byte, adapter storage.Adapter) *storage.SecureStorage {
	if adapter == nil {
		adapter = storage.NewMemoryAdapter()
	}
	return storage.New(r.facade, storage.Config{
		Key:       key,
		KeyPrefix: r.cfg.Storage.KeyPrefix,
		Adapter:   adapter,
	})
}

// Report generates a Performance Observer snapshot of operations recorded
// since sinceMillis (a unix millisecond timestamp). Returns a zero-value
// report if the observer is disabled.
func (r *Runtime) Report(sinceMillis int64) perf.PerformanceReport {
	if r.observer == nil {
		return perf.PerformanceReport{Since: sinceMillis}
	}
	return r.observer.GenerateReport(sinceMillis)
}

// CacheStats reports the Adaptive Cache Manager's current hit/miss/eviction
// rollup (spec §6 `cache.stats()`).
func (r *Runtime) CacheStats() cache.Statistics {
	return r.cache.Statistics()
}

// ClearCache empties both cache tiers (spec §6 `cache.clear()`).
func (r *Runtime) ClearCache(ctx context.Context) error {
	return r.cache.Clear(ctx)
}

// Prewarm fetches candidateKeys from the L2 backend into L1 ahead of
// demand, using the given selection strategy (spec §4.7).
func (r *Runtime) Prewarm(ctx context.Context, strategy cache.PrewarmStrategy, candidateKeys []string) error {
	return r.cache.Prewarm(ctx, strategy, candidateKeys)
}

// Close stops the Adaptive Cache Manager's background resize loop. Grounded
// on the teacher's PoolManager.Shutdown lifecycle method.
func (r *Runtime) Close() {
	r.cache.Stop()
}

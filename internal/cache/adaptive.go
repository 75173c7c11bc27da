package cache

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PrewarmStrategy selects which keys to fetch from L2 ahead of demand.
type PrewarmStrategy string

const (
	StrategyLRU        PrewarmStrategy = "lru"
	StrategyLFU        PrewarmStrategy = "lfu"
	StrategyTimeBased  PrewarmStrategy = "time_based"
	StrategyHybrid     PrewarmStrategy = "hybrid"
)

// AdaptiveConfig configures the manager's resizing behavior.
type AdaptiveConfig struct {
	MinSize                 int
	MaxSize                 int
	InitialSize             int
	MemoryPressureThreshold float64 // default 0.8
	ResizeInterval          time.Duration
	PrewarmBatchSize        int // default 50
}

func (c *AdaptiveConfig) withDefaults() AdaptiveConfig {
	out := *c
	if out.MemoryPressureThreshold == 0 {
		out.MemoryPressureThreshold = 0.8
	}
	if out.ResizeInterval == 0 {
		out.ResizeInterval = 10 * time.Second
	}
	if out.PrewarmBatchSize == 0 {
		out.PrewarmBatchSize = 50
	}
	if out.InitialSize == 0 {
		out.InitialSize = out.MinSize
	}
	return out
}

// Adaptive orchestrates L1+L2 (C7): get/set/delete/clear, access-pattern
// tracking, prewarming, and pressure-driven resizing. Grounded on the
// teacher's internal/infrastructure/concurrency/pool_manager.go for the
// singleton + background-ticker lifecycle.
type Adaptive struct {
	mu     sync.Mutex
	cfg    AdaptiveConfig
	l1     *LRU
	l2     Persistent
	logger *zap.Logger

	currentSize int

	totalAccesses int64
	totalAccessNs int64

	stopCh chan struct{}
	once   sync.Once
}

// NewAdaptive constructs the adaptive cache manager around an L1 LRU of
// InitialSize capacity and the given L2 collaborator (use NoOpPersistent
// for L1-only operation).
func NewAdaptive(cfg AdaptiveConfig, l2 Persistent, logger *zap.Logger) *Adaptive {
	if logger == nil {
		logger = zap.NewNop()
	}
	full := cfg.withDefaults()
	a := &Adaptive{
		cfg:         full,
		l2:          l2,
		logger:      logger,
		currentSize: full.InitialSize,
		stopCh:      make(chan struct{}),
	}
	a.l1 = NewLRU(full.InitialSize, nil)
	return a
}

// Get tries L1, then L2, promoting an L2 hit into L1.
func (a *Adaptive) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	defer a.recordAccess(start)

	if item, ok := a.l1.Get(key); ok {
		return item.Value, true, nil
	}

	val, ok, err := a.l2.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	a.l1.Set(key, val, 0)
	return val, true, nil
}

// Set writes L1 and mirrors to L2.
func (a *Adaptive) Set(ctx context.Context, key string, value []byte) error {
	a.l1.Set(key, value, 0)
	return a.l2.Set(ctx, key, value)
}

// Delete removes key from both tiers.
func (a *Adaptive) Delete(ctx context.Context, key string) error {
	a.l1.Delete(key)
	return a.l2.Delete(ctx, key)
}

// Clear empties both tiers.
func (a *Adaptive) Clear(ctx context.Context) error {
	a.l1.Clear()
	return a.l2.Clear(ctx)
}

func (a *Adaptive) recordAccess(start time.Time) {
	elapsed := time.Since(start)
	a.mu.Lock()
	a.totalAccesses++
	a.totalAccessNs += elapsed.Nanoseconds()
	a.mu.Unlock()
}

// Statistics computes the rollup described in spec §4.7.
func (a *Adaptive) Statistics() Statistics {
	hits, misses, evictions := a.l1.hitMissCounts()
	total := hits + misses
	var hitRate, missRate, evictionRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
		missRate = float64(misses) / float64(total)
	}
	if hits+evictions > 0 {
		evictionRate = float64(evictions) / float64(hits+evictions)
	}

	a.mu.Lock()
	var avgMs float64
	if a.totalAccesses > 0 {
		avgMs = float64(a.totalAccessNs) / float64(a.totalAccesses) / 1e6
	}
	a.mu.Unlock()

	efficiency := hitRate*50 + (1-evictionRate)*30 + maxFloat(0, 20-2*avgMs)

	hot := a.hotDataCount()

	return Statistics{
		HitRate:         hitRate,
		MissRate:        missRate,
		EvictionRate:    evictionRate,
		AvgAccessMs:     avgMs,
		EfficiencyScore: efficiency,
		MemoryUsageMB:   a.estimateMemoryMB(),
		HotDataCount:    hot,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (a *Adaptive) estimateMemoryMB() float64 {
	entries := a.l1.snapshotMostRecentFirst(a.currentSizeSnapshot())
	var total uint
	for _, e := range entries {
		total += e.Item.SizeBytes
	}
	return float64(total) / (1024 * 1024)
}

func (a *Adaptive) hotDataCount() int {
	now := time.Now()
	entries := a.l1.snapshotMostRecentFirst(a.currentSizeSnapshot())
	count := 0
	for _, e := range entries {
		if now.Sub(e.Item.LastAccess) <= 60*time.Second && e.Item.AccessCount > 5 {
			count++
		}
	}
	return count
}

func (a *Adaptive) currentSizeSnapshot() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.currentSize
}

// Prewarm selects candidates by strategy and fetches them from L2 in
// batches, yielding between batches.
func (a *Adaptive) Prewarm(ctx context.Context, strategy PrewarmStrategy, candidateKeys []string) error {
	scored := a.scoreCandidates(strategy, candidateKeys)

	limit := len(scored)
	if strategy == StrategyHybrid {
		limit = (a.currentSizeSnapshot() * 20) / 100
		if limit > len(scored) {
			limit = len(scored)
		}
	}

	batch := a.cfg.PrewarmBatchSize
	for i := 0; i < limit; i += batch {
		end := i + batch
		if end > limit {
			end = limit
		}
		for _, key := range scored[i:end] {
			val, ok, err := a.l2.Get(ctx, key)
			if err != nil {
				return err
			}
			if ok {
				a.l1.Set(key, val, 0)
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
	return nil
}

type scoredKey struct {
	key   string
	score float64
}

func (a *Adaptive) scoreCandidates(strategy PrewarmStrategy, keys []string) []string {
	now := time.Now()
	scored := make([]scoredKey, 0, len(keys))

	for _, key := range keys {
		item, ok := a.l1.Get(key)
		if !ok {
			continue
		}
		var score float64
		switch strategy {
		case StrategyLRU:
			score = float64(now.Sub(item.LastAccess))
		case StrategyLFU:
			score = float64(item.AccessCount)
		case StrategyTimeBased:
			score = float64(item.PredictedNext.Sub(now))
		default: // Hybrid
			recency := 1.0 / (1.0 + now.Sub(item.LastAccess).Seconds())
			frequency := float64(item.AccessCount)
			invSize := 1.0 / (1.0 + float64(item.SizeBytes))
			score = 0.4*recency + 0.4*frequency + 0.2*invSize
		}
		scored = append(scored, scoredKey{key: key, score: score})
	}

	ascending := strategy == StrategyLRU || strategy == StrategyTimeBased
	sort.Slice(scored, func(i, j int) bool {
		if ascending {
			return scored[i].score < scored[j].score
		}
		return scored[i].score > scored[j].score
	})

	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.key
	}
	return out
}

// StartResizeLoop launches the background tick that re-evaluates capacity
// every ResizeInterval, applying at most one rule per tick (spec §4.7).
func (a *Adaptive) StartResizeLoop(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(a.cfg.ResizeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-a.stopCh:
				return
			case <-ticker.C:
				a.tick()
			}
		}
	}()
}

// Stop terminates the background resize loop.
func (a *Adaptive) Stop() {
	a.once.Do(func() { close(a.stopCh) })
}

func (a *Adaptive) tick() {
	pressure := memoryPressure()
	stats := a.Statistics()

	a.mu.Lock()
	size := a.currentSize
	a.mu.Unlock()

	var newSize int
	switch {
	case pressure > a.cfg.MemoryPressureThreshold:
		newSize = maxInt(a.cfg.MinSize, int(0.8*float64(size)))
	case stats.EfficiencyScore < 60 && stats.EvictionRate > 0.2:
		newSize = minInt(a.cfg.MaxSize, int(1.2*float64(size)))
	case stats.EfficiencyScore > 80 && stats.EvictionRate < 0.05:
		newSize = maxInt(a.cfg.MinSize, int(0.95*float64(size)))
	default:
		return
	}

	if newSize == size {
		return
	}
	a.resize(newSize)
	a.logger.Debug("adaptive cache resized",
		zap.Int("previous_size", size),
		zap.Int("new_size", newSize),
		zap.Float64("memory_pressure", pressure),
		zap.Float64("efficiency_score", stats.EfficiencyScore),
	)
}

// resize constructs a new L1 of the requested capacity and copies live
// entries over in most-recent-first order, stopping at capacity.
func (a *Adaptive) resize(newSize int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := a.l1.snapshotMostRecentFirst(newSize)
	newL1 := NewLRU(newSize, nil)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		var ttl time.Duration
		if !e.TTL.IsZero() {
			ttl = time.Until(e.TTL)
			if ttl <= 0 {
				continue
			}
		}
		newL1.Set(e.Key, e.Item.Value, ttl)
	}

	a.l1 = newL1
	a.currentSize = newSize
}

func memoryPressure() float64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	if stats.HeapSys == 0 {
		return 0.5
	}
	return float64(stats.HeapAlloc) / float64(stats.HeapSys)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Package cache implements the two-tier memoization stack: an in-process
// LRU with TTL (C5), a persistent-store interface (C6), and the adaptive
// manager that orchestrates both with access-pattern prediction, prewarming
// and pressure-driven resizing (C7). Grounded on the teacher's
// internal/infrastructure/cache/memory_cache.go for the LRU shape and
// internal/infrastructure/concurrency/pool_manager.go for the
// singleton/background-tick lifecycle.
package cache

import "time"

// Item is the stored value plus the access-pattern metadata the adaptive
// manager needs (spec §3.1 CacheItem).
type Item struct {
	Value      []byte
	AccessCount uint
	LastAccess time.Time
	CreatedAt  time.Time
	SizeBytes  uint

	// intervals is a ring buffer of the last W inter-access deltas, used to
	// compute PredictedNextAccess.
	intervals       []time.Duration
	intervalCursor  int
	PredictedNext   time.Time
}

const intervalWindow = 10

func newItem(value []byte) *Item {
	now := time.Now()
	return &Item{
		Value:      value,
		LastAccess: now,
		CreatedAt:  now,
		SizeBytes:  uint(len(value)),
		intervals:  make([]time.Duration, 0, intervalWindow),
	}
}

// recordAccess updates access metadata and the rolling interval window,
// then recomputes the predicted next access time from a linearly-weighted
// moving average of recent deltas (spec §4.7).
func (it *Item) recordAccess(now time.Time) {
	if !it.LastAccess.IsZero() {
		delta := now.Sub(it.LastAccess)
		if len(it.intervals) < intervalWindow {
			it.intervals = append(it.intervals, delta)
		} else {
			it.intervals[it.intervalCursor] = delta
			it.intervalCursor = (it.intervalCursor + 1) % intervalWindow
		}
	}
	it.AccessCount++
	it.LastAccess = now
	it.PredictedNext = now.Add(it.weightedAvgInterval())
}

// weightedAvgInterval weights more recent intervals linearly higher.
func (it *Item) weightedAvgInterval() time.Duration {
	if len(it.intervals) == 0 {
		return 0
	}
	var weightedSum float64
	var weightTotal float64
	// Once the window is full, intervalCursor points at the oldest delta.
	n := len(it.intervals)
	for i := 0; i < n; i++ {
		d := it.intervals[(it.intervalCursor+i)%n]
		weight := float64(i + 1)
		weightedSum += float64(d) * weight
		weightTotal += weight
	}
	if weightTotal == 0 {
		return 0
	}
	return time.Duration(weightedSum / weightTotal)
}

// Statistics mirrors spec §4.7's statistics record.
type Statistics struct {
	HitRate        float64
	MissRate       float64
	EvictionRate   float64
	AvgAccessMs    float64
	EfficiencyScore float64
	MemoryUsageMB  float64
	HotDataCount   int
}

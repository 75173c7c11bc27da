package perf

import (
	"math/rand"
	"sync"
	"time"
)

const defaultMaxMetrics = 10000

// PerformanceMetric is one completed operation span (spec §3.1/§4.16).
type PerformanceMetric struct {
	ID         string
	Operation  string
	Algorithm  string
	Success    bool
	DataSize   int
	Error      string
	StartedAt  int64
	FinishedAt int64
	DurationMs float64
}

type pendingSpan struct {
	operation string
	algorithm string
	startedAt time.Time
}

// AlgorithmRollup is the per-algorithm slice of a PerformanceReport.
type AlgorithmRollup struct {
	Count       int
	AvgMs       float64
	SuccessRate float64
	TotalBytes  int64
}

// OperationRollup is the per-operation slice of a PerformanceReport.
type OperationRollup struct {
	Count       int
	AvgMs       float64
	SuccessRate float64
	TotalBytes  int64
}

// TimeseriesBucket is one 1-minute bin of a PerformanceReport.
type TimeseriesBucket struct {
	BucketStart int64
	OpsPerSec   float64
	AvgLatencyMs float64
	ErrorRate   float64
}

// PerformanceReport aggregates the ring buffer since a given timestamp.
type PerformanceReport struct {
	Since          int64
	TotalCount     int
	SuccessRate    float64
	AvgMs          float64
	TotalBytes     int64
	ByAlgorithm    map[string]AlgorithmRollup
	ByOperation    map[string]OperationRollup
	Timeseries     []TimeseriesBucket
}

// Subscriber receives every completed metric as it lands, used for
// real-time observers (spec §4.16 "real-time subscribers").
type Subscriber func(PerformanceMetric)

// Observer records operation spans into a bounded ring buffer and
// aggregates them on demand. It is safe for concurrent use.
type Observer struct {
	mu          sync.Mutex
	collector   *Collector
	maxMetrics  int
	sampleRate  float64
	ring        []PerformanceMetric
	next        int
	filled      bool
	pending     map[string]pendingSpan
	subscribers []Subscriber
	rand        func() float64
}

// Option configures an Observer at construction time.
type Option func(*Observer)

// WithMaxMetrics overrides the ring buffer capacity (default 10000).
func WithMaxMetrics(n int) Option {
	return func(o *Observer) {
		if n > 0 {
			o.maxMetrics = n
		}
	}
}

// WithSampleRate sets the inclusion probability s ∈ [0,1] for completed spans.
func WithSampleRate(s float64) Option {
	return func(o *Observer) {
		if s >= 0 && s <= 1 {
			o.sampleRate = s
		}
	}
}

// NewObserver constructs an Observer backed by the process-wide Collector.
func NewObserver(namespace string, opts ...Option) *Observer {
	o := &Observer{
		collector:  NewCollector(namespace),
		maxMetrics: defaultMaxMetrics,
		sampleRate: 1,
		pending:    make(map[string]pendingSpan),
		rand:       rand.Float64,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.ring = make([]PerformanceMetric, 0, o.maxMetrics)
	return o
}

// Subscribe registers a callback invoked synchronously with every completed
// metric that survives sampling.
func (o *Observer) Subscribe(sub Subscriber) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = append(o.subscribers, sub)
}

// StartOperation opens a span under id, optionally tagged with an algorithm.
func (o *Observer) StartOperation(id string, algo string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending[id] = pendingSpan{algorithm: algo, startedAt: time.Now()}
}

// EndOperation closes the span for id, records it into the ring buffer
// (subject to sampling), pushes counters into the Prometheus collector, and
// notifies subscribers.
func (o *Observer) EndOperation(id, operation string, success bool, dataSize int, opErr error, algo string) {
	o.mu.Lock()
	span, ok := o.pending[id]
	if ok {
		delete(o.pending, id)
	}
	var started time.Time
	if ok {
		started = span.startedAt
		if algo == "" {
			algo = span.algorithm
		}
	} else {
		started = time.Now()
	}
	now := time.Now()
	durationMs := float64(now.Sub(started).Microseconds()) / 1000.0

	errMsg := ""
	if opErr != nil {
		errMsg = opErr.Error()
	}

	metric := PerformanceMetric{
		ID:         id,
		Operation:  operation,
		Algorithm:  algo,
		Success:    success,
		DataSize:   dataSize,
		Error:      errMsg,
		StartedAt:  started.UnixMilli(),
		FinishedAt: now.UnixMilli(),
		DurationMs: durationMs,
	}

	sampled := o.sampleRate >= 1 || o.rand() < o.sampleRate
	if sampled {
		o.append(metric)
	}
	subs := append([]Subscriber(nil), o.subscribers...)
	o.mu.Unlock()

	if o.collector != nil {
		o.collector.record(operation, algo, success, durationMs/1000.0, dataSize)
	}
	if sampled {
		for _, sub := range subs {
			sub(metric)
		}
	}
}

// append inserts into the ring buffer, overwriting the oldest entry once full.
func (o *Observer) append(m PerformanceMetric) {
	if len(o.ring) < o.maxMetrics {
		o.ring = append(o.ring, m)
		return
	}
	o.ring[o.next] = m
	o.next = (o.next + 1) % o.maxMetrics
	o.filled = true
}

func (o *Observer) snapshot() []PerformanceMetric {
	if !o.filled {
		out := make([]PerformanceMetric, len(o.ring))
		copy(out, o.ring)
		return out
	}
	out := make([]PerformanceMetric, 0, len(o.ring))
	out = append(out, o.ring[o.next:]...)
	out = append(out, o.ring[:o.next]...)
	return out
}

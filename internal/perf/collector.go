// Package perf implements the Performance Observer (C16): a bounded ring
// buffer of per-operation metrics plus a Prometheus collector for live
// counters, grounded on the teacher's observability.Collector
// singleton-registry pattern.
package perf

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds the Prometheus metrics exposed alongside the in-process
// ring buffer. It is a process-wide singleton so repeated Observer
// construction (e.g. in tests) never double-registers a metric.
type Collector struct {
	registry *prometheus.Registry

	OperationsTotal  *prometheus.CounterVec
	OperationSeconds *prometheus.HistogramVec
	OperationBytes   *prometheus.HistogramVec
	FailuresTotal    *prometheus.CounterVec
}

// NewCollector returns the process-wide Collector, creating it on first call.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	operationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of cryptographic operations by algorithm and outcome.",
		},
		[]string{"operation", "algorithm", "outcome"},
	)

	operationSeconds := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Operation latency in seconds by algorithm.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "algorithm"},
	)

	operationBytes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_data_size_bytes",
			Help:      "Data size in bytes reported for each operation.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
		[]string{"operation"},
	)

	failuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Total number of failed operations by algorithm.",
		},
		[]string{"operation", "algorithm"},
	)

	registry.MustRegister(operationsTotal, operationSeconds, operationBytes, failuresTotal)

	globalCollector = &Collector{
		registry:         registry,
		OperationsTotal:  operationsTotal,
		OperationSeconds: operationSeconds,
		OperationBytes:   operationBytes,
		FailuresTotal:    failuresTotal,
	}
	return globalCollector
}

// ResetForTesting clears the singleton so tests can start from a clean registry.
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// GetRegistry returns the Prometheus registry backing this collector.
func (c *Collector) GetRegistry() *prometheus.Registry { return c.registry }

func (c *Collector) record(operation, algorithm string, success bool, seconds float64, dataSize int) {
	outcome := "success"
	if !success {
		outcome = "failure"
		c.FailuresTotal.WithLabelValues(operation, algorithm).Inc()
	}
	c.OperationsTotal.WithLabelValues(operation, algorithm, outcome).Inc()
	c.OperationSeconds.WithLabelValues(operation, algorithm).Observe(seconds)
	if dataSize > 0 {
		c.OperationBytes.WithLabelValues(operation).Observe(float64(dataSize))
	}
}

package perf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestObserver(t *testing.T) *Observer {
	t.Helper()
	ResetForTesting()
	return NewObserver("cryptoguard_test", WithMaxMetrics(4))
}

func TestObserverRecordsCompletedSpan(t *testing.T) {
	o := newTestObserver(t)

	o.StartOperation("op-1", "AES")
	o.EndOperation("op-1", "encrypt", true, 128, nil, "AES")

	report := o.GenerateReport(0)
	require.Equal(t, 1, report.TotalCount)
	assert.Equal(t, 1.0, report.SuccessRate)
	assert.Equal(t, int64(128), report.TotalBytes)

	algo, ok := report.ByAlgorithm["AES"]
	require.True(t, ok)
	assert.Equal(t, 1, algo.Count)
}

func TestObserverRecordsFailureWithRollup(t *testing.T) {
	o := newTestObserver(t)

	o.StartOperation("op-1", "RSA")
	o.EndOperation("op-1", "decrypt", false, 0, errors.New("decryption failed"), "RSA")

	report := o.GenerateReport(0)
	require.Equal(t, 1, report.TotalCount)
	assert.Equal(t, 0.0, report.SuccessRate)

	op, ok := report.ByOperation["decrypt"]
	require.True(t, ok)
	assert.Equal(t, 0.0, op.SuccessRate)
}

func TestObserverRingBufferWrapsAtCapacity(t *testing.T) {
	o := newTestObserver(t)

	for i := 0; i < 6; i++ {
		id := "op"
		o.StartOperation(id, "AES")
		o.EndOperation(id, "encrypt", true, 10, nil, "AES")
	}

	report := o.GenerateReport(0)
	assert.Equal(t, 4, report.TotalCount)
}

func TestObserverSubscriberReceivesCompletedMetric(t *testing.T) {
	o := newTestObserver(t)

	var received []PerformanceMetric
	o.Subscribe(func(m PerformanceMetric) {
		received = append(received, m)
	})

	o.StartOperation("op-1", "AES")
	o.EndOperation("op-1", "encrypt", true, 16, nil, "AES")

	require.Len(t, received, 1)
	assert.Equal(t, "encrypt", received[0].Operation)
}

func TestObserverReportHonorsSinceTimestamp(t *testing.T) {
	o := newTestObserver(t)

	o.StartOperation("op-1", "AES")
	o.EndOperation("op-1", "encrypt", true, 16, nil, "AES")

	future := o.GenerateReport(0)
	require.Equal(t, 1, future.TotalCount)

	farFuture := o.GenerateReport(future.Timeseries[0].BucketStart + 10*60_000)
	assert.Equal(t, 0, farFuture.TotalCount)
}

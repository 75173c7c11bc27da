package perf

const timeseriesBinMs = 60_000

// GenerateReport aggregates every ring-buffer entry with FinishedAt >=
// sinceMillis (0 means "since the start of the window held in the ring").
func (o *Observer) GenerateReport(sinceMillis int64) PerformanceReport {
	o.mu.Lock()
	entries := o.snapshot()
	o.mu.Unlock()

	report := PerformanceReport{
		Since:       sinceMillis,
		ByAlgorithm: make(map[string]AlgorithmRollup),
		ByOperation: make(map[string]OperationRollup),
	}

	type accum struct {
		count      int
		successes  int
		totalMs    float64
		totalBytes int64
	}
	byAlgo := make(map[string]*accum)
	byOp := make(map[string]*accum)

	type bucketAccum struct {
		count     int
		errors    int
		totalMs   float64
		start     int64
	}
	buckets := make(map[int64]*bucketAccum)

	var (
		totalCount int
		totalOK    int
		totalMs    float64
		totalBytes int64
	)

	for _, m := range entries {
		if m.FinishedAt < sinceMillis {
			continue
		}
		totalCount++
		totalMs += m.DurationMs
		totalBytes += int64(m.DataSize)
		if m.Success {
			totalOK++
		}

		a := byAlgo[m.Algorithm]
		if a == nil {
			a = &accum{}
			byAlgo[m.Algorithm] = a
		}
		a.count++
		a.totalMs += m.DurationMs
		a.totalBytes += int64(m.DataSize)
		if m.Success {
			a.successes++
		}

		op := byOp[m.Operation]
		if op == nil {
			op = &accum{}
			byOp[m.Operation] = op
		}
		op.count++
		op.totalMs += m.DurationMs
		op.totalBytes += int64(m.DataSize)
		if m.Success {
			op.successes++
		}

		binStart := (m.FinishedAt / timeseriesBinMs) * timeseriesBinMs
		b := buckets[binStart]
		if b == nil {
			b = &bucketAccum{start: binStart}
			buckets[binStart] = b
		}
		b.count++
		b.totalMs += m.DurationMs
		if !m.Success {
			b.errors++
		}
	}

	if totalCount > 0 {
		report.TotalCount = totalCount
		report.SuccessRate = float64(totalOK) / float64(totalCount)
		report.AvgMs = totalMs / float64(totalCount)
		report.TotalBytes = totalBytes
	}

	for algo, a := range byAlgo {
		report.ByAlgorithm[algo] = AlgorithmRollup{
			Count:       a.count,
			AvgMs:       a.totalMs / float64(a.count),
			SuccessRate: float64(a.successes) / float64(a.count),
			TotalBytes:  a.totalBytes,
		}
	}

	for op, a := range byOp {
		report.ByOperation[op] = OperationRollup{
			Count:       a.count,
			AvgMs:       a.totalMs / float64(a.count),
			SuccessRate: float64(a.successes) / float64(a.count),
			TotalBytes:  a.totalBytes,
		}
	}

	report.Timeseries = make([]TimeseriesBucket, 0, len(buckets))
	for _, b := range buckets {
		report.Timeseries = append(report.Timeseries, TimeseriesBucket{
			BucketStart:  b.start,
			OpsPerSec:    float64(b.count) / (timeseriesBinMs / 1000.0),
			AvgLatencyMs: b.totalMs / float64(b.count),
			ErrorRate:    float64(b.errors) / float64(b.count),
		})
	}
	sortBucketsByStart(report.Timeseries)

	return report
}

func sortBucketsByStart(buckets []TimeseriesBucket) {
	for i := 1; i < len(buckets); i++ {
		for j := i; j > 0 && buckets[j].BucketStart < buckets[j-1].BucketStart; j-- {
			buckets[j], buckets[j-1] = buckets[j-1], buckets[j]
		}
	}
}

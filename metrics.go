package medoids

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    runCounter        prometheus.Counter
//	    iterationHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordRun(iterations int, converged bool, d time.Duration, err error) {
//	    p.runCounter.Inc()
//	    // ... record convergence, duration, etc.
//	}
type MetricsCollector interface {
	// RecordRun is called once per Engine.Run.
	// converged is false when the iteration cap stopped the loop,
	// err is nil if the run produced a clustering.
	RecordRun(iterations int, converged bool, duration time.Duration, err error)

	// RecordIteration is called after each pass of the convergence loop.
	// changed is the number of medoids that moved in that pass.
	RecordIteration(changed int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int, time.Duration)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	RunNotConverged     atomic.Int64
	RunTotalNanos       atomic.Int64
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	MedoidChanges       atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(iterations int, converged bool, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	if !converged {
		b.RunNotConverged.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(changed int, duration time.Duration) {
	b.IterationCount.Add(1)
	b.IterationTotalNanos.Add(duration.Nanoseconds())
	b.MedoidChanges.Add(int64(changed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:          b.RunCount.Load(),
		RunErrors:         b.RunErrors.Load(),
		RunNotConverged:   b.RunNotConverged.Load(),
		RunAvgNanos:       avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
		IterationCount:    b.IterationCount.Load(),
		IterationAvgNanos: avg(b.IterationTotalNanos.Load(), b.IterationCount.Load()),
		MedoidChanges:     b.MedoidChanges.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount          int64
	RunErrors         int64
	RunNotConverged   int64
	RunAvgNanos       int64
	IterationCount    int64
	IterationAvgNanos int64
	MedoidChanges     int64
}

package hypergraph

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    mutations *prometheus.CounterVec
//	    cascade   prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordCascade(rewritten, removed int, duration time.Duration) {
//	    p.cascade.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordInsert is called after each AddVertex and AddHyperedge.
	RecordInsert(duration time.Duration, err error)

	// RecordUpdate is called after each in-place or content update.
	RecordUpdate(duration time.Duration, err error)

	// RecordDelete is called after each RemoveVertex and RemoveHyperedge.
	RecordDelete(duration time.Duration, err error)

	// RecordCascade is called after a successful vertex removal with the number
	// of hyperedges that were rewritten and removed.
	RecordCascade(rewritten, removed int, duration time.Duration)

	// RecordMerge is called when a content collision was resolved by merging.
	RecordMerge()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)     {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)     {}
func (NoopMetricsCollector) RecordDelete(time.Duration, error)     {}
func (NoopMetricsCollector) RecordCascade(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordMerge()                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount       atomic.Int64
	InsertErrors      atomic.Int64
	InsertTotalNanos  atomic.Int64
	UpdateCount       atomic.Int64
	UpdateErrors      atomic.Int64
	DeleteCount       atomic.Int64
	DeleteErrors      atomic.Int64
	CascadeCount      atomic.Int64
	CascadeRewritten  atomic.Int64
	CascadeRemoved    atomic.Int64
	CascadeTotalNanos atomic.Int64
	MergeCount        atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
	}
}

// RecordCascade implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCascade(rewritten, removed int, duration time.Duration) {
	b.CascadeCount.Add(1)
	b.CascadeRewritten.Add(int64(rewritten))
	b.CascadeRemoved.Add(int64(removed))
	b.CascadeTotalNanos.Add(duration.Nanoseconds())
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge() {
	b.MergeCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:      b.InsertCount.Load(),
		InsertErrors:     b.InsertErrors.Load(),
		InsertAvgNanos:   avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		UpdateCount:      b.UpdateCount.Load(),
		UpdateErrors:     b.UpdateErrors.Load(),
		DeleteCount:      b.DeleteCount.Load(),
		DeleteErrors:     b.DeleteErrors.Load(),
		CascadeCount:     b.CascadeCount.Load(),
		CascadeRewritten: b.CascadeRewritten.Load(),
		CascadeRemoved:   b.CascadeRemoved.Load(),
		CascadeAvgNanos:  avg(b.CascadeTotalNanos.Load(), b.CascadeCount.Load()),
		MergeCount:       b.MergeCount.Load(),
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
	InsertCount      int64 `json:"insert_count"`
	InsertErrors     int64 `json:"insert_errors"`
	InsertAvgNanos   int64 `json:"insert_avg_nanos"`
	UpdateCount      int64 `json:"update_count"`
	UpdateErrors     int64 `json:"update_errors"`
	DeleteCount      int64 `json:"delete_count"`
	DeleteErrors     int64 `json:"delete_errors"`
	CascadeCount     int64 `json:"cascade_count"`
	CascadeRewritten int64 `json:"cascade_rewritten"`
	CascadeRemoved   int64 `json:"cascade_removed"`
	CascadeAvgNanos  int64 `json:"cascade_avg_nanos"`
	MergeCount       int64 `json:"merge_count"`
}

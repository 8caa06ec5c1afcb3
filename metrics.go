package rtree

import (
	"sync/atomic"
	"time"
)

// SearchKind names the query that produced a RecordSearch call.
type SearchKind string

const (
	SearchIntersects  SearchKind = "intersects"
	SearchContains    SearchKind = "contains"
	SearchContaining  SearchKind = "containing"
	SearchOverlapping SearchKind = "overlapping"
	SearchNearest     SearchKind = "nearest"
)

// MetricsCollector defines an interface for collecting operational metrics.
type MetricsCollector interface {
	// RecordInsert is called after each insert. err is non-nil when the
	// bounding box was rejected.
	RecordInsert(duration time.Duration, err error)

	// RecordDelete is called after each delete. found reports whether an
	// entry was removed.
	RecordDelete(duration time.Duration, found bool)

	// RecordSearch is called once a query has finished yielding results.
	RecordSearch(kind SearchKind, results int, duration time.Duration)

	// RecordSplit is called for every node split.
	RecordSplit(leaf bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)           {}
func (NoopMetricsCollector) RecordDelete(time.Duration, bool)            {}
func (NoopMetricsCollector) RecordSearch(SearchKind, int, time.Duration) {}
func (NoopMetricsCollector) RecordSplit(bool)                            {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe to share between trees owned by different goroutines.
type BasicMetricsCollector struct {
	InsertCount      atomic.Int64
	InsertErrors     atomic.Int64
	InsertTotalNanos atomic.Int64
	DeleteCount      atomic.Int64
	DeleteMisses     atomic.Int64
	SearchCount      atomic.Int64
	SearchResults    atomic.Int64
	SearchTotalNanos atomic.Int64
	LeafSplits       atomic.Int64
	BranchSplits     atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(duration time.Duration, found bool) {
	b.DeleteCount.Add(1)
	if !found {
		b.DeleteMisses.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(kind SearchKind, results int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchResults.Add(int64(results))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
}

// RecordSplit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplit(leaf bool) {
	if leaf {
		b.LeafSplits.Add(1)
	} else {
		b.BranchSplits.Add(1)
	}
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	InsertCount    int64
	InsertErrors   int64
	InsertAvgNanos int64
	DeleteCount    int64
	DeleteMisses   int64
	SearchCount    int64
	SearchResults  int64
	SearchAvgNanos int64
	LeafSplits     int64
	BranchSplits   int64
}

// Stats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) Stats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:    b.InsertCount.Load(),
		InsertErrors:   b.InsertErrors.Load(),
		InsertAvgNanos: avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		DeleteCount:    b.DeleteCount.Load(),
		DeleteMisses:   b.DeleteMisses.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchResults:  b.SearchResults.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		LeafSplits:     b.LeafSplits.Load(),
		BranchSplits:   b.BranchSplits.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

package rtree

import (
	"container/heap"
	"time"
)

// Nearest returns the payloads of up to k entries closest to target, nearest
// first. Distance is the Euclidean distance between the closest points of two
// boxes, so every entry intersecting target is at distance 0. Entries at equal
// distance are returned in insertion order. Fewer than k payloads are returned
// when the tree holds fewer than k entries.
func (t *RTree[T]) Nearest(target BBox, k int) []T {
	return t.NearestWithin(target, k, -1)
}

// NearestWithin is like Nearest, but ignores entries further than maxDistance
// from target. A negative maxDistance means no limit.
func (t *RTree[T]) NearestWithin(target BBox, k int, maxDistance float64) []T {
	entries := t.NearestEntries(target, k, maxDistance)
	if entries == nil {
		return nil
	}
	result := make([]T, len(entries))
	for i, e := range entries {
		result[i] = e.Payload
	}
	return result
}

// NearestEntries is like NearestWithin, but returns entries rather than
// payloads.
func (t *RTree[T]) NearestEntries(target BBox, k int, maxDistance float64) []Entry[T] {
	if k <= 0 || target.Validate() != nil {
		return nil
	}
	start := time.Now()
	limit := -1.0
	if maxDistance >= 0 {
		limit = maxDistance * maxDistance
	}

	// Best-first search: a leaf entry popped from the queue is closer than
	// every unexplored node, because each node's box bounds its subtree.
	pq := &nearestQueue[T]{}
	heap.Push(pq, &nearestItem[T]{node: t.root})
	var result []Entry[T]
	for pq.Len() > 0 && len(result) < k {
		item := heap.Pop(pq).(*nearestItem[T])
		if item.isEntry {
			result = append(result, item.entry.toEntry())
			continue
		}
		nd := &t.nodes[item.node]
		for _, e := range nd.entries {
			d := DistanceSquared(target, e.bbox)
			if limit >= 0 && d > limit {
				continue
			}
			next := &nearestItem[T]{distance: d}
			if nd.isLeaf {
				next.isEntry = true
				next.entry = e
			} else {
				next.node = e.child
			}
			heap.Push(pq, next)
		}
	}

	t.metrics.RecordSearch(SearchNearest, len(result), time.Since(start))
	return result
}

// Compile time check to ensure nearestQueue satisfies the heap interface.
var _ heap.Interface = (*nearestQueue[int])(nil)

// nearestItem is either an unexplored node or a candidate leaf entry, keyed by
// its squared distance from the query target.
type nearestItem[T comparable] struct {
	distance float64
	isEntry  bool
	node     int
	entry    entry[T]
}

// nearestQueue is a min-heap of nearestItems. At equal distance nodes come
// before entries, so that an entry is only reported once no node at the same
// distance can still hold an entry inserted earlier. Entries at equal distance
// are ordered by insertion.
type nearestQueue[T comparable] []*nearestItem[T]

func (pq nearestQueue[T]) Len() int { return len(pq) }

func (pq nearestQueue[T]) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	if a.isEntry != b.isEntry {
		return !a.isEntry
	}
	if a.isEntry {
		return a.entry.seq < b.entry.seq
	}
	return a.node < b.node
}

func (pq nearestQueue[T]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nearestQueue[T]) Push(x any) {
	*pq = append(*pq, x.(*nearestItem[T]))
}

func (pq *nearestQueue[T]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // Avoid memory leak
	*pq = old[:n-1]
	return item
}

package rtree

import (
	"iter"
	"time"
)

// Intersects yields the payload of every entry whose box intersects bb
// (touching boundaries count). The sequence re-traverses the tree each time
// it is ranged over and may be stopped early.
func (t *RTree[T]) Intersects(bb BBox) iter.Seq[T] {
	return payloads(t.IntersectsEntries(bb))
}

// IntersectsEntries is like Intersects, but yields entries rather than
// payloads.
func (t *RTree[T]) IntersectsEntries(bb BBox) iter.Seq[Entry[T]] {
	return t.search(SearchIntersects,
		func(nodeBox BBox) bool { return overlap(nodeBox, bb) },
		func(itemBox BBox) bool { return overlap(itemBox, bb) },
	)
}

// Contains yields the payload of every entry whose box lies entirely within
// bb.
func (t *RTree[T]) Contains(bb BBox) iter.Seq[T] {
	return payloads(t.ContainsEntries(bb))
}

// ContainsEntries is like Contains, but yields entries rather than payloads.
func (t *RTree[T]) ContainsEntries(bb BBox) iter.Seq[Entry[T]] {
	return t.search(SearchContains,
		func(nodeBox BBox) bool { return overlap(nodeBox, bb) },
		func(itemBox BBox) bool { return Contains(bb, itemBox) },
	)
}

// Containing yields the payload of every entry whose box entirely covers bb.
func (t *RTree[T]) Containing(bb BBox) iter.Seq[T] {
	return payloads(t.ContainingEntries(bb))
}

// ContainingEntries is like Containing, but yields entries rather than
// payloads.
func (t *RTree[T]) ContainingEntries(bb BBox) iter.Seq[Entry[T]] {
	return t.search(SearchContaining,
		func(nodeBox BBox) bool { return Contains(nodeBox, bb) },
		func(itemBox BBox) bool { return Contains(itemBox, bb) },
	)
}

// Overlapping yields the payload of every entry for which at least minRatio
// of its own area is covered by bb. Entries with no area count as fully
// covered when they touch bb. A minRatio of 0 behaves like Intersects.
func (t *RTree[T]) Overlapping(bb BBox, minRatio float64) iter.Seq[T] {
	return payloads(t.OverlappingEntries(bb, minRatio))
}

// OverlappingEntries is like Overlapping, but yields entries rather than
// payloads.
func (t *RTree[T]) OverlappingEntries(bb BBox, minRatio float64) iter.Seq[Entry[T]] {
	return t.search(SearchOverlapping,
		func(nodeBox BBox) bool { return overlap(nodeBox, bb) },
		func(itemBox BBox) bool {
			return overlap(itemBox, bb) && overlapRatio(itemBox, bb) >= minRatio
		},
	)
}

// search walks the tree depth first. Subtrees are only descended into when
// descend accepts their box, and leaf entries are yielded when match accepts
// theirs.
func (t *RTree[T]) search(kind SearchKind, descend, match func(BBox) bool) iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		start := time.Now()
		var found int
		var recurse func(n int) bool
		recurse = func(n int) bool {
			nd := &t.nodes[n]
			for _, e := range nd.entries {
				if nd.isLeaf {
					if !match(e.bbox) {
						continue
					}
					found++
					if !yield(e.toEntry()) {
						return false
					}
				} else if descend(e.bbox) {
					if !recurse(e.child) {
						return false
					}
				}
			}
			return true
		}
		recurse(t.root)
		t.metrics.RecordSearch(kind, found, time.Since(start))
	}
}

func payloads[T comparable](seq iter.Seq[Entry[T]]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := range seq {
			if !yield(e.Payload) {
				return
			}
		}
	}
}

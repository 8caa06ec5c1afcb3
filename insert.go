package rtree

import (
	"math"
	"sort"
	"time"
)

// Insert adds a new data item to the RTree. Malformed bounding boxes (NaN or
// infinite bounds, or minimums exceeding maximums) are rejected with an error
// wrapping ErrInvalidRect, and the tree is left unmodified.
func (t *RTree[T]) Insert(bb BBox, payload T) error {
	start := time.Now()
	err := bb.Validate()
	if err == nil {
		t.insert(entry[T]{bbox: bb, payload: payload, seq: t.nextSeq})
		t.nextSeq++
		t.size++
	}
	t.metrics.RecordInsert(time.Since(start), err)
	return err
}

// insert places a leaf entry into the tree. The entry keeps its sequence
// number, so re-inserted entries retain their original insertion order.
func (t *RTree[T]) insert(e entry[T]) {
	leaf := t.chooseLeafNode(e.bbox)
	t.nodes[leaf].entries = append(t.nodes[leaf].entries, e)
	t.adjustBoxesUpwards(leaf, e.bbox)

	if len(t.nodes[leaf].entries) <= t.policy.maxEntries {
		return
	}

	newNode := t.splitNode(leaf)
	root1, root2 := t.adjustTree(leaf, newNode)
	if root2 != -1 {
		t.joinRoots(root1, root2)
	}
}

// adjustBoxesUpwards expands the boxes from the given node all the way to the
// root by the given box.
func (t *RTree[T]) adjustBoxesUpwards(n int, bb BBox) {
	for n != t.root {
		parent := t.nodes[n].parent
		e := &t.nodes[parent].entries[t.entryIndex(parent, n)]
		e.bbox = combine(e.bbox, bb)
		n = parent
	}
}

func (t *RTree[T]) joinRoots(r1, r2 int) {
	bb1, bb2 := t.calculateBound(r1), t.calculateBound(r2)
	newRoot := t.allocNode(false, -1)
	t.nodes[newRoot].entries = []entry[T]{
		{bbox: bb1, child: r1},
		{bbox: bb2, child: r2},
	}
	t.nodes[r1].parent = newRoot
	t.nodes[r2].parent = newRoot
	t.root = newRoot
	t.logger.LogGrow(t.Height())
}

// adjustTree ascends from node n to the root, tightening the covering boxes
// along the way and installing nn (the node split off from n, or -1) into the
// parent. Parents that overflow are split in turn. It returns the root and
// the node split off from the root (or -1).
func (t *RTree[T]) adjustTree(n, nn int) (int, int) {
	for {
		if n == t.root {
			return n, nn
		}
		parent := t.nodes[n].parent
		t.nodes[parent].entries[t.entryIndex(parent, n)].bbox = t.calculateBound(n)

		pp := -1
		if nn != -1 {
			newEntry := entry[T]{
				bbox:  t.calculateBound(nn),
				child: nn,
			}
			t.nodes[parent].entries = append(t.nodes[parent].entries, newEntry)
			t.nodes[nn].parent = parent
			if len(t.nodes[parent].entries) > t.policy.maxEntries {
				pp = t.splitNode(parent)
			}
		}

		n, nn = parent, pp
	}
}

// splitNode splits node with index n into two nodes. The first node replaces
// n, and the second node is newly created. The return value is the index of
// the new node.
//
// Entries are sorted by their centres along the wider axis of the node, and
// the node is cut at the position giving the smallest sum of the two group
// areas while leaving at least minEntries in each group.
func (t *RTree[T]) splitNode(n int) int {
	entries := make([]entry[T], len(t.nodes[n].entries))
	copy(entries, t.nodes[n].entries)

	bound := t.calculateBound(n)
	sortAxis := axisY
	if bound.MaxX-bound.MinX > bound.MaxY-bound.MinY {
		sortAxis = axisX
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return center(entries[i].bbox, sortAxis) < center(entries[j].bbox, sortAxis)
	})

	// suffix[i] bounds entries[i:].
	suffix := make([]BBox, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		suffix[i] = extend(suffix[min(i+1, len(entries)-1)], i < len(entries)-1, entries[i].bbox)
	}

	minEntries := t.policy.minEntries
	var prefix BBox
	bestArea := math.Inf(+1)
	bestCut := minEntries
	for cut := 1; cut <= len(entries)-minEntries; cut++ {
		prefix = extend(prefix, cut > 1, entries[cut-1].bbox)
		if cut < minEntries {
			continue
		}
		combinedArea := area(prefix) + area(suffix[cut])
		if combinedArea < bestArea {
			bestArea = combinedArea
			bestCut = cut
		}
	}

	entriesA := entries[:bestCut:bestCut]
	entriesB := entries[bestCut:]

	// Use the existing node for A, and create a new node for B.
	isLeaf := t.nodes[n].isLeaf
	t.nodes[n].entries = entriesA
	nn := t.allocNode(isLeaf, -1)
	t.nodes[nn].entries = entriesB
	if !isLeaf {
		for _, e := range entriesB {
			t.nodes[e.child].parent = nn
		}
	}

	t.logger.LogSplit(isLeaf, len(entriesA), len(entriesB))
	t.metrics.RecordSplit(isLeaf)
	return nn
}

// chooseLeafNode descends from the root to a leaf, at each level picking the
// entry needing the least enlargement to include bb. Ties go to the entry
// with the smallest area, then to the first such entry.
func (t *RTree[T]) chooseLeafNode(bb BBox) int {
	n := t.root

	for {
		if t.nodes[n].isLeaf {
			return n
		}
		entries := t.nodes[n].entries
		bestEntry := 0
		bestDelta := enlargement(entries[0].bbox, bb)
		bestArea := area(entries[0].bbox)
		for i := 1; i < len(entries); i++ {
			delta := enlargement(entries[i].bbox, bb)
			a := area(entries[i].bbox)
			if delta < bestDelta || (delta == bestDelta && a < bestArea) {
				bestEntry = i
				bestDelta = delta
				bestArea = a
			}
		}
		n = entries[bestEntry].child
	}
}

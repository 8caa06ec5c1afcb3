package rtree

import "time"

// Delete removes a single entry whose bounding box equals bb exactly and whose
// payload equals payload. The returned bool indicates whether or not such an
// entry could be found and thus removed from the RTree. When several equal
// entries exist, only one of them is removed.
func (t *RTree[T]) Delete(bb BBox, payload T) bool {
	start := time.Now()

	// D1 [Find node containing record]
	leaf, idx := t.findEntry(bb, payload)
	found := leaf != -1
	if found {
		// D2 [Delete record]
		t.deleteEntry(leaf, idx)
		t.size--

		// D3 [Propagate changes]
		orphans := t.condenseTree(leaf)

		// D4 [Shorten tree]
		t.shortenTree()

		for _, e := range orphans {
			t.insert(e)
		}
	}

	t.metrics.RecordDelete(time.Since(start), found)
	return found
}

// findEntry locates the leaf and position of the entry matching bb and
// payload, or returns -1 if there is none. Only subtrees whose boxes contain
// bb can hold the entry.
func (t *RTree[T]) findEntry(bb BBox, payload T) (int, int) {
	stack := []int{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for i, e := range t.nodes[n].entries {
			if !Contains(e.bbox, bb) {
				continue
			}
			if !t.nodes[n].isLeaf {
				stack = append(stack, e.child)
				continue
			}
			if e.bbox == bb && e.payload == payload {
				return n, i
			}
		}
	}
	return -1, -1
}

func (t *RTree[T]) deleteEntry(n, entryIdx int) {
	entries := t.nodes[n].entries
	last := len(entries) - 1
	entries[entryIdx] = entries[last]
	entries[last] = entry[T]{}
	t.nodes[n].entries = entries[:last]
}

// condenseTree ascends from the leaf that lost an entry to the root. Nodes
// left with fewer than minEntries entries are detached from their parents and
// the boxes of surviving nodes are tightened. The leaf entries held beneath
// detached nodes are returned for re-insertion.
func (t *RTree[T]) condenseTree(leaf int) []entry[T] {
	// CT1 [Initialise]
	var eliminated []int
	current := leaf

	for current != t.root {
		// CT2 [Find Parent Entry]
		parent := t.nodes[current].parent
		entryIdx := t.entryIndex(parent, current)

		if len(t.nodes[current].entries) < t.policy.minEntries {
			// CT3 [Eliminate Under-Full Node]
			eliminated = append(eliminated, current)
			t.deleteEntry(parent, entryIdx)
		} else {
			// CT4 [Adjust Covering Rectangle]
			t.nodes[parent].entries[entryIdx].bbox = t.calculateBound(current)
		}

		// CT5 [Move Up One Level In Tree]
		current = parent
	}

	if len(eliminated) == 0 {
		return nil
	}

	// CT6 [Collect orphaned entries]
	var orphans []entry[T]
	for _, n := range eliminated {
		orphans = t.detachSubtree(n, orphans)
	}
	t.logger.LogReinsert(len(eliminated), len(orphans))
	return orphans
}

// detachSubtree appends every leaf entry beneath node n to dst and releases
// the subtree's nodes back to the arena.
func (t *RTree[T]) detachSubtree(n int, dst []entry[T]) []entry[T] {
	if t.nodes[n].isLeaf {
		dst = append(dst, t.nodes[n].entries...)
	} else {
		for _, e := range t.nodes[n].entries {
			dst = t.detachSubtree(e.child, dst)
		}
	}
	t.freeNode(n)
	return dst
}

// shortenTree collapses a non-leaf root with a single child into that child,
// repeatedly. A non-leaf root left with no children at all is replaced by an
// empty leaf.
func (t *RTree[T]) shortenTree() {
	for !t.nodes[t.root].isLeaf {
		switch len(t.nodes[t.root].entries) {
		case 0:
			t.nodes[t.root].isLeaf = true
			return
		case 1:
			old := t.root
			t.root = t.nodes[old].entries[0].child
			t.nodes[t.root].parent = -1
			t.freeNode(old)
			t.logger.LogShrink(t.Height())
		default:
			return
		}
	}
}

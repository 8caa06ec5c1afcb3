package rtree

import "fmt"

// node is a node in an R-Tree. Nodes can either be leaf nodes holding entries
// for terminal items, or intermediate nodes holding entries for more nodes.
type node[T comparable] struct {
	isLeaf  bool
	entries []entry[T]
	parent  int
}

// entry is an entry under a node, leading either to terminal items, or more
// nodes.
type entry[T comparable] struct {
	bbox BBox

	// For non-leaf nodes, this is the child node index.
	child int

	// For leaf nodes, the caller's payload and the sequence number it was
	// inserted with.
	payload T
	seq     uint64
}

// Entry is a bounding box and payload pair held by the tree.
type Entry[T comparable] struct {
	BBox    BBox
	Payload T

	seq uint64
}

// RTree is an in-memory R-Tree data structure holding bounding box and payload
// pairs. The tree never inspects a payload beyond comparing it with == on
// deletion.
//
// An RTree is not safe for concurrent use. Callers sharing a tree between
// goroutines must serialise mutations, and must not query while a mutation is
// in flight.
type RTree[T comparable] struct {
	policy InsertionPolicy

	// nodes is an arena; nodes refer to each other by index. Slots of
	// discarded nodes are recorded in free and reused.
	nodes []node[T]
	free  []int
	root  int

	size    int
	nextSeq uint64

	logger  *Logger
	metrics MetricsCollector
}

// NewInsertionPolicy creates a new insertion policy with the given node size
// parameters.
func NewInsertionPolicy(minEntries, maxEntries int) (InsertionPolicy, error) {
	if maxEntries < 4 {
		return InsertionPolicy{}, fmt.Errorf("%w: max entries must be at least 4, got %d", ErrInvalidPolicy, maxEntries)
	}
	if minEntries < 1 || minEntries > maxEntries/2 {
		return InsertionPolicy{}, fmt.Errorf("%w: min entries must be between 1 and half of the max entries (%d), got %d",
			ErrInvalidPolicy, maxEntries/2, minEntries)
	}
	return InsertionPolicy{minEntries, maxEntries}, nil
}

// InsertionPolicy holds the node fanout bounds of an RTree. Every node other
// than the root holds between MinEntries and MaxEntries entries.
type InsertionPolicy struct {
	minEntries int
	maxEntries int
}

// MinEntries is the underflow threshold used on deletion.
func (p InsertionPolicy) MinEntries() int { return p.minEntries }

// MaxEntries is the node fanout.
func (p InsertionPolicy) MaxEntries() int { return p.maxEntries }

// New creates an empty RTree. It fails if the node size parameters are
// invalid (see NewInsertionPolicy).
func New[T comparable](minEntries, maxEntries int, opts ...Option) (*RTree[T], error) {
	policy, err := NewInsertionPolicy(minEntries, maxEntries)
	if err != nil {
		return nil, err
	}
	return NewWithPolicy[T](policy, opts...), nil
}

// NewWithPolicy creates an empty RTree from an already validated policy.
func NewWithPolicy[T comparable](policy InsertionPolicy, opts ...Option) *RTree[T] {
	o := applyOptions(opts)
	t := &RTree[T]{
		policy:  policy,
		logger:  o.logger,
		metrics: o.metrics,
	}
	t.reset()
	return t
}

func (t *RTree[T]) reset() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.root = t.allocNode(true, -1)
	t.size = 0
}

// allocNode returns the index of a fresh node, reusing a discarded slot when
// one is available. It may grow the arena, so pointers into t.nodes must not
// be held across calls.
func (t *RTree[T]) allocNode(isLeaf bool, parent int) int {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[idx] = node[T]{isLeaf: isLeaf, parent: parent}
		return idx
	}
	t.nodes = append(t.nodes, node[T]{isLeaf: isLeaf, parent: parent})
	return len(t.nodes) - 1
}

func (t *RTree[T]) freeNode(n int) {
	t.nodes[n] = node[T]{parent: -1}
	t.free = append(t.free, n)
}

// Policy returns the node size parameters of the tree.
func (t *RTree[T]) Policy() InsertionPolicy {
	return t.policy
}

// Size returns the number of entries in the tree.
func (t *RTree[T]) Size() int {
	return t.size
}

// IsEmpty reports whether the tree holds no entries.
func (t *RTree[T]) IsEmpty() bool {
	return t.size == 0
}

// Height returns the number of node levels in the tree. An empty tree has a
// height of 1 (a single empty leaf).
func (t *RTree[T]) Height() int {
	h := 1
	for n := t.root; !t.nodes[n].isLeaf; n = t.nodes[n].entries[0].child {
		h++
	}
	return h
}

// Bounds gives the smallest BBox covering every entry in the tree. If the
// tree is empty, then false is returned.
func (t *RTree[T]) Bounds() (BBox, bool) {
	if len(t.nodes[t.root].entries) == 0 {
		return BBox{}, false
	}
	return t.calculateBound(t.root), true
}

// Clear removes every entry from the tree.
func (t *RTree[T]) Clear() {
	t.reset()
}

func (e entry[T]) toEntry() Entry[T] {
	return Entry[T]{BBox: e.bbox, Payload: e.payload, seq: e.seq}
}

// entryIndex finds the position of child within parent's entries.
func (t *RTree[T]) entryIndex(parent, child int) int {
	for i, e := range t.nodes[parent].entries {
		if e.child == child {
			return i
		}
	}
	panic("could not find child entry in parent")
}

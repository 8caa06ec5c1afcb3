package rtree

import (
	"cmp"
	"fmt"
	"sort"
	"strings"
)

// Ordering is a reading order for entries on a page.
type Ordering int

const (
	// OrderInsertion orders entries by when they were first inserted.
	OrderInsertion Ordering = iota
	// OrderHorizontal orders entries left to right by MinX.
	OrderHorizontal
	// OrderVertical orders entries by MinY.
	OrderVertical
	// OrderMixed orders entries by MinY, then left to right by MinX.
	OrderMixed
	// OrderMixedAbsolute orders entries by MinY, then MaxY, then MinX.
	OrderMixedAbsolute
)

var orderingNames = [...]string{
	OrderInsertion:     "original",
	OrderHorizontal:    "horizontal",
	OrderVertical:      "vertical",
	OrderMixed:         "mixed",
	OrderMixedAbsolute: "mixedAbs",
}

func (o Ordering) String() string {
	if o < 0 || int(o) >= len(orderingNames) {
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
	return orderingNames[o]
}

// ParseOrdering parses an ordering name as produced by Ordering.String. The
// match is case insensitive.
func ParseOrdering(s string) (Ordering, error) {
	for i, name := range orderingNames {
		if strings.EqualFold(name, s) {
			return Ordering(i), nil
		}
	}
	return 0, fmt.Errorf("unknown ordering %q", s)
}

// SortEntries sorts entries in place by the given ordering. Entries that
// compare equal keep their insertion order.
func SortEntries[T comparable](entries []Entry[T], order Ordering) {
	compare := compareFunc(order)
	sort.SliceStable(entries, func(i, j int) bool {
		if c := compare(entries[i].BBox, entries[j].BBox); c != 0 {
			return c < 0
		}
		return entries[i].seq < entries[j].seq
	})
}

func compareFunc(order Ordering) func(a, b BBox) int {
	switch order {
	case OrderHorizontal:
		return func(a, b BBox) int { return cmp.Compare(a.MinX, b.MinX) }
	case OrderVertical:
		return func(a, b BBox) int { return cmp.Compare(a.MinY, b.MinY) }
	case OrderMixed:
		return func(a, b BBox) int {
			if c := cmp.Compare(a.MinY, b.MinY); c != 0 {
				return c
			}
			return cmp.Compare(a.MinX, b.MinX)
		}
	case OrderMixedAbsolute:
		return func(a, b BBox) int {
			if c := cmp.Compare(a.MinY, b.MinY); c != 0 {
				return c
			}
			if c := cmp.Compare(a.MaxY, b.MaxY); c != 0 {
				return c
			}
			return cmp.Compare(a.MinX, b.MinX)
		}
	default:
		return func(BBox, BBox) int { return 0 }
	}
}

// All returns every entry in the tree, sorted by order.
func (t *RTree[T]) All(order Ordering) []Entry[T] {
	entries := make([]Entry[T], 0, t.size)
	var recurse func(n int)
	recurse = func(n int) {
		nd := &t.nodes[n]
		for _, e := range nd.entries {
			if nd.isLeaf {
				entries = append(entries, e.toEntry())
			} else {
				recurse(e.child)
			}
		}
	}
	recurse(t.root)
	SortEntries(entries, order)
	return entries
}

package rtree

import (
	"fmt"
	"math"
)

// BBox is an axis-aligned bounding box. Boxes with zero width or height
// (lines and points) are valid.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Point gives the degenerate bounding box at (x, y).
func Point(x, y float64) BBox {
	return BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

// Validate checks that the box has finite bounds and that its minimums do not
// exceed its maximums.
func (b BBox) Validate() error {
	for _, v := range [...]float64{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &RectError{BBox: b, Reason: "bounds must be finite"}
		}
	}
	if b.MinX > b.MaxX {
		return &RectError{BBox: b, Reason: "min x exceeds max x"}
	}
	if b.MinY > b.MaxY {
		return &RectError{BBox: b, Reason: "min y exceeds max y"}
	}
	return nil
}

func (b BBox) String() string {
	return fmt.Sprintf("[%g,%g,%g,%g]", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// calculateBound calculates the smallest bounding box that fits a node. The
// node must have at least one entry.
func (t *RTree[T]) calculateBound(n int) BBox {
	bb := t.nodes[n].entries[0].bbox
	for _, entry := range t.nodes[n].entries[1:] {
		bb = combine(bb, entry.bbox)
	}
	return bb
}

// Union gives the smallest bounding box containing both bbox1 and bbox2.
func Union(bbox1, bbox2 BBox) BBox {
	return combine(bbox1, bbox2)
}

func combine(bbox1, bbox2 BBox) BBox {
	return BBox{
		MinX: math.Min(bbox1.MinX, bbox2.MinX),
		MinY: math.Min(bbox1.MinY, bbox2.MinY),
		MaxX: math.Max(bbox1.MaxX, bbox2.MaxX),
		MaxY: math.Max(bbox1.MaxY, bbox2.MaxY),
	}
}

// extend grows bb to include add. When has is false there is no bb yet, so
// add is returned unchanged. This is how bounds are seeded from a first child.
func extend(bb BBox, has bool, add BBox) BBox {
	if !has {
		return add
	}
	return combine(bb, add)
}

// Enlargement returns how much additional area the existing BBox would have
// to enlarge by to accommodate the additional BBox.
func Enlargement(existing, additional BBox) float64 {
	return enlargement(existing, additional)
}

func enlargement(existing, additional BBox) float64 {
	// Never negative, even when rounding in the subtraction goes below zero.
	return math.Max(0, area(combine(existing, additional))-area(existing))
}

// Area gives the area of the box. Degenerate boxes have zero area.
func Area(bb BBox) float64 {
	return area(bb)
}

func area(bb BBox) float64 {
	return (bb.MaxX - bb.MinX) * (bb.MaxY - bb.MinY)
}

// Intersects reports whether the boxes share at least one point. Boxes that
// only touch along an edge or a corner intersect.
func Intersects(bbox1, bbox2 BBox) bool {
	return overlap(bbox1, bbox2)
}

func overlap(bbox1, bbox2 BBox) bool {
	return true &&
		(bbox1.MinX <= bbox2.MaxX) && (bbox1.MaxX >= bbox2.MinX) &&
		(bbox1.MinY <= bbox2.MaxY) && (bbox1.MaxY >= bbox2.MinY)
}

// Contains reports whether inner lies entirely within (or on the boundary of)
// outer.
func Contains(outer, inner BBox) bool {
	return true &&
		(outer.MinX <= inner.MinX) && (outer.MaxX >= inner.MaxX) &&
		(outer.MinY <= inner.MinY) && (outer.MaxY >= inner.MaxY)
}

// OverlapArea gives the area of the intersection of the two boxes, or 0 if
// they are disjoint.
func OverlapArea(bbox1, bbox2 BBox) float64 {
	w := math.Min(bbox1.MaxX, bbox2.MaxX) - math.Max(bbox1.MinX, bbox2.MinX)
	h := math.Min(bbox1.MaxY, bbox2.MaxY) - math.Max(bbox1.MinY, bbox2.MinY)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// overlapRatio is the fraction of item covered by query. An item with no area
// counts as fully covered when it touches query.
func overlapRatio(item, query BBox) float64 {
	if !overlap(item, query) {
		return 0
	}
	a := area(item)
	if a == 0 {
		return 1
	}
	return OverlapArea(item, query) / a
}

// DistanceSquared gives the squared Euclidean distance between the closest
// points of the two boxes. It is 0 when they intersect.
func DistanceSquared(bbox1, bbox2 BBox) float64 {
	dx := math.Max(0, math.Max(bbox1.MinX-bbox2.MaxX, bbox2.MinX-bbox1.MaxX))
	dy := math.Max(0, math.Max(bbox1.MinY-bbox2.MaxY, bbox2.MinY-bbox1.MaxY))
	return dx*dx + dy*dy
}

type axis int

const (
	axisX axis = iota
	axisY
)

func center(bb BBox, a axis) float64 {
	if a == axisX {
		return bb.MinX + bb.MaxX
	}
	return bb.MinY + bb.MaxY
}

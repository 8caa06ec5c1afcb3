package layout

import "github.com/RoaringBitmap/roaring/v2"

// Selection is a set of block IDs, typically the union of several region
// queries on one page.
type Selection struct {
	rb *roaring.Bitmap
}

// NewSelection creates a selection holding ids.
func NewSelection(ids ...uint32) *Selection {
	return &Selection{rb: roaring.BitmapOf(ids...)}
}

// Add adds id to the selection.
func (s *Selection) Add(id uint32) {
	s.rb.Add(id)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id uint32) bool {
	return s.rb.Contains(id)
}

// Len returns the number of selected IDs.
func (s *Selection) Len() int {
	return int(s.rb.GetCardinality())
}

// IDs returns the selected IDs in ascending order.
func (s *Selection) IDs() []uint32 {
	return s.rb.ToArray()
}

// Union adds every ID of other to s.
func (s *Selection) Union(other *Selection) {
	s.rb.Or(other.rb)
}

// Intersect keeps only the IDs of s that are also in other.
func (s *Selection) Intersect(other *Selection) {
	s.rb.And(other.rb)
}

// Subtract removes every ID of other from s.
func (s *Selection) Subtract(other *Selection) {
	s.rb.AndNot(other.rb)
}

package rtree

import "fmt"

// InsertItem is an item that can be inserted as part of a batch.
type InsertItem[T comparable] struct {
	BBox    BBox
	Payload T
}

// InsertAll inserts each item in turn, in slice order. Every bounding box is
// validated before the first insertion, so when an error is returned (naming
// the offending item) the tree is unmodified.
func (t *RTree[T]) InsertAll(items []InsertItem[T]) error {
	for i, item := range items {
		if err := item.BBox.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	for _, item := range items {
		if err := t.Insert(item.BBox, item.Payload); err != nil {
			return err
		}
	}
	return nil
}

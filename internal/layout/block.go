package layout

import (
	"fmt"

	"github.com/pdfblocks/rtree"
)

// Block is a layout block extracted from a document page: a chunk of text, a
// word, a figure. The index only ever sees its ID and bounding box.
type Block struct {
	ID   uint32
	Page int
	Kind string
	BBox rtree.BBox
	Text string
}

func (b Block) String() string {
	return fmt.Sprintf("block %d (page %d, %s) %v", b.ID, b.Page, b.Kind, b.BBox)
}

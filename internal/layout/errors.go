package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when a nearest block query asks for fewer than
	// one result.
	ErrInvalidK = errors.New("k must be positive")

	// ErrUnknownMode is returned when a query mode name cannot be parsed.
	ErrUnknownMode = errors.New("unknown query mode")
)

// DuplicateBlockError is returned when a block ID is already present on a
// page.
type DuplicateBlockError struct {
	ID   uint32
	Page int
}

func (e *DuplicateBlockError) Error() string {
	return fmt.Sprintf("duplicate block %d on page %d", e.ID, e.Page)
}

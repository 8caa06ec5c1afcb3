package rtree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPolicy is returned when the node size parameters cannot
	// produce a valid tree.
	ErrInvalidPolicy = errors.New("invalid insertion policy")

	// ErrInvalidRect is returned (wrapped in a *RectError) when a bounding
	// box is malformed.
	ErrInvalidRect = errors.New("invalid bounding box")
)

// RectError describes a malformed bounding box passed to the tree.
//
// errors.Is(err, ErrInvalidRect) reports true for any RectError.
type RectError struct {
	BBox   BBox
	Reason string
}

func (e *RectError) Error() string {
	return fmt.Sprintf("invalid bounding box %v: %s", e.BBox, e.Reason)
}

func (e *RectError) Unwrap() error { return ErrInvalidRect }

package sections

import "errors"

var (
	// ErrInvalidSectionType indicates a type outside the registered set.
	ErrInvalidSectionType = errors.New("invalid section type")

	// ErrSectionNotFound indicates the section ID did not resolve.
	ErrSectionNotFound = errors.New("section not found")

	// ErrItemNotFound indicates the item ID did not resolve within its section.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidReorder indicates a reorder request that is not a permutation
	// of the current order.
	ErrInvalidReorder = errors.New("new order must be a permutation of the current order")
)

package ghost

import "errors"

var (
	// ErrInvalidOrderInput rejects ghost orders with a non-numeric price or a
	// non-positive quantity before they reach the book.
	ErrInvalidOrderInput = errors.New("invalid order input")

	// ErrUnresolvableContract means no market key could be derived from an
	// incoming contract; the event is dropped, never retried.
	ErrUnresolvableContract = errors.New("unresolvable contract")
)

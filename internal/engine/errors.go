package engine

import "errors"

// Precondition violations. Answer mismatches are outcomes, not errors.
var (
	ErrUnknownItem     = errors.New("item is not in the current round")
	ErrUnknownCategory = errors.New("category is not in the current round")
	ErrNoPendingItem   = errors.New("no item selected")
	ErrEmptySelection  = errors.New("selection is empty")
	ErrModeMismatch    = errors.New("operation not supported in this mode")
	ErrEmptyDeck       = errors.New("deck has no rounds")
)

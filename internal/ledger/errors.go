package ledger

import "errors"

var (
	// ErrInvalidInput means a numeric field failed to parse. The operation
	// that returned it left the ledger unchanged.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means a lookup by index, id or supplier matched nothing.
	ErrNotFound = errors.New("not found")
)

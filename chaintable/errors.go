package chaintable

import "errors"

var (
	// ErrInvalidArgument reports a nil table handle, a destroyed table handle,
	// a nil key, or out-of-range creation parameters. Rejected before any
	// mutation takes place.
	ErrInvalidArgument = errors.New("chaintable: invalid table handle, key or parameter")

	// ErrKeyExists reports an insert without replace against a present key.
	// The table is left unmodified; fully recoverable.
	ErrKeyExists = errors.New("chaintable: key already present")

	// ErrKeyNotFound is the normal negative result of Get and Remove, not an
	// exceptional condition.
	ErrKeyNotFound = errors.New("chaintable: key not found")

	// ErrAllocation reports that the backing bucket array could not be
	// obtained while growing. The pre-growth table stays valid; the caller
	// may retry later.
	ErrAllocation = errors.New("chaintable: backing storage exhausted")
)

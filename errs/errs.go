// Package errs defines the sentinel errors returned by bytesparse.
//
// Every error produced by the library wraps exactly one of these values, so
// callers can classify failures with errors.Is while the message carries the
// addresses and sizes involved.
package errs

import "errors"

// Validation errors.
var (
	// ErrInvalidBounds is returned when the span of an instance is inverted,
	// for example when blocks are given out of order.
	ErrInvalidBounds = errors.New("invalid bounds")
	// ErrInvalidInterleaving is returned when two blocks overlap or touch.
	ErrInvalidInterleaving = errors.New("invalid block interleaving")
	// ErrInvalidBlockBounds is returned when a block lies outside the trim window.
	ErrInvalidBlockBounds = errors.New("invalid block bounds")
	// ErrInvalidBlockSize is returned for a block without data.
	ErrInvalidBlockSize = errors.New("invalid block data size")
)

// Argument errors.
var (
	// ErrNegativeAddress is returned when a negative address is given to an
	// instance created with unsigned addressing.
	ErrNegativeAddress = errors.New("negative address")
	// ErrNegativeOffset is returned by Extend for a negative offset.
	ErrNegativeOffset = errors.New("negative extension offset")
	// ErrEmptyPattern is returned when a fill pattern has no bytes.
	ErrEmptyPattern = errors.New("non-empty pattern required")
	// ErrExpectingSingleItem is returned when a single-cell operation gets more than one byte.
	ErrExpectingSingleItem = errors.New("expecting single item")
	// ErrSizeMismatch is returned when a stepped assignment gets the wrong number of bytes.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrMultipleSources is returned when more than one construction source is given.
	ErrMultipleSources = errors.New("only one of [memory, data, blocks] is allowed")
)

// Lookup errors.
var (
	// ErrNotFound is returned when a searched token is absent.
	ErrNotFound = errors.New("subsection not found")
	// ErrNonContiguous is returned when a range contains gaps where bytes are required.
	ErrNonContiguous = errors.New("non-contiguous data within range")
	// ErrEmpty is returned when removing an item from an instance without content.
	ErrEmpty = errors.New("empty")
)

package transition

import (
	"errors"
	"fmt"
)

// Sentinel errors for transition operations.
var (
	// ErrIndexOutOfRange indicates a transition or condition index was
	// out of bounds. This is a caller bug; the graph remains valid.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotEvaluable indicates Evaluate was called on a transition that
	// cannot be evaluated locally (prompt conditions are judged by an
	// external LLM).
	ErrNotEvaluable = errors.New("transition is not locally evaluable")
)

// IndexError wraps ErrIndexOutOfRange with the operation and bounds.
type IndexError struct {
	// Op is the operation that failed (e.g., "remove transition").
	Op string
	// Index is the out-of-bounds index supplied by the caller.
	Index int
	// Len is the length of the sequence being indexed.
	Len int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range (len %d)", e.Op, e.Index, e.Len)
}

// Unwrap returns ErrIndexOutOfRange for errors.Is support.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

package convoflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph mutation and validation.
var (
	// ErrInvalidNodeKind indicates an unrecognized node kind was requested.
	// This is a caller bug: the kind set is closed.
	ErrInvalidNodeKind = errors.New("invalid node kind")

	// ErrNodeNotFound indicates an operation referenced a node id that is
	// not present in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoBeginNode indicates a graph has no begin node. Mutations never
	// raise this; only Validate does.
	ErrNoBeginNode = errors.New("graph has no begin node")
)

// KindError wraps ErrInvalidNodeKind with the offending kind tag.
type KindError struct {
	// Kind is the unrecognized kind tag as supplied by the caller.
	Kind string
}

// Error implements the error interface.
func (e *KindError) Error() string {
	return fmt.Sprintf("invalid node kind: %q", e.Kind)
}

// Unwrap returns ErrInvalidNodeKind for errors.Is support.
func (e *KindError) Unwrap() error {
	return ErrInvalidNodeKind
}

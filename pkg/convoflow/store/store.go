package store

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for storage operations.
var (
	// ErrNotFound indicates no flow document exists for the agent. On
	// load this is not a failure: it triggers the default-document
	// bootstrap in the designer.
	ErrNotFound = errors.New("flow not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("flow store closed")
)

// Store persists flow documents. Implementations must be safe for
// concurrent use. All failures other than ErrNotFound are recoverable:
// the in-memory graph stays editable regardless of the outcome.
type Store interface {
	// Load fetches the flow document for an agent.
	// Returns ErrNotFound if no flow exists yet.
	Load(ctx context.Context, agentID string) (Document, error)

	// Create persists a new flow document and returns it with its
	// assigned id.
	Create(ctx context.Context, doc Document) (Document, error)

	// Update replaces the flow document with the given id.
	Update(ctx context.Context, id string, doc Document) (Document, error)

	// Delete removes the flow document with the given id.
	// Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases any resources (connections, files).
	Close() error
}

// AgentStore is the collaborator that keeps an agent's display name in
// sync with its flow. Rename failures must never block flow editing;
// callers surface them as warnings.
type AgentStore interface {
	Rename(ctx context.Context, agentID, name string) error
}

// SyncError wraps a failed storage operation with its context. Sync
// failures are recoverable and never corrupt the in-memory graph.
type SyncError struct {
	// Op is the operation that failed ("load", "create", "update",
	// "delete", "rename").
	Op string
	// AgentID is the agent involved, when known.
	AgentID string
	// FlowID is the flow document involved, when known.
	FlowID string
	// Status is the HTTP status code, when the transport is HTTP.
	Status int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	switch {
	case e.FlowID != "":
		return fmt.Sprintf("flow %s %s: %v", e.Op, e.FlowID, e.Err)
	case e.AgentID != "":
		return fmt.Sprintf("flow %s for agent %s: %v", e.Op, e.AgentID, e.Err)
	default:
		return fmt.Sprintf("flow %s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SyncError) Unwrap() error {
	return e.Err
}

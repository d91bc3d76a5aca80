package store

import (
	"context"
	"sync"

	"github.com/randalmurphal/convoflow/pkg/convoflow/ident"
)

// MemoryStore is an in-memory flow store for testing. Data is lost when
// the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	byAgent map[string]Document
	byID    map[string]string // flow id -> agent id
	closed  bool
}

// NewMemoryStore creates a new in-memory flow store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byAgent: make(map[string]Document),
		byID:    make(map[string]string),
	}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, agentID string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Document{}, ErrStoreClosed
	}

	doc, ok := m.byAgent[agentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Create implements Store. Ids are assigned locally.
func (m *MemoryStore) Create(_ context.Context, doc Document) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Document{}, ErrStoreClosed
	}

	if doc.ID == "" {
		doc.ID = ident.New()
	}
	m.byAgent[doc.AgentID] = doc
	m.byID[doc.ID] = doc.AgentID
	return doc, nil
}

// Update implements Store.
func (m *MemoryStore) Update(_ context.Context, id string, doc Document) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Document{}, ErrStoreClosed
	}

	agentID, ok := m.byID[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	doc.ID = id
	doc.AgentID = agentID
	m.byAgent[agentID] = doc
	return doc, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	if agentID, ok := m.byID[id]; ok {
		delete(m.byAgent, agentID)
		delete(m.byID, id)
	}
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.byAgent = nil
	m.byID = nil
	return nil
}

// Len returns the number of stored flows. Useful for testing.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byAgent)
}

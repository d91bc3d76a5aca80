package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/randalmurphal/convoflow/pkg/convoflow/ident"
)

// SQLiteStore persists flow documents to a local SQLite database, one
// document per agent. It serves offline use and backend validators that
// embed the engine without a network.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (and migrates) a SQLite flow store. The path
// should be a file path (e.g., "./flows.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS flows (
			id TEXT PRIMARY KEY,
			agent_id TEXT NOT NULL UNIQUE,
			document TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, agentID string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Document{}, ErrStoreClosed
	}

	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT document FROM flows WHERE agent_id = ?
	`, agentID).Scan(&raw)

	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, &SyncError{Op: "load", AgentID: agentID, Err: err}
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Document{}, &SyncError{Op: "load", AgentID: agentID, Err: fmt.Errorf("decode document: %w", err)}
	}
	return doc, nil
}

// Create implements Store. Ids are assigned locally. A second create
// for the same agent replaces the stored document (last write wins).
func (s *SQLiteStore) Create(ctx context.Context, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Document{}, ErrStoreClosed
	}

	if doc.ID == "" {
		doc.ID = ident.New()
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return Document{}, &SyncError{Op: "create", AgentID: doc.AgentID, Err: err}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO flows (id, agent_id, document, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(agent_id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`, doc.ID, doc.AgentID, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return Document{}, &SyncError{Op: "create", AgentID: doc.AgentID, Err: err}
	}

	return doc, nil
}

// Update implements Store.
func (s *SQLiteStore) Update(ctx context.Context, id string, doc Document) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Document{}, ErrStoreClosed
	}

	doc.ID = id
	raw, err := json.Marshal(doc)
	if err != nil {
		return Document{}, &SyncError{Op: "update", FlowID: id, Err: err}
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE flows SET document = ?, updated_at = ? WHERE id = ?
	`, string(raw), time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return Document{}, &SyncError{Op: "update", FlowID: id, Err: err}
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM flows WHERE id = ?`, id); err != nil {
		return &SyncError{Op: "delete", FlowID: id, Err: err}
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
	"github.com/randalmurphal/convoflow/pkg/convoflow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ store.Store = (*store.SQLiteStore)(nil)

func newSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "flows.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testDocument(t *testing.T, agentID string) store.Document {
	t.Helper()
	doc, err := store.ToDocument(
		convoflow.Initialize(),
		convoflow.DefaultMetadata(),
		convoflow.DefaultFlowName,
		agentID,
		"",
	)
	require.NoError(t, err)
	return doc
}

// TestSQLiteCreateAndLoad verifies the basic persist cycle.
func TestSQLiteCreateAndLoad(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	saved, err := s.Create(ctx, testDocument(t, "agent-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID, "create assigns an id")

	loaded, err := s.Load(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
	assert.Equal(t, convoflow.DefaultFlowName, loaded.Name)
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, "begin", loaded.Nodes[0].ID)
}

// TestSQLiteLoadNotFound verifies missing agents map to ErrNotFound.
func TestSQLiteLoadNotFound(t *testing.T) {
	s := newSQLiteStore(t)
	_, err := s.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestSQLiteCreateReplacesPerAgent verifies a second create for the
// same agent wins.
func TestSQLiteCreateReplacesPerAgent(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, testDocument(t, "agent-1"))
	require.NoError(t, err)

	doc2 := testDocument(t, "agent-1")
	doc2.Name = "Second"
	saved2, err := s.Create(ctx, doc2)
	require.NoError(t, err)

	loaded, err := s.Load(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "Second", loaded.Name)
	assert.Equal(t, saved2.ID, loaded.ID)
}

// TestSQLiteUpdate verifies update round trips and 404 semantics.
func TestSQLiteUpdate(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	saved, err := s.Create(ctx, testDocument(t, "agent-1"))
	require.NoError(t, err)

	saved.Name = "Renamed"
	updated, err := s.Update(ctx, saved.ID, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	loaded, err := s.Load(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name)

	_, err = s.Update(ctx, "missing-id", saved)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestSQLiteDelete verifies deletion and its idempotency.
func TestSQLiteDelete(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	saved, err := s.Create(ctx, testDocument(t, "agent-1"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, saved.ID))
	_, err = s.Load(ctx, "agent-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, s.Delete(ctx, saved.ID), "second delete is a no-op")
}

// TestSQLiteClosed verifies operations fail after Close.
func TestSQLiteClosed(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.Close())

	ctx := context.Background()
	_, err := s.Load(ctx, "agent-1")
	assert.ErrorIs(t, err, store.ErrStoreClosed)
	_, err = s.Create(ctx, store.Document{})
	assert.ErrorIs(t, err, store.ErrStoreClosed)
	_, err = s.Update(ctx, "x", store.Document{})
	assert.ErrorIs(t, err, store.ErrStoreClosed)
	assert.ErrorIs(t, s.Delete(ctx, "x"), store.ErrStoreClosed)

	assert.NoError(t, s.Close(), "double close is safe")
}

// TestSQLitePersistsAcrossReopen verifies documents survive reopening
// the database file.
func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flows.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	saved, err := s.Create(ctx, testDocument(t, "agent-1"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	loaded, err := s2.Load(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, loaded.ID)
}

package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/randalmurphal/convoflow/pkg/convoflow/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend spins up a minimal flow backend with one stored document.
func newBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, doc store.Document) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(map[string]store.Document{"flow": doc}))
}

// TestHTTPLoad verifies the GET path and envelope decoding.
func TestHTTPLoad(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/flows/agent-1", r.URL.Path)
		writeEnvelope(t, w, store.Document{ID: "flow-1", Name: "Support Line", AgentID: "agent-1"})
	})

	s := store.NewHTTPStore(srv.URL)
	doc, err := s.Load(context.Background(), "agent-1")
	require.NoError(t, err)
	assert.Equal(t, "flow-1", doc.ID)
	assert.Equal(t, "Support Line", doc.Name)
}

// TestHTTPLoadNotFound verifies 404 maps to ErrNotFound.
func TestHTTPLoadNotFound(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	s := store.NewHTTPStore(srv.URL)
	_, err := s.Load(context.Background(), "agent-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestHTTPLoadServerError verifies non-404 failures surface as
// SyncError with the status code.
func TestHTTPLoadServerError(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	s := store.NewHTTPStore(srv.URL)
	_, err := s.Load(context.Background(), "agent-1")
	require.Error(t, err)

	var syncErr *store.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "load", syncErr.Op)
	assert.Equal(t, "agent-1", syncErr.AgentID)
	assert.Equal(t, http.StatusInternalServerError, syncErr.Status)
}

// TestHTTPCreate verifies the POST path returns the assigned id.
func TestHTTPCreate(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/flows", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var doc store.Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		assert.Empty(t, doc.ID)
		doc.ID = "assigned-1"
		writeEnvelope(t, w, doc)
	})

	s := store.NewHTTPStore(srv.URL)
	saved, err := s.Create(context.Background(), store.Document{Name: "New Flow", AgentID: "agent-1"})
	require.NoError(t, err)
	assert.Equal(t, "assigned-1", saved.ID)
	assert.Equal(t, "New Flow", saved.Name)
}

// TestHTTPUpdate verifies the PUT path and 404 mapping.
func TestHTTPUpdate(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/flows/flow-1", r.URL.Path)

		var doc store.Document
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doc))
		assert.Equal(t, "flow-1", doc.ID, "id injected into the payload")
		writeEnvelope(t, w, doc)
	})

	s := store.NewHTTPStore(srv.URL)
	saved, err := s.Update(context.Background(), "flow-1", store.Document{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "flow-1", saved.ID)
	assert.Equal(t, "Renamed", saved.Name)
}

// TestHTTPUpdateNotFound verifies a vanished flow maps to ErrNotFound.
func TestHTTPUpdateNotFound(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	s := store.NewHTTPStore(srv.URL)
	_, err := s.Update(context.Background(), "flow-1", store.Document{})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// TestHTTPUpdateEmptyBody verifies backends that answer with an empty
// body echo the request document.
func TestHTTPUpdateEmptyBody(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	s := store.NewHTTPStore(srv.URL)
	saved, err := s.Update(context.Background(), "flow-1", store.Document{Name: "Kept"})
	require.NoError(t, err)
	assert.Equal(t, "flow-1", saved.ID)
	assert.Equal(t, "Kept", saved.Name)
}

// TestHTTPDelete verifies delete tolerates missing documents.
func TestHTTPDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/flows/flow-1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})
		s := store.NewHTTPStore(srv.URL)
		assert.NoError(t, s.Delete(context.Background(), "flow-1"))
	})

	t.Run("missing is not an error", func(t *testing.T) {
		srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		s := store.NewHTTPStore(srv.URL)
		assert.NoError(t, s.Delete(context.Background(), "flow-1"))
	})

	t.Run("server error", func(t *testing.T) {
		srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		s := store.NewHTTPStore(srv.URL)
		assert.Error(t, s.Delete(context.Background(), "flow-1"))
	})
}

// TestHTTPBaseURLTrailingSlash verifies trailing slashes are trimmed.
func TestHTTPBaseURLTrailingSlash(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flows/agent-1", r.URL.Path)
		writeEnvelope(t, w, store.Document{ID: "flow-1"})
	})

	s := store.NewHTTPStore(srv.URL + "/")
	_, err := s.Load(context.Background(), "agent-1")
	assert.NoError(t, err)
}

// TestHTTPContextCancellation verifies caller cancellation aborts the
// request.
func TestHTTPContextCancellation(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := store.NewHTTPStore(srv.URL)
	_, err := s.Load(ctx, "agent-1")
	assert.Error(t, err)
}

// TestHTTPAgentRename verifies the agent rename call shape.
func TestHTTPAgentRename(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/agents/agent-1", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"name": "Support Line"}, body)
		w.WriteHeader(http.StatusOK)
	})

	s := store.NewHTTPAgentStore(srv.URL)
	assert.NoError(t, s.Rename(context.Background(), "agent-1", "Support Line"))
}

// TestHTTPAgentRenameFailure verifies failures carry the rename op.
func TestHTTPAgentRenameFailure(t *testing.T) {
	srv := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	s := store.NewHTTPAgentStore(srv.URL)
	err := s.Rename(context.Background(), "agent-1", "x")
	require.Error(t, err)

	var syncErr *store.SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "rename", syncErr.Op)
	assert.Equal(t, http.StatusBadGateway, syncErr.Status)
}

// Interface conformance.
var (
	_ store.Store      = (*store.HTTPStore)(nil)
	_ store.AgentStore = (*store.HTTPAgentStore)(nil)
)

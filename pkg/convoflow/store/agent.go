package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HTTPAgentStore keeps agent records in sync over HTTP with partial
// updates: PUT {base}/agents/{agentId} with the changed fields.
type HTTPAgentStore struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPAgentStore creates an agent store for the backend at baseURL.
// Options are shared with NewHTTPStore.
func NewHTTPAgentStore(baseURL string, opts ...HTTPOption) *HTTPAgentStore {
	// Piggyback on HTTPStore options to keep construction uniform.
	inner := &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(inner)
	}
	return &HTTPAgentStore{baseURL: inner.baseURL, client: inner.client, logger: inner.logger}
}

// Rename implements AgentStore.
func (s *HTTPAgentStore) Rename(ctx context.Context, agentID, name string) error {
	payload, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return &SyncError{Op: "rename", AgentID: agentID, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		s.baseURL+"/agents/"+agentID, bytes.NewReader(payload))
	if err != nil {
		return &SyncError{Op: "rename", AgentID: agentID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &SyncError{Op: "rename", AgentID: agentID, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &SyncError{
			Op:      "rename",
			AgentID: agentID,
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("server returned %s", resp.Status),
		}
	}

	if s.logger != nil {
		s.logger.Debug("agent renamed", "agent_id", agentID, "name", name)
	}
	return nil
}

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

// HTTPStore talks to the flow storage backend over HTTP:
//
//	GET    {base}/flows/{agentId}   fetch, 404 when no flow exists
//	POST   {base}/flows             create, returns the assigned _id
//	PUT    {base}/flows/{id}        update
//	DELETE {base}/flows/{id}        delete
//
// Responses envelope the document as {"flow": {...}}. The store imposes
// no timeouts beyond the configured client's; cancellation comes from
// the caller's context.
type HTTPStore struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// HTTPOption configures an HTTPStore.
type HTTPOption func(*HTTPStore)

// WithHTTPClient sets the underlying HTTP client. Default: a client
// with a 15 second timeout.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPStore) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLogger sets the request logger. Default: no logging.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(s *HTTPStore) {
		s.logger = l
	}
}

// NewHTTPStore creates a store for the backend at baseURL.
func NewHTTPStore(baseURL string, opts ...HTTPOption) *HTTPStore {
	s := &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// flowEnvelope is the backend's response wrapper.
type flowEnvelope struct {
	Flow Document `json:"flow"`
}

// Load implements Store.
func (s *HTTPStore) Load(ctx context.Context, agentID string) (Document, error) {
	doc, status, err := s.do(ctx, http.MethodGet, s.baseURL+"/flows/"+agentID, nil)
	if status == http.StatusNotFound {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, &SyncError{Op: "load", AgentID: agentID, Status: status, Err: err}
	}
	s.log("flow loaded", "agent_id", agentID, "flow_id", doc.ID)
	return doc, nil
}

// Create implements Store.
func (s *HTTPStore) Create(ctx context.Context, doc Document) (Document, error) {
	saved, status, err := s.do(ctx, http.MethodPost, s.baseURL+"/flows", &doc)
	if err != nil {
		return Document{}, &SyncError{Op: "create", AgentID: doc.AgentID, Status: status, Err: err}
	}
	s.log("flow created", "agent_id", doc.AgentID, "flow_id", saved.ID)
	return saved, nil
}

// Update implements Store.
func (s *HTTPStore) Update(ctx context.Context, id string, doc Document) (Document, error) {
	doc.ID = id
	saved, status, err := s.do(ctx, http.MethodPut, s.baseURL+"/flows/"+id, &doc)
	if status == http.StatusNotFound {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, &SyncError{Op: "update", FlowID: id, Status: status, Err: err}
	}
	s.log("flow updated", "flow_id", id)
	return saved, nil
}

// Delete implements Store.
func (s *HTTPStore) Delete(ctx context.Context, id string) error {
	_, status, err := s.do(ctx, http.MethodDelete, s.baseURL+"/flows/"+id, nil)
	if status == http.StatusNotFound {
		return nil
	}
	if err != nil {
		return &SyncError{Op: "delete", FlowID: id, Status: status, Err: err}
	}
	s.log("flow deleted", "flow_id", id)
	return nil
}

// Close implements Store.
func (s *HTTPStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// do performs one request and decodes the enveloped document from the
// response, when present. It returns the HTTP status code alongside the
// error so callers can map 404s.
func (s *HTTPStore) do(ctx context.Context, method, url string, doc *Document) (Document, int, error) {
	var body io.Reader
	if doc != nil {
		payload, err := json.Marshal(doc)
		if err != nil {
			return Document{}, 0, fmt.Errorf("encode document: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return Document{}, 0, err
	}
	if doc != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Document{}, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Document{}, resp.StatusCode, fmt.Errorf("server returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		// Some backends answer updates/deletes with an empty body; echo
		// the request document back in that case.
		if doc != nil {
			return *doc, resp.StatusCode, nil
		}
		return Document{}, resp.StatusCode, nil
	}

	var env flowEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Document{}, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return env.Flow, resp.StatusCode, nil
}

func (s *HTTPStore) log(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, args...)
}

package designer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
	"github.com/randalmurphal/convoflow/pkg/convoflow/observability"
	"github.com/randalmurphal/convoflow/pkg/convoflow/store"
)

// ErrNotConversation indicates a transition command targeted a node
// that is not a conversation node.
var ErrNotConversation = errors.New("node is not a conversation node")

// Snapshot is one immutable view of the edit session. Readers (render
// passes, serializers) can hold a Snapshot while editing continues.
type Snapshot struct {
	Graph          convoflow.Graph
	Metadata       convoflow.Metadata
	FlowName       string
	FlowID         string
	AgentID        string
	SelectedNodeID string
}

// Subscriber receives a snapshot after every state transition.
type Subscriber func(Snapshot)

// Designer owns one agent's flow editing session: the graph snapshot,
// flow metadata, selection, and the load/save lifecycle against the
// storage collaborators.
//
// All mutations are synchronous commands that produce a new snapshot.
// Load and Save perform I/O and may run concurrently with editing; a
// result that arrives after the session has been reset is discarded
// instead of clobbering newer state.
type Designer struct {
	flows  store.Store
	agents store.AgentStore

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	mu          sync.Mutex
	generation  uint64
	snap        Snapshot
	subscribers map[int]Subscriber
	nextSub     int
}

// New creates a designer session for the given agent backed by the
// given flow store. The session starts with the default begin-only
// graph; call Load to hydrate persisted state.
func New(agentID string, flows store.Store, opts ...Option) *Designer {
	d := &Designer{
		flows:   flows,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		snap: Snapshot{
			Graph:    convoflow.Initialize(),
			Metadata: convoflow.DefaultMetadata(),
			FlowName: convoflow.DefaultFlowName,
			AgentID:  agentID,
		},
		subscribers: make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Snapshot returns the current state of the session.
func (d *Designer) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// Subscribe registers fn to be called with the new snapshot after every
// state transition. Returns an unsubscribe function. Subscribers are
// invoked outside the designer's lock and must not block for long.
func (d *Designer) Subscribe(fn Subscriber) func() {
	d.mu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subscribers[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.subscribers, id)
		d.mu.Unlock()
	}
}

// mutate applies fn to the current snapshot under the lock and notifies
// subscribers with the result.
func (d *Designer) mutate(fn func(Snapshot) Snapshot) {
	d.mu.Lock()
	d.snap = fn(d.snap)
	snap := d.snap
	subs := d.currentSubscribers()
	d.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (d *Designer) currentSubscribers() []Subscriber {
	subs := make([]Subscriber, 0, len(d.subscribers))
	for _, fn := range d.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

// AddNode adds a node of the given kind and selects nothing. Returns
// the new node's id.
func (d *Designer) AddNode(kind convoflow.NodeKind) (string, error) {
	var nodeID string
	var addErr error
	d.mutate(func(s Snapshot) Snapshot {
		g, id, err := s.Graph.AddNode(kind)
		if err != nil {
			addErr = err
			return s
		}
		nodeID = id
		s.Graph = g
		return s
	})
	return nodeID, addErr
}

// DeleteNode removes a node, cascading its edges. If the node was
// selected, the selection is cleared. Unknown ids are a no-op.
func (d *Designer) DeleteNode(id string) {
	d.mutate(func(s Snapshot) Snapshot {
		s.Graph = s.Graph.DeleteNode(id)
		if s.SelectedNodeID == id {
			s.SelectedNodeID = ""
		}
		return s
	})
}

// Connect adds an edge for the connection; duplicates of the identical
// handle tuple are silently ignored.
func (d *Designer) Connect(c convoflow.Connection) {
	d.mutate(func(s Snapshot) Snapshot {
		s.Graph = s.Graph.Connect(c)
		return s
	})
}

// UpdateNodeData replaces a node's payload wholesale.
func (d *Designer) UpdateNodeData(id string, data convoflow.NodeData) {
	d.mutate(func(s Snapshot) Snapshot {
		s.Graph = s.Graph.UpdateNodeData(id, data)
		return s
	})
}

// ApplyNodeChanges absorbs a batch of canvas-driven node changes.
func (d *Designer) ApplyNodeChanges(changes []convoflow.NodeChange) {
	d.mutate(func(s Snapshot) Snapshot {
		s.Graph = convoflow.ApplyNodeChanges(s.Graph, changes)
		if s.SelectedNodeID != "" {
			if _, ok := s.Graph.Node(s.SelectedNodeID); !ok {
				s.SelectedNodeID = ""
			}
		}
		return s
	})
}

// ApplyEdgeChanges absorbs a batch of canvas-driven edge changes.
func (d *Designer) ApplyEdgeChanges(changes []convoflow.EdgeChange) {
	d.mutate(func(s Snapshot) Snapshot {
		s.Graph = convoflow.ApplyEdgeChanges(s.Graph, changes)
		return s
	})
}

// Select marks a node as the target of the property panel. Selecting a
// node that is not in the graph fails with convoflow.ErrNodeNotFound.
func (d *Designer) Select(id string) error {
	var selErr error
	d.mutate(func(s Snapshot) Snapshot {
		if _, ok := s.Graph.Node(id); !ok {
			selErr = fmt.Errorf("%w: %s", convoflow.ErrNodeNotFound, id)
			return s
		}
		s.SelectedNodeID = id
		return s
	})
	return selErr
}

// ClearSelection deselects any selected node.
func (d *Designer) ClearSelection() {
	d.mutate(func(s Snapshot) Snapshot {
		s.SelectedNodeID = ""
		return s
	})
}

// SetMetadata replaces the flow metadata.
func (d *Designer) SetMetadata(meta convoflow.Metadata) {
	d.mutate(func(s Snapshot) Snapshot {
		s.Metadata = meta
		return s
	})
}

// SetName renames the flow and, when an agent store is configured,
// best-effort renames the agent to match. A failed agent rename is
// logged as a warning and never fails the command.
func (d *Designer) SetName(ctx context.Context, name string) {
	d.mutate(func(s Snapshot) Snapshot {
		s.FlowName = name
		return s
	})

	if d.agents == nil {
		return
	}
	agentID := d.Snapshot().AgentID
	if err := d.agents.Rename(ctx, agentID, name); err != nil {
		observability.LogAgentRenameFailed(d.logger, agentID, err)
		d.metrics.RecordSyncError(ctx, "rename")
	}
}

// Reset restores the default graph, metadata, and selection while
// keeping the flow id, so the next save updates the same document. The
// session generation advances: in-flight load/save results are
// discarded.
func (d *Designer) Reset() {
	d.mutate(func(s Snapshot) Snapshot {
		d.generation++
		s.Graph = convoflow.Initialize()
		s.Metadata = convoflow.DefaultMetadata()
		s.FlowName = convoflow.UntitledFlowName
		s.SelectedNodeID = ""
		return s
	})
}

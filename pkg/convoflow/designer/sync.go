package designer

import (
	"context"
	"errors"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
	"github.com/randalmurphal/convoflow/pkg/convoflow/observability"
	"github.com/randalmurphal/convoflow/pkg/convoflow/store"
)

// Load hydrates the session from the flow store.
//
// When no flow is persisted yet (store.ErrNotFound), Load bootstraps:
// it synthesizes the default begin-only document and immediately
// create-saves it. If that save also fails the session falls back to an
// in-memory default document and Load returns nil with a logged
// warning; editing proceeds, the next explicit Save retries the create.
//
// Any other storage failure is returned to the caller and leaves the
// session state untouched. A result arriving after the session has been
// reset is discarded rather than applied to stale state.
func (d *Designer) Load(ctx context.Context) error {
	d.mu.Lock()
	gen := d.generation
	agentID := d.snap.AgentID
	name := d.snap.FlowName
	d.mu.Unlock()

	ctx, span := d.spans.StartLoadSpan(ctx, agentID)
	done := observability.TimedOperation()

	doc, err := d.flows.Load(ctx, agentID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		doc, err = d.bootstrap(ctx, agentID, name)
		if err != nil {
			d.spans.EndSpanWithError(span, err)
			d.metrics.RecordLoad(ctx, false, 0)
			return err
		}
	case err != nil:
		d.spans.EndSpanWithError(span, err)
		d.metrics.RecordLoad(ctx, false, 0)
		d.metrics.RecordSyncError(ctx, "load")
		observability.LogSyncError(d.logger, "load", agentID, err)
		return err
	}

	g, meta, err := store.FromDocument(doc)
	if err != nil {
		d.spans.EndSpanWithError(span, err)
		d.metrics.RecordLoad(ctx, false, 0)
		return err
	}

	applied := d.apply(gen, func(s Snapshot) Snapshot {
		s.Graph = g
		s.Metadata = meta
		if doc.Name != "" {
			s.FlowName = doc.Name
		} else {
			s.FlowName = convoflow.UntitledFlowName
		}
		s.FlowID = doc.ID
		s.SelectedNodeID = "" // selection never survives a reload
		return s
	})
	if !applied {
		observability.LogStaleResult(d.logger, "load", agentID)
		d.spans.EndSpanWithError(span, nil)
		return nil
	}

	d.spans.EndSpanWithError(span, nil)
	d.metrics.RecordLoad(ctx, true, elapsed(done))
	observability.LogFlowLoaded(d.logger, agentID, doc.ID, len(g.Nodes), len(g.Edges), done())
	return nil
}

// bootstrap builds the default document for an agent with no persisted
// flow and attempts to create-save it. A failed create degrades to the
// in-memory document with an empty flow id.
func (d *Designer) bootstrap(ctx context.Context, agentID, name string) (store.Document, error) {
	observability.LogBootstrap(d.logger, agentID)

	doc, err := store.ToDocument(
		convoflow.Initialize(),
		convoflow.DefaultMetadata(),
		name,
		agentID,
		"",
	)
	if err != nil {
		return store.Document{}, err
	}

	saved, err := d.flows.Create(ctx, doc)
	if err != nil {
		d.metrics.RecordSyncError(ctx, "create")
		observability.LogSyncError(d.logger, "create", agentID, err)
		// Non-fatal: continue with the unsaved default document.
		return doc, nil
	}
	return saved, nil
}

// Save pushes the current snapshot to the flow store: create when the
// flow has no id yet, update otherwise. On create the server-assigned
// id is adopted. Failures are returned as store.SyncError values and
// never touch the in-memory state.
func (d *Designer) Save(ctx context.Context) error {
	d.mu.Lock()
	gen := d.generation
	snap := d.snap
	d.mu.Unlock()

	doc, err := store.ToDocument(snap.Graph, snap.Metadata, snap.FlowName, snap.AgentID, snap.FlowID)
	if err != nil {
		return err
	}

	op := "update"
	if snap.FlowID == "" {
		op = "create"
	}

	ctx, span := d.spans.StartSaveSpan(ctx, snap.FlowID, op)
	done := observability.TimedOperation()

	var saved store.Document
	if op == "create" {
		saved, err = d.flows.Create(ctx, doc)
	} else {
		saved, err = d.flows.Update(ctx, snap.FlowID, doc)
	}
	if err != nil {
		d.spans.EndSpanWithError(span, err)
		d.metrics.RecordSave(ctx, op, false, elapsed(done))
		d.metrics.RecordSyncError(ctx, op)
		observability.LogSyncError(d.logger, op, snap.AgentID, err)
		return err
	}

	applied := d.apply(gen, func(s Snapshot) Snapshot {
		s.FlowID = saved.ID
		return s
	})
	if !applied {
		observability.LogStaleResult(d.logger, op, snap.AgentID)
	}

	d.spans.EndSpanWithError(span, nil)
	d.metrics.RecordSave(ctx, op, true, elapsed(done))
	d.metrics.RecordGraphSize(ctx, len(snap.Graph.Nodes), len(snap.Graph.Edges))
	observability.LogFlowSaved(d.logger, op, saved.ID, done())
	return nil
}

// apply installs a state transition only if the session generation has
// not advanced since gen was read. Returns whether it was applied.
func (d *Designer) apply(gen uint64, fn func(Snapshot) Snapshot) bool {
	d.mu.Lock()
	if d.generation != gen {
		d.mu.Unlock()
		return false
	}
	d.snap = fn(d.snap)
	snap := d.snap
	subs := d.currentSubscribers()
	d.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return true
}

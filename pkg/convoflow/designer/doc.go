/*
Package designer runs one agent's flow editing session.

# Overview

A Designer wraps the pure graph model with the transient state an
editor needs: the current snapshot, flow metadata and name, the
selected node, and the explicit load/save lifecycle against the storage
collaborators. Commands go in, immutable snapshots come out; the UI
subscribes to snapshots instead of holding callbacks inside node data.

	d := designer.New(agentID, store.NewHTTPStore(baseURL),
	    designer.WithLogger(logger),
	    designer.WithAgentStore(store.NewHTTPAgentStore(baseURL)),
	)

	unsubscribe := d.Subscribe(func(s designer.Snapshot) {
	    render(s)
	})
	defer unsubscribe()

	if err := d.Load(ctx); err != nil {
	    // recoverable: the session stays editable
	}

	id, _ := d.AddNode(convoflow.KindConversation)
	_ = d.AddTransition(id, transition.Equation)

	if err := d.Save(ctx); err != nil {
	    // surface as a dismissible notification; nothing was rolled back
	}

# Failure Semantics

Storage failures never corrupt the session: Save returns the error and
leaves the snapshot untouched, Load on a missing flow bootstraps a
default document, and a failed bootstrap save degrades to an in-memory
document. Agent renames triggered by SetName are best-effort and only
warn. Load/save results that arrive after Reset are discarded.
*/
package designer

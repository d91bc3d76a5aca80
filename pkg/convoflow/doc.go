/*
Package convoflow provides the data model for conversational flow graphs.

# Overview

convoflow is a Go library for building, editing, and persisting the
dialogue graphs behind conversation-flow agents. A graph is a set of
typed nodes (begin, conversation, function, logic split, ending) joined
by edges between named handles. Conversation nodes carry an ordered list
of transitions, each gated by a free-text prompt condition or a
structured equation condition.

The library is the engine behind a visual flow designer, but it has no
UI dependencies: any front end (or a backend validator) can embed it.

Design principles:
  - Pure snapshot semantics: every mutation returns a new Graph value,
    never mutates in place, so a snapshot handed to a render pass stays
    consistent while editing continues.
  - Commands over callbacks: transition editing goes through explicit
    operations in the transition subpackage, not closures stored inside
    node data.
  - No implicit I/O: only the store subpackage talks to storage, and
    only when explicitly invoked.

# Basic Usage

Build a graph and connect nodes:

	g := convoflow.Initialize()

	g, convID, err := g.AddNode(convoflow.KindConversation)
	if err != nil {
	    log.Fatal(err)
	}
	g, endID, _ := g.AddNode(convoflow.KindEnding)

	g = g.Connect(convoflow.Connection{
	    Source:       convID,
	    SourceHandle: convoflow.TransitionHandle(0),
	    Target:       endID,
	})

Connect is idempotent: repeating the same (source, sourceHandle, target,
targetHandle) tuple leaves the edge set unchanged. DeleteNode cascades,
removing every edge that touches the deleted node, and is a no-op for
unknown ids.

# Node Data

Each node kind owns a distinct payload type implementing NodeData.
UpdateNodeData replaces the payload wholesale; callers merge fields they
want to keep. Conversation payloads embed transitions, edited with the
transition subpackage:

	n, _ := g.Node(convID)
	data := n.Data.(convoflow.ConversationData)
	data.Transitions = transition.Add(data.Transitions, transition.Equation)
	g = g.UpdateNodeData(convID, data)

# Validation

Mutation operations enforce only local invariants. Validate performs an
advisory structural check (begin node present, edge endpoints exist,
logic-split else targets resolve) and logs unreachable nodes:

	if err := convoflow.Validate(g); err != nil {
	    log.Println("graph has problems:", err)
	}

A graph without a begin node is still editable; it is only rejected by
Validate, which callers run before handing a flow to an executor.

# Subpackages

  - ident: collision-resistant short identifiers for nodes and flows
  - transition: transition/condition model and label rendering
  - expr: condition string evaluation for logic splits and equations
  - store: flow document codec and storage collaborators (HTTP, SQLite, memory)
  - designer: edit-session controller (selection, load/save, subscriptions)
  - config: YAML/env configuration
  - observability: structured logging, OTel metrics and tracing helpers
*/
package convoflow

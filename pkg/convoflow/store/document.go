package store

import (
	"encoding/json"
	"fmt"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
)

// Document is the persisted unit: graph, metadata, and display name for
// one agent's flow, in the exact wire layout of the storage backend.
type Document struct {
	// ID is assigned by the backend on first save.
	ID       string             `json:"_id,omitempty"`
	Name     string             `json:"name"`
	Nodes    []DocumentNode     `json:"nodes"`
	Edges    []DocumentEdge     `json:"edges"`
	Metadata convoflow.Metadata `json:"metadata"`
	AgentID  string             `json:"agentId"`
}

// DocumentNode is the wire form of a node. Data is decoded per the
// Type tag when hydrating.
type DocumentNode struct {
	ID       string              `json:"id"`
	Type     string              `json:"type"`
	Position *convoflow.Position `json:"position"`
	Data     json.RawMessage     `json:"data"`
}

// DocumentEdge is the wire form of an edge. Handles are null when the
// connection uses a node's default handle.
type DocumentEdge struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	SourceHandle *string `json:"sourceHandle"`
	Target       string  `json:"target"`
	TargetHandle *string `json:"targetHandle"`
}

// fallbackPosition is used when a persisted node carries no usable
// position.
var fallbackPosition = convoflow.Position{X: 100, Y: 100}

// ToDocument maps an in-memory graph to its persisted form. Pure: no
// network, no mutation of the graph.
func ToDocument(g convoflow.Graph, meta convoflow.Metadata, name, agentID, flowID string) (Document, error) {
	nodes := make([]DocumentNode, len(g.Nodes))
	for i, n := range g.Nodes {
		raw, err := json.Marshal(n.Data)
		if err != nil {
			return Document{}, fmt.Errorf("encode node %s data: %w", n.ID, err)
		}
		pos := n.Position
		nodes[i] = DocumentNode{
			ID:       n.ID,
			Type:     string(n.Kind),
			Position: &pos,
			Data:     raw,
		}
	}

	edges := make([]DocumentEdge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = DocumentEdge{
			ID:           e.ID,
			Source:       e.Source,
			SourceHandle: handleOrNull(e.SourceHandle),
			Target:       e.Target,
			TargetHandle: handleOrNull(e.TargetHandle),
		}
	}

	return Document{
		ID:       flowID,
		Name:     name,
		Nodes:    nodes,
		Edges:    edges,
		Metadata: meta,
		AgentID:  agentID,
	}, nil
}

// FromDocument hydrates a graph and metadata from a persisted document.
// A document with no nodes hydrates to the default begin-only graph;
// empty metadata hydrates to the defaults; nodes without a usable
// position land at a fixed fallback spot. An unknown node type tag
// fails with an error wrapping convoflow.ErrInvalidNodeKind.
func FromDocument(doc Document) (convoflow.Graph, convoflow.Metadata, error) {
	meta := doc.Metadata
	if meta.IsZero() {
		meta = convoflow.DefaultMetadata()
	}

	if len(doc.Nodes) == 0 {
		return convoflow.Initialize(), meta, nil
	}

	g := convoflow.Graph{
		Nodes: make([]convoflow.Node, len(doc.Nodes)),
		Edges: make([]convoflow.Edge, len(doc.Edges)),
	}

	for i, dn := range doc.Nodes {
		data, err := decodeData(dn.Type, dn.Data)
		if err != nil {
			return convoflow.Graph{}, meta, fmt.Errorf("node %s: %w", dn.ID, err)
		}
		pos := fallbackPosition
		if dn.Position != nil {
			pos = *dn.Position
		}
		g.Nodes[i] = convoflow.Node{
			ID:       dn.ID,
			Kind:     convoflow.NodeKind(dn.Type),
			Position: pos,
			Data:     data,
		}
	}

	for i, de := range doc.Edges {
		g.Edges[i] = convoflow.Edge{
			ID:           de.ID,
			Source:       de.Source,
			SourceHandle: handleValue(de.SourceHandle),
			Target:       de.Target,
			TargetHandle: handleValue(de.TargetHandle),
		}
	}

	return g, meta, nil
}

// decodeData unmarshals a node payload per its type tag. A missing or
// empty payload decodes to the zero payload of the kind.
func decodeData(typ string, raw json.RawMessage) (convoflow.NodeData, error) {
	unmarshal := func(v any) error {
		if len(raw) == 0 || string(raw) == "null" {
			return nil
		}
		return json.Unmarshal(raw, v)
	}

	switch convoflow.NodeKind(typ) {
	case convoflow.KindBegin:
		return convoflow.BeginData{}, nil
	case convoflow.KindConversation:
		var data convoflow.ConversationData
		if err := unmarshal(&data); err != nil {
			return nil, fmt.Errorf("decode conversation data: %w", err)
		}
		return data, nil
	case convoflow.KindFunction:
		var data convoflow.FunctionData
		if err := unmarshal(&data); err != nil {
			return nil, fmt.Errorf("decode function data: %w", err)
		}
		return data, nil
	case convoflow.KindLogicSplit:
		var data convoflow.LogicSplitData
		if err := unmarshal(&data); err != nil {
			return nil, fmt.Errorf("decode logic split data: %w", err)
		}
		return data, nil
	case convoflow.KindEnding:
		var data convoflow.EndingData
		if err := unmarshal(&data); err != nil {
			return nil, fmt.Errorf("decode ending data: %w", err)
		}
		return data, nil
	default:
		return nil, &convoflow.KindError{Kind: typ}
	}
}

func handleOrNull(h string) *string {
	if h == "" {
		return nil
	}
	return &h
}

func handleValue(h *string) string {
	if h == nil {
		return ""
	}
	return *h
}

package convoflow

import (
	"math/rand"

	"github.com/randalmurphal/convoflow/pkg/convoflow/ident"
)

// Graph is an immutable snapshot of the flow graph. Mutation methods
// return a new snapshot and never modify the receiver, so a snapshot
// handed to a concurrent reader stays consistent.
//
// Node payloads are treated as values: operations replace whole nodes
// rather than mutating payloads in place. Callers must do the same
// (see UpdateNodeData).
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// BeginNodeID is the id of the begin node created by Initialize.
const BeginNodeID = "begin"

// beginPosition is where Initialize places the begin node.
var beginPosition = Position{X: 100, Y: 60}

// Initialize returns the default graph: a single begin node and no edges.
func Initialize() Graph {
	return Graph{
		Nodes: []Node{{
			ID:       BeginNodeID,
			Kind:     KindBegin,
			Position: beginPosition,
			Data:     BeginData{},
		}},
	}
}

// Node returns the node with the given id, if present.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// AddNode adds a node of the given kind with its default payload and a
// pseudo-random position inside the default viewport region. It returns
// the new snapshot and the generated node id.
//
// Fails only when kind is unrecognized (ErrInvalidNodeKind).
func (g Graph) AddNode(kind NodeKind) (Graph, string, error) {
	data, err := DefaultData(kind)
	if err != nil {
		return g, "", err
	}

	n := Node{
		ID:       ident.New(),
		Kind:     kind,
		Position: randomPosition(),
		Data:     data,
	}

	out := g
	out.Nodes = append(copyNodes(g.Nodes), n)
	return out, n.ID, nil
}

// DeleteNode removes the node and cascades: every edge whose source or
// target is the deleted node is removed as well. Deleting an id that is
// not in the graph returns the snapshot unchanged.
func (g Graph) DeleteNode(id string) Graph {
	if _, ok := g.Node(id); !ok {
		return g
	}

	nodes := make([]Node, 0, len(g.Nodes)-1)
	for _, n := range g.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}

	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			edges = append(edges, e)
		}
	}

	return Graph{Nodes: nodes, Edges: edges}
}

// UpdateNodeData replaces the node's payload wholesale. There is no
// partial merge: callers supply the complete payload, carrying over any
// fields they do not intend to clear. Updating an id that is not in the
// graph returns the snapshot unchanged.
func (g Graph) UpdateNodeData(id string, data NodeData) Graph {
	idx := -1
	for i, n := range g.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return g
	}

	nodes := copyNodes(g.Nodes)
	nodes[idx].Data = data

	out := g
	out.Nodes = nodes
	return out
}

// randomPosition picks a spot inside the default viewport region for a
// freshly added node. Purely cosmetic.
func randomPosition() Position {
	return Position{
		X: 250 + rand.Float64()*80,
		Y: 100 + rand.Float64()*200,
	}
}

func copyNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

func copyEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

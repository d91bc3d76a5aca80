package convoflow

// Incremental change records absorb interactive canvas operations
// (drags, rubber-band selection, keyboard deletes) as a batch. Applying
// changes is pure: the input snapshot is untouched.

// NodeChangeType enumerates the supported node change records.
type NodeChangeType string

// Node change types.
const (
	NodeChangePosition NodeChangeType = "position"
	NodeChangeSelect   NodeChangeType = "select"
	NodeChangeRemove   NodeChangeType = "remove"
)

// NodeChange is one incremental change to a node.
type NodeChange struct {
	Type NodeChangeType
	ID   string
	// Position is consulted for position changes only.
	Position Position
	// Selected is consulted for select changes only.
	Selected bool
}

// EdgeChangeType enumerates the supported edge change records.
type EdgeChangeType string

// Edge change types.
const (
	EdgeChangeSelect EdgeChangeType = "select"
	EdgeChangeRemove EdgeChangeType = "remove"
)

// EdgeChange is one incremental change to an edge.
type EdgeChange struct {
	Type EdgeChangeType
	ID   string
	// Selected is consulted for select changes only.
	Selected bool
}

// ApplyNodeChanges applies a batch of node changes in order and returns
// the resulting snapshot. Removals cascade edges exactly like
// DeleteNode. Changes referencing unknown ids are skipped.
func ApplyNodeChanges(g Graph, changes []NodeChange) Graph {
	out := g
	for _, ch := range changes {
		switch ch.Type {
		case NodeChangePosition:
			out = updateNode(out, ch.ID, func(n Node) Node {
				n.Position = ch.Position
				return n
			})
		case NodeChangeSelect:
			out = updateNode(out, ch.ID, func(n Node) Node {
				n.Selected = ch.Selected
				return n
			})
		case NodeChangeRemove:
			out = out.DeleteNode(ch.ID)
		}
	}
	return out
}

// ApplyEdgeChanges applies a batch of edge changes in order and returns
// the resulting snapshot. Changes referencing unknown ids are skipped.
func ApplyEdgeChanges(g Graph, changes []EdgeChange) Graph {
	out := g
	for _, ch := range changes {
		switch ch.Type {
		case EdgeChangeSelect:
			out = updateEdge(out, ch.ID, func(e Edge) Edge {
				e.Selected = ch.Selected
				return e
			})
		case EdgeChangeRemove:
			out = removeEdge(out, ch.ID)
		}
	}
	return out
}

func updateNode(g Graph, id string, fn func(Node) Node) Graph {
	for i, n := range g.Nodes {
		if n.ID == id {
			nodes := copyNodes(g.Nodes)
			nodes[i] = fn(n)
			g.Nodes = nodes
			return g
		}
	}
	return g
}

func updateEdge(g Graph, id string, fn func(Edge) Edge) Graph {
	for i, e := range g.Edges {
		if e.ID == id {
			edges := copyEdges(g.Edges)
			edges[i] = fn(e)
			g.Edges = edges
			return g
		}
	}
	return g
}

func removeEdge(g Graph, id string) Graph {
	for i, e := range g.Edges {
		if e.ID == id {
			edges := make([]Edge, 0, len(g.Edges)-1)
			edges = append(edges, g.Edges[:i]...)
			edges = append(edges, g.Edges[i+1:]...)
			g.Edges = edges
			return g
		}
	}
	return g
}

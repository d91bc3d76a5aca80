package convoflow

import "fmt"

// Edge is a directed connection from a source node's output handle to a
// target node's input handle. Handles disambiguate multiple connection
// points on one node; an empty handle means the node's default
// (unnamed) handle and is persisted as null.
type Edge struct {
	ID           string
	Source       string
	SourceHandle string
	Target       string
	TargetHandle string
	// Selected is a transient UI flag. It is never persisted.
	Selected bool
}

// Connection identifies an edge by its endpoints. The edge id is
// derived from the full tuple, which makes duplicate detection exact.
type Connection struct {
	Source       string
	SourceHandle string
	Target       string
	TargetHandle string
}

// EdgeID derives the deterministic edge id for a connection. Empty
// handles contribute the literal "default" so the id stays readable.
func EdgeID(c Connection) string {
	sh := c.SourceHandle
	if sh == "" {
		sh = "default"
	}
	th := c.TargetHandle
	if th == "" {
		th = "default"
	}
	return fmt.Sprintf("e-%s-%s-%s-%s", c.Source, sh, c.Target, th)
}

// Connect adds an edge for the connection unless an edge with the
// identical (source, sourceHandle, target, targetHandle) tuple already
// exists, in which case the snapshot is returned unchanged. Connecting
// a node to itself is permitted.
func (g Graph) Connect(c Connection) Graph {
	for _, e := range g.Edges {
		if e.Source == c.Source && e.SourceHandle == c.SourceHandle &&
			e.Target == c.Target && e.TargetHandle == c.TargetHandle {
			return g
		}
	}

	out := g
	out.Edges = append(copyEdges(g.Edges), Edge{
		ID:           EdgeID(c),
		Source:       c.Source,
		SourceHandle: c.SourceHandle,
		Target:       c.Target,
		TargetHandle: c.TargetHandle,
	})
	return out
}

// Handle naming. Conversation nodes expose one output handle per
// transition, named by the transition's position; edges therefore bind
// to transitions by index. Deleting a transition does not renumber the
// handles of the edges that remain (see the package notes in
// transition.Remove).

// TransitionHandle returns the output handle name for the transition at
// index i on a conversation node.
func TransitionHandle(i int) string {
	return fmt.Sprintf("edge-%d", i)
}

// BeginSourceHandle is the output handle of a begin node.
const BeginSourceHandle = "begin-source"

// TargetHandle returns the input handle name of a conversation node.
func TargetHandle(nodeID string) string {
	return "target-handle-" + nodeID
}

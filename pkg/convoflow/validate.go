package convoflow

import (
	"errors"
	"fmt"
	"log/slog"
)

// Validate performs an advisory structural check of the graph and
// returns all problems joined together. Mutation operations never call
// it; run it before handing a flow to an executor.
//
// Checks:
//  1. A begin node exists
//  2. Every edge source and target references an existing node
//  3. Every non-empty logic-split else target references an existing node
//
// Nodes unreachable from the begin node are logged as warnings but do
// not make validation fail: disconnected work-in-progress is normal in
// an editor. More than one begin node is also only a warning.
func Validate(g Graph) error {
	var errs []error

	ids := make(map[string]bool, len(g.Nodes))
	begins := 0
	for _, n := range g.Nodes {
		ids[n.ID] = true
		if n.Kind == KindBegin {
			begins++
		}
	}

	if begins == 0 {
		errs = append(errs, ErrNoBeginNode)
	} else if begins > 1 {
		slog.Warn("graph has multiple begin nodes", "count", begins)
	}

	for _, e := range g.Edges {
		if !ids[e.Source] {
			errs = append(errs, fmt.Errorf("%w: edge %q source %q does not exist", ErrNodeNotFound, e.ID, e.Source))
		}
		if !ids[e.Target] {
			errs = append(errs, fmt.Errorf("%w: edge %q target %q does not exist", ErrNodeNotFound, e.ID, e.Target))
		}
	}

	for _, n := range g.Nodes {
		data, ok := n.Data.(LogicSplitData)
		if !ok {
			continue
		}
		if data.ElseTarget != "" && !ids[data.ElseTarget] {
			errs = append(errs, fmt.Errorf("%w: logic split %q else target %q does not exist", ErrNodeNotFound, n.ID, data.ElseTarget))
		}
	}

	warnUnreachableNodes(g)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// warnUnreachableNodes logs a warning for every node that cannot be
// reached from a begin node by following edges. Logic-split else
// targets count as edges for reachability.
func warnUnreachableNodes(g Graph) {
	reachable := findReachableNodes(g)
	if reachable == nil {
		return
	}
	for _, n := range g.Nodes {
		if !reachable[n.ID] {
			slog.Warn("node is unreachable from begin", "node_id", n.ID, "kind", string(n.Kind))
		}
	}
}

// findReachableNodes returns the set of node ids reachable from any
// begin node, or nil when the graph has no begin node.
func findReachableNodes(g Graph) map[string]bool {
	succ := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		succ[e.Source] = append(succ[e.Source], e.Target)
	}
	for _, n := range g.Nodes {
		if data, ok := n.Data.(LogicSplitData); ok && data.ElseTarget != "" {
			succ[n.ID] = append(succ[n.ID], data.ElseTarget)
		}
	}

	var queue []string
	reachable := make(map[string]bool)
	for _, n := range g.Nodes {
		if n.Kind == KindBegin {
			queue = append(queue, n.ID)
			reachable[n.ID] = true
		}
	}
	if len(queue) == 0 {
		return nil
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range succ[current] {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}
	return reachable
}

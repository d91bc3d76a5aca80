package designer

import (
	"fmt"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
	"github.com/randalmurphal/convoflow/pkg/convoflow/transition"
)

// Transition commands. Each resolves the conversation node, applies the
// copy-on-write operation from the transition package, and installs the
// result as the node's new payload. Targeting a missing node fails with
// convoflow.ErrNodeNotFound; targeting a non-conversation node fails
// with ErrNotConversation.

// AddTransition appends a transition of the given kind to a
// conversation node.
func (d *Designer) AddTransition(nodeID string, kind transition.Kind) error {
	return d.editTransitions(nodeID, func(ts []transition.Transition) ([]transition.Transition, error) {
		return transition.Add(ts, kind), nil
	})
}

// RemoveTransition deletes the transition at index i. Edges bound to
// later transitions keep their old positional handles; the caller
// decides whether to reconcile them (see transition.Remove).
func (d *Designer) RemoveTransition(nodeID string, i int) error {
	return d.editTransitions(nodeID, func(ts []transition.Transition) ([]transition.Transition, error) {
		return transition.Remove(ts, i)
	})
}

// SetTransitionLabel sets the prompt condition text of transition i.
func (d *Designer) SetTransitionLabel(nodeID string, i int, label string) error {
	return d.editTransitions(nodeID, func(ts []transition.Transition) ([]transition.Transition, error) {
		return transition.SetLabel(ts, i, label)
	})
}

// SetConditionMode sets the all/any combination mode of equation
// transition i.
func (d *Designer) SetConditionMode(nodeID string, i int, mode transition.Mode) error {
	return d.editTransitions(nodeID, func(ts []transition.Transition) ([]transition.Transition, error) {
		return transition.SetMode(ts, i, mode)
	})
}

// AddCondition appends an empty condition to equation transition i.
func (d *Designer) AddCondition(nodeID string, i int) error {
	return d.editTransitions(nodeID, func(ts []transition.Transition) ([]transition.Transition, error) {
		return transition.AddCondition(ts, i)
	})
}

// UpdateCondition replaces condition j of equation transition i.
func (d *Designer) UpdateCondition(nodeID string, i, j int, cond transition.Condition) error {
	return d.editTransitions(nodeID, func(ts []transition.Transition) ([]transition.Transition, error) {
		return transition.UpdateCondition(ts, i, j, cond)
	})
}

// RemoveCondition deletes condition j of equation transition i.
func (d *Designer) RemoveCondition(nodeID string, i, j int) error {
	return d.editTransitions(nodeID, func(ts []transition.Transition) ([]transition.Transition, error) {
		return transition.RemoveCondition(ts, i, j)
	})
}

func (d *Designer) editTransitions(nodeID string, fn func([]transition.Transition) ([]transition.Transition, error)) error {
	var opErr error
	d.mutate(func(s Snapshot) Snapshot {
		n, ok := s.Graph.Node(nodeID)
		if !ok {
			opErr = fmt.Errorf("%w: %s", convoflow.ErrNodeNotFound, nodeID)
			return s
		}
		data, ok := n.Data.(convoflow.ConversationData)
		if !ok {
			opErr = fmt.Errorf("%w: %s is a %s node", ErrNotConversation, nodeID, n.Kind)
			return s
		}
		ts, err := fn(data.Transitions)
		if err != nil {
			opErr = err
			return s
		}
		data.Transitions = ts
		s.Graph = s.Graph.UpdateNodeData(nodeID, data)
		return s
	})
	return opErr
}

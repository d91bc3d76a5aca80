// Package transition models the outgoing branches of a conversation
// node: an ordered list of transitions, each gated by a free-text
// prompt condition or a structured equation condition.
//
// All operations are copy-on-write over []Transition. The input slice
// is never mutated, so transition lists can be shared between graph
// snapshots safely. The graph model applies the result via
// UpdateNodeData.
//
// Ordering is significant: consumers evaluate transitions first-match
// wins. Edges bind to transitions positionally through handle names
// ("edge-0", "edge-1", ...). Remove deliberately does not renumber
// surviving transitions' handles; see Remove.
package transition

import "fmt"

// Kind distinguishes prompt and equation transitions. The string
// values are the wire tags used in persisted flow documents.
type Kind string

// Transition kinds.
const (
	// Prompt transitions carry a free-text condition description,
	// evaluated by an external LLM.
	Prompt Kind = "prompt"

	// Equation transitions carry structured conditions combined with
	// all/any semantics, evaluable locally.
	Equation Kind = "equation"
)

// Mode selects how an equation transition combines its conditions.
type Mode string

// Combination modes.
const (
	// All requires every condition to match.
	All Mode = "all"

	// Any requires at least one condition to match. New equation
	// transitions default to Any.
	Any Mode = "any"
)

// Operator is a comparison operator in an equation condition.
type Operator string

// Condition operators.
const (
	OpEqual    Operator = "=="
	OpNotEqual Operator = "!="
	OpGreater  Operator = ">"
	OpLess     Operator = "<"
)

// Valid reports whether o is a recognized operator.
func (o Operator) Valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpGreater, OpLess:
		return true
	}
	return false
}

// Condition is one clause of an equation transition. Values are stored
// as strings; numeric coercion happens at evaluation time.
type Condition struct {
	Variable string   `json:"var"`
	Operator Operator `json:"op"`
	Value    string   `json:"value"`
}

// Transition is one outgoing branch of a conversation node.
// Label is meaningful for prompt transitions; Mode and Conditions for
// equation transitions. Icon is a cosmetic wire field carried for
// round-trip fidelity with persisted documents.
type Transition struct {
	Kind       Kind        `json:"type"`
	Label      string      `json:"label,omitempty"`
	Icon       string      `json:"icon,omitempty"`
	Mode       Mode        `json:"mode,omitempty"`
	Conditions []Condition `json:"conditions,omitempty"`
}

// Icons assigned to new transitions.
const (
	iconArrow    = "arrow"
	iconEquation = "equation"
)

// Add appends a new transition of the given kind. Prompt transitions
// start with an empty label; equation transitions start in Any mode
// with no conditions.
func Add(ts []Transition, kind Kind) []Transition {
	t := Transition{Kind: kind, Icon: iconArrow}
	if kind == Equation {
		t = Transition{Kind: Equation, Icon: iconEquation, Mode: Any, Conditions: []Condition{}}
	}
	out := make([]Transition, 0, len(ts)+1)
	out = append(out, ts...)
	return append(out, t)
}

// Remove deletes the transition at index i.
//
// Removal does NOT renumber the positional output handles of the
// transitions that follow: an edge bound to "edge-2" keeps that handle
// even though the transition formerly at index 2 now sits at index 1.
// Reconciling or dropping such edges is the caller's responsibility.
func Remove(ts []Transition, i int) ([]Transition, error) {
	if i < 0 || i >= len(ts) {
		return ts, &IndexError{Op: "remove transition", Index: i, Len: len(ts)}
	}
	out := make([]Transition, 0, len(ts)-1)
	out = append(out, ts[:i]...)
	return append(out, ts[i+1:]...), nil
}

// SetLabel sets the condition description of the prompt transition at
// index i.
func SetLabel(ts []Transition, i int, label string) ([]Transition, error) {
	return update(ts, i, "set label", func(t Transition) (Transition, error) {
		if t.Kind != Prompt {
			return t, fmt.Errorf("set label: transition %d is not a prompt transition", i)
		}
		t.Label = label
		return t, nil
	})
}

// SetMode sets the combination mode of the equation transition at
// index i.
func SetMode(ts []Transition, i int, mode Mode) ([]Transition, error) {
	return update(ts, i, "set mode", func(t Transition) (Transition, error) {
		if t.Kind != Equation {
			return t, fmt.Errorf("set mode: transition %d is not an equation transition", i)
		}
		t.Mode = mode
		return t, nil
	})
}

// AddCondition appends an empty condition (operator ==) to the equation
// transition at index i.
func AddCondition(ts []Transition, i int) ([]Transition, error) {
	return update(ts, i, "add condition", func(t Transition) (Transition, error) {
		if t.Kind != Equation {
			return t, fmt.Errorf("add condition: transition %d is not an equation transition", i)
		}
		t.Conditions = append(copyConditions(t.Conditions), Condition{Operator: OpEqual})
		return t, nil
	})
}

// UpdateCondition replaces condition j of the equation transition at
// index i.
func UpdateCondition(ts []Transition, i, j int, cond Condition) ([]Transition, error) {
	return update(ts, i, "update condition", func(t Transition) (Transition, error) {
		if j < 0 || j >= len(t.Conditions) {
			return t, &IndexError{Op: "update condition", Index: j, Len: len(t.Conditions)}
		}
		conds := copyConditions(t.Conditions)
		conds[j] = cond
		t.Conditions = conds
		return t, nil
	})
}

// RemoveCondition deletes condition j of the equation transition at
// index i.
func RemoveCondition(ts []Transition, i, j int) ([]Transition, error) {
	return update(ts, i, "remove condition", func(t Transition) (Transition, error) {
		if j < 0 || j >= len(t.Conditions) {
			return t, &IndexError{Op: "remove condition", Index: j, Len: len(t.Conditions)}
		}
		conds := make([]Condition, 0, len(t.Conditions)-1)
		conds = append(conds, t.Conditions[:j]...)
		t.Conditions = append(conds, t.Conditions[j+1:]...)
		return t, nil
	})
}

// update bounds-checks i, applies fn to a copy of the transition, and
// splices the result into a fresh slice.
func update(ts []Transition, i int, op string, fn func(Transition) (Transition, error)) ([]Transition, error) {
	if i < 0 || i >= len(ts) {
		return ts, &IndexError{Op: op, Index: i, Len: len(ts)}
	}
	t, err := fn(ts[i])
	if err != nil {
		return ts, err
	}
	out := make([]Transition, len(ts))
	copy(out, ts)
	out[i] = t
	return out, nil
}

func copyConditions(conds []Condition) []Condition {
	out := make([]Condition, len(conds))
	copy(out, conds)
	return out
}

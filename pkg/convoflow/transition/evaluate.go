package transition

import (
	"fmt"

	"github.com/randalmurphal/convoflow/pkg/convoflow/expr"
)

// Evaluate decides an equation transition against a variable map. In
// All mode every condition must hold; in Any mode (the default) one
// match suffices. An equation with no conditions is false in both
// modes.
//
// Prompt transitions cannot be evaluated locally; Evaluate returns
// ErrNotEvaluable for them.
func Evaluate(t Transition, vars map[string]any) (bool, error) {
	if t.Kind != Equation {
		return false, fmt.Errorf("%w: kind %q", ErrNotEvaluable, t.Kind)
	}

	for _, c := range t.Conditions {
		left := expr.Resolve(c.Variable, vars)
		ok, err := expr.Compare(left, c.Value, string(c.Operator))
		if err != nil {
			return false, fmt.Errorf("condition %s: %w", renderCondition(c), err)
		}
		if t.Mode == All {
			if !ok {
				return false, nil
			}
		} else if ok {
			return true, nil
		}
	}

	return t.Mode == All && len(t.Conditions) > 0, nil
}

package transition

import (
	"fmt"
	"strings"
)

// placeholderLabel is shown for transitions with no condition yet.
// The property panel and the canvas both display this sentinel, so the
// exact text is part of the UI contract.
const placeholderLabel = "Set a condition"

// RenderLabel formats a transition for display.
//
// Prompt transitions render their label, or "Set a condition" when the
// label is empty. Equation transitions render their conditions joined
// with " AND " in All mode and " OR " otherwise, each clause as
//
//	variable op "value"
//
// with missing variable/value shown as "?" and a missing operator as
// "=". An equation with no conditions renders "Set a condition".
func RenderLabel(t Transition) string {
	if t.Kind == Equation {
		return renderEquation(t.Mode, t.Conditions)
	}
	if t.Label == "" {
		return placeholderLabel
	}
	return t.Label
}

func renderEquation(mode Mode, conds []Condition) string {
	if len(conds) == 0 {
		return placeholderLabel
	}
	sep := " OR "
	if mode == All {
		sep = " AND "
	}
	parts := make([]string, len(conds))
	for i, c := range conds {
		parts[i] = renderCondition(c)
	}
	return strings.Join(parts, sep)
}

func renderCondition(c Condition) string {
	v := c.Variable
	if v == "" {
		v = "?"
	}
	op := string(c.Operator)
	if op == "" {
		op = "="
	}
	val := c.Value
	if val == "" {
		val = "?"
	}
	return fmt.Sprintf("%s %s %q", v, op, val)
}

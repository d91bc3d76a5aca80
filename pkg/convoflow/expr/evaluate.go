package expr

import "strings"

// Eval evaluates a free-text condition string against the provided
// variables. Logic-split nodes store their conditions in this form.
//
// An empty expression is false. A bare value is evaluated for
// truthiness. "and" binds after "or" splitting, both left to right.
func Eval(expr string, vars map[string]any) (bool, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false, nil
	}

	// Prefix negation.
	if rest, ok := strings.CutPrefix(expr, "not "); ok {
		result, err := Eval(rest, vars)
		return !result, err
	}
	if rest, ok := strings.CutPrefix(expr, "!"); ok {
		result, err := Eval(rest, vars)
		return !result, err
	}

	// Logical connectives, split on the first occurrence.
	if left, right, ok := strings.Cut(expr, " and "); ok {
		l, err := Eval(left, vars)
		if err != nil {
			return false, err
		}
		r, err := Eval(right, vars)
		if err != nil {
			return false, err
		}
		return l && r, nil
	}
	if left, right, ok := strings.Cut(expr, " or "); ok {
		l, err := Eval(left, vars)
		if err != nil {
			return false, err
		}
		r, err := Eval(right, vars)
		if err != nil {
			return false, err
		}
		return l || r, nil
	}

	// Comparison. Two-character operators are tried first so ">=" is
	// not misread as ">".
	for _, op := range []string{"==", "!=", ">=", "<=", ">", "<"} {
		if left, right, ok := strings.Cut(expr, op); ok {
			l := Resolve(left, vars)
			r := Resolve(right, vars)
			return Compare(l, r, op)
		}
	}

	// Bare value.
	return IsTruthy(Resolve(expr, vars)), nil
}

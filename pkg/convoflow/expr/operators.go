package expr

import "fmt"

// Compare applies a comparison operator to two values. Equality
// operators compare string renderings so "18" and 18 are equal;
// ordering operators compare numerically after coercion.
// Returns an error for unknown operators.
func Compare(left, right any, op string) (bool, error) {
	switch op {
	case "==":
		return render(left) == render(right), nil
	case "!=":
		return render(left) != render(right), nil
	case ">":
		return ToFloat64(left) > ToFloat64(right), nil
	case "<":
		return ToFloat64(left) < ToFloat64(right), nil
	case ">=":
		return ToFloat64(left) >= ToFloat64(right), nil
	case "<=":
		return ToFloat64(left) <= ToFloat64(right), nil
	default:
		return false, fmt.Errorf("unknown operator: %q", op)
	}
}

func render(v any) string {
	return fmt.Sprintf("%v", v)
}

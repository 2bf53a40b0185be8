package interp

import "github.com/vrtulka23/dpml/internal/node"

// isNumericKind, numericOf and numericLike mirror the unexported helpers in
// internal/interp/expr; duplicated here rather than exported across the
// package boundary since both sides use them only internally.
func isNumericKind(k node.ValueKind) bool {
	return k == node.ValueInt || k == node.ValueFloat
}

func numericOf(v node.Value) float64 {
	switch v.Kind() {
	case node.ValueInt:
		return float64(v.IntValue())
	case node.ValueFloat:
		return v.FloatValue()
	default:
		return 0
	}
}

func numericLike(k node.ValueKind, f float64) node.Value {
	if k == node.ValueInt {
		return node.NewInt(int64(f))
	}
	return node.NewFloat(f)
}

package cmd

import (
	"strconv"
	"strings"

	"github.com/vrtulka23/dpml/internal/node"
)

// displayScalar renders one node.Value for the "run" command's plain-text
// dump: compact enough for a terminal, unlike Display()'s diagnostic format.
func displayScalar(v node.Value) string {
	switch v.Kind() {
	case node.ValueNull:
		return "null"
	case node.ValueBool:
		return strconv.FormatBool(v.BoolValue())
	case node.ValueInt:
		return strconv.FormatInt(v.IntValue(), 10)
	case node.ValueFloat:
		return strconv.FormatFloat(v.FloatValue(), 'g', -1, 64)
	case node.ValueString:
		return v.StringValue()
	case node.ValueArray:
		elems := v.ArrayElements()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = displayScalar(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

package dpml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vrtulka23/dpml/internal/node"
)

// display renders one line per node: name | indent | keyword | value |
// units, with a trailing " | options" when options are set. Matches the
// reference implementation's display() exactly (DPML.py:display).
func display(nodes []node.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		fmt.Fprintf(&sb, "%s | %d | %s | %s | %s", n.Name, n.Indent, n.Kind, displayValue(n.Value), n.Units)
		if n.HasOptions() {
			opts := make([]string, len(n.Options))
			for i, o := range n.Options {
				opts[i] = displayValue(o)
			}
			fmt.Fprintf(&sb, " | [%s]", strings.Join(opts, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func displayValue(v node.Value) string {
	switch v.Kind() {
	case node.ValueNull:
		return "None"
	case node.ValueBool:
		if v.BoolValue() {
			return "True"
		}
		return "False"
	case node.ValueInt:
		return strconv.FormatInt(v.IntValue(), 10)
	case node.ValueFloat:
		return strconv.FormatFloat(v.FloatValue(), 'g', -1, 64)
	case node.ValueString:
		return "'" + v.StringValue() + "'"
	case node.ValueArray:
		elems := v.ArrayElements()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = displayValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

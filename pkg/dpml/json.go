package dpml

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/vrtulka23/dpml/internal/node"
)

// JSON builds a nested JSON document from the flat dotted-name → value map
// (spec §6 `data()`), using sjson.Set's native support for dotted paths to
// turn "body.mass" into {"body":{"mass":...}} without any tree-building code
// of our own.
func (d *DPML) JSON() (string, error) {
	out := "{}"
	for _, n := range d.ip.R {
		var err error
		out, err = sjson.Set(out, n.Name, jsonValue(n.Value))
		if err != nil {
			return "", fmt.Errorf("encoding %q: %w", n.Name, err)
		}
	}
	return out, nil
}

// jsonValue converts a node.Value into the nearest Go value sjson.Set
// accepts directly, recursing for arrays.
func jsonValue(v node.Value) any {
	switch v.Kind() {
	case node.ValueNull:
		return nil
	case node.ValueBool:
		return v.BoolValue()
	case node.ValueInt:
		return v.IntValue()
	case node.ValueFloat:
		return v.FloatValue()
	case node.ValueString:
		return v.StringValue()
	case node.ValueArray:
		elems := v.ArrayElements()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = jsonValue(e)
		}
		return out
	default:
		return nil
	}
}

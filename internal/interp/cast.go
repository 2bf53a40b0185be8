package interp

import (
	"encoding/json"
	"strconv"
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
)

// kindForNodeKind maps a declaration's Node.Kind to the ValueKind its literal
// must cast into (spec §3: table columns hold array values).
func kindForNodeKind(k node.Kind) node.ValueKind {
	switch k {
	case node.KindBool:
		return node.ValueBool
	case node.KindInt:
		return node.ValueInt
	case node.KindFloat:
		return node.ValueFloat
	case node.KindStr:
		return node.ValueString
	case node.KindTable:
		return node.ValueArray
	default:
		return node.ValueString
	}
}

// stripQuotes removes one matching pair of leading/trailing quote
// characters, left in ValueRaw by the line scanner (spec §4.1: the raw value
// token includes its delimiting quotes verbatim).
func stripQuotes(raw string) string {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '\'' || first == '"') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

// castValue implements spec §4.4.1's casting rule: a literal ValueRaw is
// interpreted against targetKind, with "none"/empty treated as the null
// sentinel (INVALID_CAST's counterpart, UNDEFINED_REQUIRED, firing instead
// when the declaration demanded a value with "!").
func (ip *Interpreter) castValue(n node.Node, targetKind node.ValueKind) (node.Value, error) {
	raw := strings.TrimSpace(n.ValueRaw)
	unquoted := stripQuotes(raw)

	switch unquoted {
	case "none", "None", "":
		if n.Defined {
			return node.Null, dpmlerrors.Newf(dpmlerrors.UndefinedRequired, n.Pos(),
				"node %q requires a value but none was given", n.Name)
		}
		return node.Null, nil
	}

	if strings.HasPrefix(raw, "[") {
		return ip.castArray(n, targetKind)
	}

	switch targetKind {
	case node.ValueBool:
		switch unquoted {
		case "true":
			return node.NewBool(true), nil
		case "false":
			return node.NewBool(false), nil
		default:
			return node.Null, dpmlerrors.Newf(dpmlerrors.InvalidCast, n.Pos(),
				"cannot cast %q to bool", raw)
		}

	case node.ValueInt:
		v, err := strconv.ParseInt(unquoted, 10, 64)
		if err != nil {
			return node.Null, dpmlerrors.Newf(dpmlerrors.InvalidCast, n.Pos(),
				"cannot cast %q to int", raw)
		}
		return node.NewInt(v), nil

	case node.ValueFloat:
		v, err := strconv.ParseFloat(unquoted, 64)
		if err != nil {
			return node.Null, dpmlerrors.Newf(dpmlerrors.InvalidCast, n.Pos(),
				"cannot cast %q to float", raw)
		}
		return node.NewFloat(v), nil

	case node.ValueString:
		return node.NewString(node.NormalizeString(unquoted)), nil

	case node.ValueArray:
		return ip.castArray(n, targetKind)

	default:
		return node.Null, dpmlerrors.Newf(dpmlerrors.UnknownType, n.Pos(), "unknown target kind for %q", n.Name)
	}
}

// castArray parses a bracketed, JSON-like array literal (spec §4.4.1) and
// validates its shape against the declaration's dimension bounds.
func (ip *Interpreter) castArray(n node.Node, targetKind node.ValueKind) (node.Value, error) {
	var raw any
	if err := json.Unmarshal([]byte(n.ValueRaw), &raw); err != nil {
		return node.Null, dpmlerrors.Newf(dpmlerrors.InvalidCast, n.Pos(),
			"cannot parse %q as an array literal: %v", n.ValueRaw, err)
	}

	elemKind := targetKind
	if targetKind == node.ValueArray {
		elemKind = node.ValueFloat
	}

	v := buildArrayValue(raw, elemKind)

	shape := v.Shape()
	for i, b := range n.Dimension {
		size := 0
		if i < len(shape) {
			size = shape[i]
		}
		if !b.Contains(size) {
			return node.Null, dpmlerrors.Newf(dpmlerrors.DimOutOfRange, n.Pos(),
				"array dimension %d has size %d, outside declared bound", i, size)
		}
	}

	return v, nil
}

// buildArrayValue recursively converts a decoded JSON value into a node.Value,
// coercing numeric leaves toward elemKind since encoding/json always decodes
// JSON numbers as float64.
func buildArrayValue(raw any, elemKind node.ValueKind) node.Value {
	switch x := raw.(type) {
	case []any:
		elems := make([]node.Value, len(x))
		for i, e := range x {
			elems[i] = buildArrayValue(e, elemKind)
		}
		return node.NewArray(elems)
	case float64:
		if elemKind == node.ValueInt {
			return node.NewInt(int64(x))
		}
		return node.NewFloat(x)
	case string:
		return node.NewString(x)
	case bool:
		return node.NewBool(x)
	case nil:
		return node.Null
	default:
		return node.Null
	}
}

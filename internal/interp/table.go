package interp

import (
	"strconv"
	"strings"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
)

type tableColumn struct {
	name string
	kind node.Kind
	unit string
	rows []string
}

// expandTable parses a table node's body (spec §4.4 table hook): one header
// line per column ("name type [units]"), a blank line, then whitespace-
// separated data rows. Each column becomes its own array-typed Node in the
// expansion, dimensioned to exactly its row count.
func (ip *Interpreter) expandTable(n node.Node) ([]node.Node, error) {
	body := n.ValueRaw
	if n.IsImport {
		results, err := ip.Request(n.ValueRaw, []int{1}, n.Pos())
		if err != nil {
			return nil, err
		}
		if results[0].Value.Kind() != node.ValueString {
			return nil, dpmlerrors.Newf(dpmlerrors.InvalidCast, n.Pos(),
				"table import %q must resolve to a string node holding the table body", n.ValueRaw)
		}
		body = results[0].Value.StringValue()
	}

	columns, err := parseTableBody(body, n.Pos())
	if err != nil {
		return nil, err
	}

	out := make([]node.Node, 0, len(columns))
	for _, col := range columns {
		v, err := buildColumnValue(col, n.Pos())
		if err != nil {
			return nil, err
		}
		name := col.name
		if n.Name != "" {
			name = n.Name + "." + col.name
		}
		out = append(out, node.Node{
			Kind:      col.kind,
			Name:      name,
			Indent:    n.Indent,
			Value:     v,
			Units:     col.unit,
			Dimension: []node.Bound{{Min: len(col.rows), Max: len(col.rows)}},
			Source:    n.Source,
			Line:      n.Line,
		})
	}
	return out, nil
}

// parseTableBody splits a table's raw text into a header section (name,
// type, optional units per line) and a data section (one row per line,
// column count matching the header), separated by a blank line.
func parseTableBody(body string, pos dpmlerrors.Position) ([]tableColumn, error) {
	lines := strings.Split(body, "\n")

	var columns []tableColumn
	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, dpmlerrors.Newf(dpmlerrors.MalformedLine, pos,
				"table header %q must have a name and a type", line)
		}
		kind := typeKind(fields[1])
		if kind == node.KindEmpty {
			return nil, dpmlerrors.Newf(dpmlerrors.UnknownType, pos, "unknown table column type %q", fields[1])
		}
		col := tableColumn{name: fields[0], kind: kind}
		if len(fields) >= 3 {
			col.unit = fields[2]
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil, dpmlerrors.New(dpmlerrors.MalformedLine, pos, "table has no header columns")
	}
	i++ // skip the blank separator line

	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != len(columns) {
			return nil, dpmlerrors.Newf(dpmlerrors.MalformedLine, pos,
				"table row %q has %d values, want %d", line, len(fields), len(columns))
		}
		for c, f := range fields {
			columns[c].rows = append(columns[c].rows, f)
		}
	}
	return columns, nil
}

func typeKind(t string) node.Kind {
	switch t {
	case "bool":
		return node.KindBool
	case "int":
		return node.KindInt
	case "float":
		return node.KindFloat
	case "str":
		return node.KindStr
	default:
		return node.KindEmpty
	}
}

func buildColumnValue(col tableColumn, pos dpmlerrors.Position) (node.Value, error) {
	elems := make([]node.Value, len(col.rows))
	for i, tok := range col.rows {
		switch col.kind {
		case node.KindBool:
			switch tok {
			case "true":
				elems[i] = node.NewBool(true)
			case "false":
				elems[i] = node.NewBool(false)
			default:
				return node.Null, dpmlerrors.Newf(dpmlerrors.InvalidCast, pos, "cannot cast %q to bool", tok)
			}
		case node.KindInt:
			v, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return node.Null, dpmlerrors.Newf(dpmlerrors.InvalidCast, pos, "cannot cast %q to int", tok)
			}
			elems[i] = node.NewInt(v)
		case node.KindFloat:
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return node.Null, dpmlerrors.Newf(dpmlerrors.InvalidCast, pos, "cannot cast %q to float", tok)
			}
			elems[i] = node.NewFloat(v)
		default:
			elems[i] = node.NewString(tok)
		}
	}
	return node.NewArray(elems), nil
}

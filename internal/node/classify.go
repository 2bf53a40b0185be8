package node

// Classify is N: it turns L's structural RawLine into a typed Node,
// dispatching purely on RawLine.Form (spec §4.3: "a deterministic dispatcher
// over L's output into one of the Node kinds").
func Classify(raw RawLine) Node {
	n := Node{
		Indent: raw.Indent,
		Source: raw.Source,
		Line:   raw.Line,
	}

	switch raw.Form {
	case formEmpty:
		n.Kind = KindEmpty

	case formImport:
		n.Kind = KindImport
		n.Name = raw.Name
		n.ValueRaw = raw.ImportPath
		n.IsImport = true

	case formUnitDef:
		n.Kind = KindUnit
		n.Name = raw.Name
		n.ValueRaw = raw.ValueRaw

	case formOption:
		n.Kind = KindOption
		n.ValueRaw = raw.ValueRaw
		n.Units = raw.Units
		n.Comment = raw.Comment
		n.IsImport = raw.ValueIsImport

	case formCondition:
		n.Kind = KindCondition
		if raw.Name != "" {
			n.Name = raw.Name + "@" + raw.ConditionKeyword
		} else {
			n.Name = "@" + raw.ConditionKeyword
		}
		n.ValueRaw = raw.ConditionExpr

	case formGroup:
		n.Kind = KindGroup
		n.Name = raw.Name

	case formMod:
		n.Kind = KindMod
		n.Name = raw.Name
		n.ValueRaw = raw.ValueRaw
		n.Units = raw.Units
		n.Comment = raw.Comment
		n.IsImport = raw.ValueIsImport

	case formTyped:
		n.Kind = typeKind(raw.Type)
		n.Name = raw.Name
		n.Defined = raw.Defined
		n.Dimension = raw.Dims
		n.ValueRaw = raw.ValueRaw
		n.Units = raw.Units
		n.Comment = raw.Comment
		n.IsImport = raw.ValueIsImport
	}

	return n
}

func typeKind(t string) Kind {
	switch t {
	case "bool":
		return KindBool
	case "int":
		return KindInt
	case "float":
		return KindFloat
	case "str":
		return KindStr
	case "table":
		return KindTable
	default:
		return KindEmpty
	}
}

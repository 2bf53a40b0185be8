package node

import dpmlerrors "github.com/vrtulka23/dpml/internal/errors"

// Kind discriminates a Node's role (spec §3: "the sole record type,
// discriminated by a kind tag").
type Kind string

const (
	KindBool      Kind = "bool"
	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindStr       Kind = "str"
	KindTable     Kind = "table"
	KindEmpty     Kind = "empty"
	KindGroup     Kind = "group"
	KindOption    Kind = "option"
	KindMod       Kind = "mod"
	KindCondition Kind = "condition"
	KindImport    Kind = "import"
	KindUnit      Kind = "unit"
)

// IsValueKind reports whether k declares a value-bearing node (the kinds
// that can hold a typed Value, mod included), as opposed to a structural kind
// (group, empty, option, condition, import, unit) that is either discarded or
// drives interpreter state without itself appearing in the result list.
func (k Kind) IsValueKind() bool {
	switch k {
	case KindBool, KindInt, KindFloat, KindStr, KindTable, KindMod:
		return true
	default:
		return false
	}
}

// Bound is one axis of a declared dimension: [Min, Max], either end
// unbounded when Open is true for that end.
type Bound struct {
	Min     int
	Max     int
	MinOpen bool
	MaxOpen bool
}

// Contains reports whether size satisfies this bound (spec §4.4.1: "for each
// axis d, min ≤ shape[d] ≤ max with unbounded ends").
func (b Bound) Contains(size int) bool {
	if !b.MinOpen && size < b.Min {
		return false
	}
	if !b.MaxOpen && size > b.Max {
		return false
	}
	return true
}

// Node is DPML's single record type (spec §3).
type Node struct {
	Kind      Kind
	Name      string
	Indent    int
	ValueRaw  string
	Value     Value
	Units     string
	Dimension []Bound
	Defined   bool
	Options   []Value
	IsImport  bool
	Source    string
	Line      int

	// Comment is the text after a trailing "#" on the source line, without
	// the "#" itself; empty when the line has no comment.
	Comment string
}

// Pos builds an errors.Position from this node's provenance fields.
func (n Node) Pos() dpmlerrors.Position {
	return dpmlerrors.Position{Source: n.Source, Line: n.Line}
}

// HasOptions reports whether n declares a non-empty option list.
func (n Node) HasOptions() bool {
	return len(n.Options) > 0
}

// MatchesOptions reports whether n.Value is an allowed value per spec
// invariant 4: value ∈ options ∪ ({null} if not defined).
func (n Node) MatchesOptions() bool {
	if !n.HasOptions() {
		return true
	}
	if n.Value.IsNull() && !n.Defined {
		return true
	}
	for _, opt := range n.Options {
		if n.Value.Equal(opt) {
			return true
		}
	}
	return false
}

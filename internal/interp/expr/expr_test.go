package expr

import (
	"strings"
	"testing"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
	"github.com/vrtulka23/dpml/internal/units"
)

type fakeResolver struct {
	nodes map[string]node.Node
	table *units.Table
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{nodes: map[string]node.Node{}, table: units.NewTable()}
}

func (f *fakeResolver) set(path string, v node.Value, unitExpr string) {
	f.nodes[path] = node.Node{Value: v, Units: unitExpr, Defined: true}
}

func (f *fakeResolver) ResolveNode(path string) (node.Node, bool, error) {
	n, ok := f.nodes[strings.TrimPrefix(path, "?")]
	return n, ok, nil
}

func (f *fakeResolver) UnitTable() *units.Table {
	return f.table
}

var pos = dpmlerrors.Position{Source: "expression", Line: 1}

func TestEvaluateWeightConversion(t *testing.T) {
	r := newFakeResolver()
	r.set("weight", node.NewFloat(57.3), "kg")

	ok, err := Evaluate(`{?weight} >= 57300 g`, r, pos)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if !ok {
		t.Error("57.3 kg >= 57300 g should be true")
	}

	ok, err = Evaluate(`{?weight} < 50`, r, pos)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if ok {
		t.Error("57.3 < 50 (no unit conversion since 50 is dimensionless) should be false")
	}
}

func TestEvaluateBoolLogic(t *testing.T) {
	r := newFakeResolver()
	r.set("flag", node.NewBool(true), "")
	r.set("other", node.NewBool(false), "")

	cases := []struct {
		expr string
		want bool
	}{
		{`true && true`, true},
		{`true && false`, false},
		{`false || true`, true},
		{`false || false`, false},
		{`~true`, false},
		{`~{?other}`, true},
		{`{?flag} && !{?flag}`, true},
		{`{?flag} || !{?missing}`, true},
		{`(true || false) && true`, true},
	}
	for _, tc := range cases {
		got, err := Evaluate(tc.expr, r, pos)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", tc.expr, err)
		}
		if got != tc.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvaluateDefinedCheckNeverFails(t *testing.T) {
	r := newFakeResolver()
	ok, err := Evaluate(`!{?nonexistent}`, r, pos)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if ok {
		t.Error("!{?nonexistent} should be false, not error, when the node doesn't exist")
	}
}

func TestEvaluateStringComparison(t *testing.T) {
	r := newFakeResolver()
	r.set("flower", node.NewString("rose"), "")

	ok, err := Evaluate(`{?flower} == rose`, r, pos)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if !ok {
		t.Error("rose == rose should be true")
	}

	ok, err = Evaluate(`{?flower} == dandelion`, r, pos)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if ok {
		t.Error("rose == dandelion should be false")
	}
}

func TestEvaluateShortCircuitSkipsMissingReference(t *testing.T) {
	r := newFakeResolver()
	r.set("flag", node.NewBool(true), "")

	// The right side references a node that does not exist; it must never be
	// evaluated because the left side of || already settles the result.
	ok, err := Evaluate(`{?flag} || {?missing} == 1`, r, pos)
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if !ok {
		t.Error("short-circuited || should still be true")
	}
}

func TestEvaluateNonBoolExpressionError(t *testing.T) {
	r := newFakeResolver()
	_, err := Evaluate(`5`, r, pos)
	if err == nil {
		t.Fatal("expected NON_BOOL_EXPRESSION error")
	}
	dperr, ok := err.(*dpmlerrors.DPMLError)
	if !ok || dperr.Kind != dpmlerrors.NonBoolExpression {
		t.Errorf("error = %v, want NON_BOOL_EXPRESSION", err)
	}
}

func TestEvaluateUnbalancedParen(t *testing.T) {
	r := newFakeResolver()
	_, err := Evaluate(`(true && false`, r, pos)
	if err == nil {
		t.Fatal("expected UNBALANCED_PAREN error")
	}
}

func TestEvaluateDimMismatchPropagates(t *testing.T) {
	r := newFakeResolver()
	r.set("weight", node.NewFloat(57.3), "kg")
	_, err := Evaluate(`{?weight} > 5 m`, r, pos)
	if err == nil {
		t.Fatal("expected DIM_MISMATCH error converting kg to m")
	}
}

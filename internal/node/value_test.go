package node

import "testing"

func TestValueEqual(t *testing.T) {
	if !NewInt(3).Equal(NewInt(3)) {
		t.Error("NewInt(3) should equal NewInt(3)")
	}
	if NewInt(3).Equal(NewFloat(3)) {
		t.Error("NewInt(3) should not equal NewFloat(3): different kinds")
	}
	a := NewArray([]Value{NewInt(1), NewInt(2)})
	b := NewArray([]Value{NewInt(1), NewInt(2)})
	if !a.Equal(b) {
		t.Error("equal-content arrays should compare equal")
	}
}

func TestValueShape(t *testing.T) {
	scalar := NewInt(1)
	if shape := scalar.Shape(); shape != nil {
		t.Errorf("scalar.Shape() = %v, want nil", shape)
	}
	flat := NewArray([]Value{NewInt(1), NewInt(2), NewInt(3)})
	if shape := flat.Shape(); len(shape) != 1 || shape[0] != 3 {
		t.Errorf("flat.Shape() = %v, want [3]", shape)
	}
	nested := NewArray([]Value{
		NewArray([]Value{NewInt(1), NewInt(2)}),
		NewArray([]Value{NewInt(3), NewInt(4)}),
	})
	if shape := nested.Shape(); len(shape) != 2 || shape[0] != 2 || shape[1] != 2 {
		t.Errorf("nested.Shape() = %v, want [2 2]", shape)
	}
}

func TestNodeMatchesOptions(t *testing.T) {
	n := Node{
		Value:   NewInt(2),
		Defined: true,
		Options: []Value{NewInt(1), NewInt(2), NewInt(3)},
	}
	if !n.MatchesOptions() {
		t.Error("value 2 should be in options {1,2,3}")
	}
	n.Value = NewInt(9)
	if n.MatchesOptions() {
		t.Error("value 9 should not be in options {1,2,3}")
	}

	undefined := Node{
		Value:   Null,
		Defined: false,
		Options: []Value{NewString("house"), NewString("car")},
	}
	if !undefined.MatchesOptions() {
		t.Error("null value on an undefined node with options should be allowed")
	}
}

package units

import "testing"

func TestMultiplyDivideRebase(t *testing.T) {
	a := New(4.0, Vector{2, 2, 2, 2, 2, 2, 2, 2, 0})
	b := New(2.0, Vector{1, 1, 1, 1, 1, 1, 1, 1, 0})
	got := Divide(a, b)
	want := New(2.0, Vector{1, 1, 1, 1, 1, 1, 1, 1, 0})
	if !Equal(got, want) {
		t.Fatalf("Divide(%v, %v) = %v, want %v", a, b, got, want)
	}
}

func TestPower(t *testing.T) {
	a := New(2.0, Vector{1, 2, 3, 4, 5, 6, 7, 8, 0})
	got := Power(a, 3)
	want := New(8.0, Vector{3, 6, 9, 12, 15, 18, 21, 24, 0})
	if !Equal(got, want) {
		t.Fatalf("Power(%v, 3) = %v, want %v", a, got, want)
	}
}

func TestRebaseNormalizesMagnitude(t *testing.T) {
	u := New(1234.5, Vector{})
	if u.Magnitude < 1 || u.Magnitude >= 10 {
		t.Fatalf("rebased magnitude %v not in [1,10)", u.Magnitude)
	}
	if got := u.EffectiveMagnitude(); !closeEnough(got, 1234.5) {
		t.Fatalf("EffectiveMagnitude() = %v, want 1234.5", got)
	}
}

func TestSamePhysicalDimensionIgnoresDecimalSlot(t *testing.T) {
	a := New(1.0, Vector{1, 0, 0, 0, 0, 0, 0, 0, 0})
	b := New(1000.0, Vector{1, 0, 0, 0, 0, 0, 0, 0, 3})
	if !SamePhysicalDimension(a, b) {
		t.Fatalf("expected %v and %v to share a physical dimension", a, b)
	}
}

package units

import (
	"testing"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
)

func TestRegisterCustomUnit(t *testing.T) {
	table := NewTable()
	pos := dpmlerrors.Position{Source: "inline", Line: 1}

	mph := Divide(baseUnits["m"], baseUnits["s"])
	if err := table.RegisterCustom("mph", mph, pos); err != nil {
		t.Fatalf("RegisterCustom() error: %v", err)
	}

	got, ok := table.lookupAny("mph")
	if !ok {
		t.Fatal("expected custom unit \"mph\" to be registered")
	}
	if !Equal(got, mph) {
		t.Fatalf("lookupAny(\"mph\") = %+v, want %+v", got, mph)
	}
}

func TestRegisterCustomUnitDuplicateRejected(t *testing.T) {
	table := NewTable()
	pos := dpmlerrors.Position{Source: "inline", Line: 1}

	mph := Divide(baseUnits["m"], baseUnits["s"])
	kph := Divide(baseUnits["m"], Multiply(siPrefixes["k"], baseUnits["s"]))

	if err := table.RegisterCustom("mph", mph, pos); err != nil {
		t.Fatalf("first RegisterCustom() error: %v", err)
	}
	if err := table.RegisterCustom("mph", kph, pos); err == nil {
		t.Fatal("expected DuplicateUnit error on conflicting re-registration")
	}
	if err := table.RegisterCustom("mph", mph, pos); err != nil {
		t.Fatalf("re-registering identical unit should be a no-op, got: %v", err)
	}
}

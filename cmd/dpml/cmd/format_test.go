package cmd

import (
	"testing"

	"github.com/vrtulka23/dpml/internal/node"
)

func TestDisplayScalarArray(t *testing.T) {
	v := node.NewArray([]node.Value{node.NewFloat(1.5), node.NewFloat(2.5)})
	if got, want := displayScalar(v), "[1.5, 2.5]"; got != want {
		t.Errorf("displayScalar(array) = %q, want %q", got, want)
	}
}

func TestDisplayScalarNull(t *testing.T) {
	if got, want := displayScalar(node.Null), "null"; got != want {
		t.Errorf("displayScalar(null) = %q, want %q", got, want)
	}
}

package template

import (
	"testing"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
	"github.com/vrtulka23/dpml/internal/node"
)

type fakeRequester struct {
	nodes map[string]node.Value
}

func (f fakeRequester) Request(path string, counts []int, pos dpmlerrors.Position) ([]node.Node, error) {
	v, ok := f.nodes[path]
	if !ok {
		return nil, dpmlerrors.Newf(dpmlerrors.NoLocalNodes, pos, "no node %q", path)
	}
	return []node.Node{{Name: path, Value: v}}, nil
}

func TestRenderPlainReference(t *testing.T) {
	r := fakeRequester{nodes: map[string]node.Value{"name": node.NewString("Ceres")}}
	out, err := Render("Hello, {name}!", r, "template")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if out != "Hello, Ceres!" {
		t.Errorf("Render = %q, want %q", out, "Hello, Ceres!")
	}
}

func TestRenderWithFormat(t *testing.T) {
	r := fakeRequester{nodes: map[string]node.Value{"pi": node.NewFloat(3.14159)}}
	out, err := Render("value = {pi:.2f}", r, "template")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if out != "value = 3.14" {
		t.Errorf("Render = %q, want %q", out, "value = 3.14")
	}
}

func TestRenderLiteralBraceWithoutToken(t *testing.T) {
	r := fakeRequester{}
	out, err := Render("just { a brace", r, "template")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if out != "just { a brace" {
		t.Errorf("Render = %q, want literal passthrough", out)
	}
}

func TestRenderUnresolvedPathErrors(t *testing.T) {
	r := fakeRequester{}
	_, err := Render("{missing}", r, "template")
	if err == nil {
		t.Fatal("expected an error for an unresolved reference")
	}
}

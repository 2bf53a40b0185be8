package dpml

import (
	"strings"
	"testing"
)

type memReader struct {
	files map[string]string
}

func (r memReader) Read(path string) (string, error) {
	content, ok := r.files[path]
	if !ok {
		return "", &notFoundError{path}
	}
	return content, nil
}

type notFoundError struct{ path string }

func (e *notFoundError) Error() string { return "no such file " + e.path }

func TestDataFlatView(t *testing.T) {
	d := NewFromText(nil, "size float = 70 cm\nsize = 1 m\n")
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	data := d.Data()
	size, ok := data["size"]
	if !ok {
		t.Fatal("expected \"size\" in Data()")
	}
	if got := size.FloatValue(); got < 99.999 || got > 100.001 {
		t.Errorf("size = %v, want 100.0", got)
	}
}

func TestDisplayFormatsOneLinePerNode(t *testing.T) {
	d := NewFromText(nil, "coordinates int = 1\n")
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	out := d.Display()
	if !strings.Contains(out, "coordinates | 0 | int | 1 |") {
		t.Errorf("Display() = %q", out)
	}
}

func TestQueryWildcard(t *testing.T) {
	d := NewFromText(nil, "body int = 1\n  mass float = 10 kg\n")
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	results := d.Query("body.*")
	if len(results) != 1 || results[0].Name != "mass" {
		t.Errorf("Query(body.*) = %+v", results)
	}
}

func TestExpressionEvaluatesAgainstResultNodes(t *testing.T) {
	d := NewFromText(nil, "size float = 70 cm\n")
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	ok, err := d.Expression("{?size} > 0.5 m")
	if err != nil {
		t.Fatalf("Expression error: %v", err)
	}
	if !ok {
		t.Error("expected {?size} > 0.5 m to be true")
	}
}

func TestJSONNestsDottedNames(t *testing.T) {
	d := NewFromText(nil, "body int = 1\n  mass float = 10 kg\n")
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	out, err := d.JSON()
	if err != nil {
		t.Fatalf("JSON error: %v", err)
	}
	if !strings.Contains(out, `"body"`) || !strings.Contains(out, `"mass":10`) {
		t.Errorf("JSON() = %s", out)
	}
}

func TestTemplateRendersAgainstResultNodes(t *testing.T) {
	d := NewFromText(nil, "name str = Ceres\n")
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	out, err := d.Template("Hello, {?name}!", "", nil)
	if err != nil {
		t.Fatalf("Template error: %v", err)
	}
	if out != "Hello, Ceres!" {
		t.Errorf("Template() = %q", out)
	}
}

func TestLoadAppendsFileContents(t *testing.T) {
	reader := memReader{files: map[string]string{"a.dpml": "size float = 70 cm\n"}}
	d := New(reader)
	if err := d.Load("a.dpml"); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if err := d.Initialize(); err != nil {
		t.Fatalf("Initialize error: %v", err)
	}
	if _, ok := d.Data()["size"]; !ok {
		t.Error("expected \"size\" loaded from a.dpml")
	}
}

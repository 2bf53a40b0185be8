package node

import (
	"testing"
)

func TestParseLineForms(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind Kind
		wantName string
	}{
		{"empty", "", KindEmpty, ""},
		{"whitespace only", "   ", KindEmpty, ""},
		{"comment", "# a comment", KindEmpty, ""},
		{"import bare", "{file.dpml}", KindImport, ""},
		{"import named", "assets {file.dpml}", KindImport, "assets"},
		{"group", "coordinates", KindGroup, "coordinates"},
		{"mod", "size = 1 m", KindMod, "size"},
		{"typed float", "size float = 70 cm", KindFloat, "size"},
		{"typed bool defined", "flag bool! = true", KindBool, "flag"},
		{"typed int dims", "matrix int[2:4] = [1,2]", KindInt, "matrix"},
		{"option", "= 1", KindOption, ""},
		{"condition case", "@case true", KindCondition, "@case"},
		{"condition else", "@else", KindCondition, "@else"},
		{"condition end", "@end", KindCondition, "@end"},
		{"unit def", "mph@unit 0.44704 m/s", KindUnit, "mph"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := ParseLine(tc.line, "inline", 1)
			if err != nil {
				t.Fatalf("ParseLine(%q) error: %v", tc.line, err)
			}
			if n.Kind != tc.wantKind {
				t.Errorf("ParseLine(%q).Kind = %v, want %v", tc.line, n.Kind, tc.wantKind)
			}
			if n.Name != tc.wantName {
				t.Errorf("ParseLine(%q).Name = %q, want %q", tc.line, n.Name, tc.wantName)
			}
		})
	}
}

func TestParseLineValueUnitsComment(t *testing.T) {
	n, err := ParseLine(`size float = 70 cm # measured by hand`, "inline", 1)
	if err != nil {
		t.Fatalf("ParseLine() error: %v", err)
	}
	if n.ValueRaw != "70" {
		t.Errorf("ValueRaw = %q, want %q", n.ValueRaw, "70")
	}
	if n.Units != "cm" {
		t.Errorf("Units = %q, want %q", n.Units, "cm")
	}
	if n.Comment != "measured by hand" {
		t.Errorf("Comment = %q, want %q", n.Comment, "measured by hand")
	}
}

func TestParseLineQuotedValue(t *testing.T) {
	n, err := ParseLine(`name str = 'Tina'`, "inline", 1)
	if err != nil {
		t.Fatalf("ParseLine() error: %v", err)
	}
	if n.ValueRaw != `'Tina'` {
		t.Errorf("ValueRaw = %q, want %q", n.ValueRaw, `'Tina'`)
	}
}

func TestParseLineImportValue(t *testing.T) {
	n, err := ParseLine(`weight = {other.dpml?mass}`, "inline", 1)
	if err != nil {
		t.Fatalf("ParseLine() error: %v", err)
	}
	if !n.IsImport {
		t.Errorf("IsImport = false, want true")
	}
	if n.ValueRaw != `{other.dpml?mass}` {
		t.Errorf("ValueRaw = %q, want %q", n.ValueRaw, `{other.dpml?mass}`)
	}
}

func TestParseLineMalformed(t *testing.T) {
	if _, err := ParseLine(`!!!`, "inline", 1); err == nil {
		t.Fatal("expected MALFORMED_LINE error, got nil")
	}
}

func TestParseLineDimsBounds(t *testing.T) {
	n, err := ParseLine(`matrix int[2:4][:10] = [1,2]`, "inline", 1)
	if err != nil {
		t.Fatalf("ParseLine() error: %v", err)
	}
	if len(n.Dimension) != 2 {
		t.Fatalf("len(Dimension) = %d, want 2", len(n.Dimension))
	}
	if n.Dimension[0].Min != 2 || n.Dimension[0].Max != 4 {
		t.Errorf("Dimension[0] = %+v, want Min=2 Max=4", n.Dimension[0])
	}
	if !n.Dimension[1].MinOpen || n.Dimension[1].Max != 10 {
		t.Errorf("Dimension[1] = %+v, want MinOpen Max=10", n.Dimension[1])
	}
}

package node

import (
	"strings"
	"testing"

	dpmlerrors "github.com/vrtulka23/dpml/internal/errors"
)

func TestFoldBlocksMergesMultilineBlock(t *testing.T) {
	src := "text str = \"\"\"\nline one\nline two\n\"\"\" cm"
	folded, err := FoldBlocks(src, "inline")
	if err != nil {
		t.Fatalf("FoldBlocks() error: %v", err)
	}
	if len(folded) != 1 {
		t.Fatalf("got %d logical lines, want 1: %#v", len(folded), folded)
	}
	want := "text str = \"\"\"\nline one\nline two\n\"\"\" cm"
	if folded[0].Text != want {
		t.Fatalf("folded text = %q, want %q", folded[0].Text, want)
	}
	if folded[0].StartLine != 1 {
		t.Fatalf("StartLine = %d, want 1", folded[0].StartLine)
	}
}

func TestFoldBlocksSelfContainedSingleLine(t *testing.T) {
	src := "a\ntext str = \"\"\"short\"\"\"\nb"
	folded, err := FoldBlocks(src, "inline")
	if err != nil {
		t.Fatalf("FoldBlocks() error: %v", err)
	}
	if len(folded) != 3 {
		t.Fatalf("got %d logical lines, want 3: %#v", len(folded), folded)
	}
}

func TestFoldBlocksUnterminatedFails(t *testing.T) {
	src := "text str = \"\"\"\nunterminated"
	_, err := FoldBlocks(src, "inline")
	if err == nil {
		t.Fatal("expected UNTERMINATED_BLOCK error, got nil")
	}
	dErr, ok := err.(*dpmlerrors.DPMLError)
	if !ok {
		t.Fatalf("error is %T, want *dpmlerrors.DPMLError", err)
	}
	if dErr.Kind != dpmlerrors.UnterminatedBlock {
		t.Fatalf("Kind = %v, want UnterminatedBlock", dErr.Kind)
	}
}

func TestFoldBlocksIdempotent(t *testing.T) {
	src := "a\ntext str = \"\"\"\nline one\nline two\n\"\"\" cm\nb"
	first, err := FoldBlocks(src, "inline")
	if err != nil {
		t.Fatalf("first FoldBlocks() error: %v", err)
	}
	rejoined := make([]string, len(first))
	for i, l := range first {
		rejoined[i] = l.Text
	}
	second, err := FoldBlocks(strings.Join(rejoined, "\n"), "inline")
	if err != nil {
		t.Fatalf("second FoldBlocks() error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("fold is not idempotent: %d lines then %d lines", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Fatalf("fold is not idempotent at line %d: %q != %q", i, first[i].Text, second[i].Text)
		}
	}
}

package mcptool

import (
	"testing"

	"docspell.dev/docspell/patch"
)

func TestPatchInputToPatch(t *testing.T) {
	in := PatchInput{StartLine: 2, StartColumn: 1, EndLine: 2, EndColumn: 3, Text: "hi"}
	p := in.toPatch()
	if p.Kind != patch.PatchReplace {
		t.Fatalf("Kind = %v, want PatchReplace", p.Kind)
	}
	if p.Text != "hi" {
		t.Fatalf("Text = %q, want %q", p.Text, "hi")
	}
	if p.Span.Start.Line != 2 || p.Span.Start.Column != 1 {
		t.Fatalf("Span.Start = %v, want {2 1}", p.Span.Start)
	}
	if p.Span.End.Line != 2 || p.Span.End.Column != 3 {
		t.Fatalf("Span.End = %v, want {2 3}", p.Span.End)
	}
}

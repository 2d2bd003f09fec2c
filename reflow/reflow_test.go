package reflow

import (
	"strings"
	"testing"

	"docspell.dev/docspell/chunk"
	"docspell.dev/docspell/cluster"
	"docspell.dev/docspell/literal"
	"docspell.dev/docspell/origin"
)

func buildChunk(t *testing.T, lines ...string) chunk.CheckableChunk {
	t.Helper()
	var set cluster.LiteralSet
	for i, l := range lines {
		lit, err := literal.New(literal.TripleSlash, "// "+l, i+1, 0)
		if err != nil {
			t.Fatalf("literal.New: %v", err)
		}
		set.AddAdjacent(lit)
	}
	return chunk.FromLiteralSet(set)
}

func TestSuggestReflowsLongParagraph(t *testing.T) {
	o, err := origin.TestOrigin(origin.TestGoSource)
	if err != nil {
		t.Fatalf("TestOrigin: %v", err)
	}
	c := buildChunk(t,
		"This is a very long sentence that keeps going and going well past the configured maximum line width so it must be rewrapped",
	)
	sugs, err := Suggest(o, c, Config{MaxLineWidth: 40})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(sugs) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(sugs))
	}
	for _, line := range splitLines(sugs[0].Replacement) {
		if len([]rune(line)) > 40 {
			t.Fatalf("line exceeds max width: %q", line)
		}
	}
}

func TestSuggestIsIdempotent(t *testing.T) {
	o, err := origin.TestOrigin(origin.TestGoSource)
	if err != nil {
		t.Fatalf("TestOrigin: %v", err)
	}
	c := buildChunk(t,
		"This is a very long sentence that keeps going and going well past the configured maximum line width",
	)
	first, err := Suggest(o, c, Config{MaxLineWidth: 40})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(first))
	}

	// Lines after the first carry their own "// " marker in the replacement;
	// buildChunk adds it back, so strip it to model the rewritten file.
	rewritten := splitLines(first[0].Replacement)
	for i := 1; i < len(rewritten); i++ {
		rewritten[i] = strings.TrimPrefix(rewritten[i], "// ")
	}
	c2 := buildChunk(t, rewritten...)
	second, err := Suggest(o, c2, Config{MaxLineWidth: 40})
	if err != nil {
		t.Fatalf("Suggest (second pass): %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("reflow is not idempotent: got %d further suggestions", len(second))
	}
}

func TestSuggestSkipsBlockComments(t *testing.T) {
	o, err := origin.TestOrigin(origin.TestGoSource)
	if err != nil {
		t.Fatalf("TestOrigin: %v", err)
	}
	lit, err := literal.New(literal.SlashAsterisk, "/* a very long line that would otherwise be reflowed if this were not a block comment */", 1, 0)
	if err != nil {
		t.Fatalf("literal.New: %v", err)
	}
	c := chunkFromOne(lit)
	sugs, err := Suggest(o, c, Config{MaxLineWidth: 20})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(sugs) != 0 {
		t.Fatalf("expected block comments to be skipped, got %d suggestions", len(sugs))
	}
}

func chunkFromOne(lit literal.TrimmedLiteral) chunk.CheckableChunk {
	set := cluster.FromLiteral(lit)
	return chunk.FromLiteralSet(set)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

package chunk

import (
	"testing"

	"docspell.dev/docspell/cluster"
	"docspell.dev/docspell/literal"
	"docspell.dev/docspell/span"
)

func buildSet(t *testing.T, lines ...string) cluster.LiteralSet {
	t.Helper()
	var set cluster.LiteralSet
	for i, l := range lines {
		lit, err := literal.New(literal.TripleSlash, "// "+l, i+1, 0)
		if err != nil {
			t.Fatalf("literal.New: %v", err)
		}
		set.AddAdjacent(lit)
	}
	return set
}

func TestFromLiteralSetContent(t *testing.T) {
	set := buildSet(t, "Itsyou!!", "Game-Over!!")
	c := FromLiteralSet(set)
	if c.AsStr() != "Itsyou!!\nGame-Over!!" {
		t.Fatalf("got %q", c.AsStr())
	}
	if c.FragmentCount() != 2 {
		t.Fatalf("got %d fragments, want 2", c.FragmentCount())
	}
}

func TestFindSpans(t *testing.T) {
	set := buildSet(t, "Itsyou!!", "Game-Over!!")
	c := FromLiteralSet(set)

	// "you" within "Itsyou!!" at content offsets 3..6
	spans, err := c.FindSpans(span.Range{Start: 3, End: 6})
	if err != nil {
		t.Fatalf("FindSpans: %v", err)
	}
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	got := spans[0]
	want := span.Span{Start: span.LineColumn{Line: 1, Column: 6}, End: span.LineColumn{Line: 1, Column: 8}}
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestFindCoveredLines(t *testing.T) {
	set := buildSet(t, "one", "two", "three")
	c := FromLiteralSet(set)
	lines := c.FindCoveredLines(span.Range{Start: 0, End: c.LenInChars()})
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %v", len(lines), lines)
	}
}

func TestToContentRangeRoundTrips(t *testing.T) {
	set := buildSet(t, "Itsyou!!", "Game-Over!!")
	c := FromLiteralSet(set)

	sp := span.Span{Start: span.LineColumn{Line: 1, Column: 6}, End: span.LineColumn{Line: 1, Column: 8}}
	r, err := c.ToContentRange(sp)
	if err != nil {
		t.Fatalf("ToContentRange: %v", err)
	}
	if got := c.AsStr()[r.Start:r.End]; got != "you" {
		t.Fatalf("got %q want %q", got, "you")
	}
}

func TestExtractLineLengths(t *testing.T) {
	set := buildSet(t, "abc", "de")
	c := FromLiteralSet(set)
	lens := c.ExtractLineLengths()
	if lens[1] != 3 || lens[2] != 2 {
		t.Fatalf("got %v", lens)
	}
}

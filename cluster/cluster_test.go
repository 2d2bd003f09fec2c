package cluster

import (
	"testing"

	"docspell.dev/docspell/literal"
)

func lit(t *testing.T, variant literal.CommentVariant, line int, text string) literal.TrimmedLiteral {
	t.Helper()
	l, err := literal.New(variant, text, line, 0)
	if err != nil {
		t.Fatalf("literal.New: %v", err)
	}
	return l
}

func TestClusterMergesAdjacentSameVariant(t *testing.T) {
	lits := []literal.TrimmedLiteral{
		lit(t, literal.TripleSlash, 1, "// one"),
		lit(t, literal.TripleSlash, 2, "// two"),
		lit(t, literal.TripleSlash, 3, "// three"),
	}
	sets := Cluster(lits)
	if len(sets) != 1 {
		t.Fatalf("got %d sets, want 1", len(sets))
	}
	if sets[0].Len() != 3 {
		t.Fatalf("got %d literals, want 3", sets[0].Len())
	}
	first, last := sets[0].Coverage()
	if first != 1 || last != 3 {
		t.Fatalf("got coverage %d..%d, want 1..3", first, last)
	}
}

func TestClusterBreaksOnGap(t *testing.T) {
	lits := []literal.TrimmedLiteral{
		lit(t, literal.TripleSlash, 1, "// one"),
		lit(t, literal.TripleSlash, 3, "// three"),
	}
	sets := Cluster(lits)
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
}

func TestClusterBreaksOnVariantChange(t *testing.T) {
	lits := []literal.TrimmedLiteral{
		lit(t, literal.TripleSlash, 1, "// one"),
		lit(t, literal.SlashSlash, 2, "// two"),
	}
	sets := Cluster(lits)
	if len(sets) != 2 {
		t.Fatalf("got %d sets, want 2", len(sets))
	}
}

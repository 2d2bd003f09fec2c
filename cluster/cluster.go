// Package cluster groups adjacent, same-variant TrimmedLiterals emitted by
// package literal into LiteralSets, the unit CheckableChunk construction
// consumes.
package cluster

import (
	"docspell.dev/docspell/literal"
)

// LiteralSet is a maximal run of TrimmedLiterals that belong to the same
// logical comment block: same CommentVariant, consecutive source lines, no
// gap.
type LiteralSet struct {
	literals []literal.TrimmedLiteral
	// coverage is the inclusive [firstLine, lastLine] range the set spans.
	coverage [2]int
}

// FromLiteral starts a new LiteralSet containing only lit.
func FromLiteral(lit literal.TrimmedLiteral) LiteralSet {
	return LiteralSet{
		literals: []literal.TrimmedLiteral{lit},
		coverage: [2]int{lit.Span().Start.Line, lit.Span().End.Line},
	}
}

// Literals returns the set's members, in source order.
func (s LiteralSet) Literals() []literal.TrimmedLiteral { return s.literals }

// Len returns the number of literals in the set.
func (s LiteralSet) Len() int { return len(s.literals) }

// Coverage returns the inclusive first/last line the set spans.
func (s LiteralSet) Coverage() (first, last int) { return s.coverage[0], s.coverage[1] }

// AddAdjacent appends lit to s if it directly continues the set: same
// CommentVariant, and on the line immediately following the set's current
// last line. It reports whether lit was consumed.
func (s *LiteralSet) AddAdjacent(lit literal.TrimmedLiteral) bool {
	if len(s.literals) == 0 {
		*s = FromLiteral(lit)
		return true
	}
	last := s.literals[len(s.literals)-1]
	if lit.Variant() != last.Variant() {
		return false
	}
	if lit.Span().Start.Line != s.coverage[1]+1 {
		return false
	}
	s.literals = append(s.literals, lit)
	s.coverage[1] = lit.Span().End.Line
	return true
}

// Cluster groups a flat, source-ordered slice of literals into maximal
// adjacent runs.
func Cluster(lits []literal.TrimmedLiteral) []LiteralSet {
	var sets []LiteralSet
	for _, lit := range lits {
		if len(sets) > 0 {
			last := &sets[len(sets)-1]
			if last.AddAdjacent(lit) {
				continue
			}
		}
		sets = append(sets, FromLiteral(lit))
	}
	return sets
}

// Package chunk builds CheckableChunks out of clustered literals: a
// CheckableChunk is the flattened, checkable text of one comment block,
// together with the coordinate mapping needed to translate positions found
// in that flattened text back to LineColumns in the original source file.
package chunk

import (
	"fmt"
	"strings"

	"docspell.dev/docspell/cluster"
	"docspell.dev/docspell/errtag"
	"docspell.dev/docspell/literal"
	"docspell.dev/docspell/span"
)

// fragment records that chunk content in [Range.Start, Range.End) was
// copied verbatim from the original file at Span, with no markers or
// trimmed whitespace in between.
type fragment struct {
	Range span.Range
	Span  span.Span
	// Indent is the column the fragment's source line(s) started at before
	// their comment marker was trimmed away (literal.TrimmedLiteral.IndentColumn).
	Indent int
}

// CheckableChunk is the content of one LiteralSet, flattened to a single
// string with per-fragment source mapping, ready for a checker (spell,
// grammar, markdown-aware) to scan.
type CheckableChunk struct {
	content   string
	runes     []rune
	fragments []fragment
	variant   literal.CommentVariant
}

// FromLiteralSet flattens set's literals into one CheckableChunk. Each
// literal's trimmed content becomes one fragment; fragments are joined by a
// single unmapped newline representing the physical line break between
// source comment lines.
func FromLiteralSet(set cluster.LiteralSet) CheckableChunk {
	var b strings.Builder
	var fragments []fragment
	cursor := 0
	variant := literal.SlashSlash
	for i, lit := range set.Literals() {
		if i == 0 {
			variant = lit.Variant()
		}
		if i > 0 {
			b.WriteByte('\n')
			cursor++
		}
		text := lit.Content()
		runes := []rune(text)
		start := cursor
		end := start + len(runes)
		fragments = append(fragments, fragment{Range: span.Range{Start: start, End: end}, Span: lit.Span(), Indent: lit.IndentColumn()})
		b.WriteString(text)
		cursor = end
	}
	full := b.String()
	return CheckableChunk{
		content:   full,
		runes:     []rune(full),
		fragments: fragments,
		variant:   variant,
	}
}

// AsStr returns the chunk's full flattened content.
func (c CheckableChunk) AsStr() string { return c.content }

// LenInChars returns the character length of the chunk's content.
func (c CheckableChunk) LenInChars() int { return len(c.runes) }

// Variant reports the CommentVariant the chunk's literals share.
func (c CheckableChunk) Variant() literal.CommentVariant { return c.variant }

// FragmentCount returns the number of source fragments making up the chunk.
func (c CheckableChunk) FragmentCount() int { return len(c.fragments) }

// Iter yields each fragment's content Range paired with its source Span,
// in order.
func (c CheckableChunk) Iter(yield func(span.Range, span.Span) bool) {
	for _, f := range c.fragments {
		if !yield(f.Range, f.Span) {
			return
		}
	}
}

// FindSpans returns the source Spans (clipped to r) of every fragment that
// r overlaps, in order. Each returned span corresponds exactly to the
// portion of r that fell within that fragment.
func (c CheckableChunk) FindSpans(r span.Range) ([]span.Span, error) {
	var out []span.Span
	for _, f := range c.fragments {
		lo := max(r.Start, f.Range.Start)
		hi := min(r.End, f.Range.End)
		if lo >= hi {
			continue
		}
		localStart := lo - f.Range.Start
		localEnd := hi - f.Range.Start // exclusive
		fragmentText := string(c.runes[f.Range.Start:f.Range.End])
		subStart := span.LineColumnAt(fragmentText, f.Span.Start, localStart)
		subEnd := span.LineColumnAt(fragmentText, f.Span.Start, localEnd-1)
		out = append(out, span.Span{Start: subStart, End: subEnd})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("chunk: range %v does not overlap any fragment: %w", r, errtag.ErrMappingNotFound)
	}
	return out, nil
}

// FindCoveredSpans returns the full (unclipped) source Span of every
// fragment that r overlaps at all.
func (c CheckableChunk) FindCoveredSpans(r span.Range) []span.Span {
	var out []span.Span
	for _, f := range c.fragments {
		if f.Range.Start < r.End && r.Start < f.Range.End {
			out = append(out, f.Span)
		}
	}
	return out
}

// FindCoveredLines returns the sorted, de-duplicated set of source line
// numbers touched by any fragment that r overlaps.
func (c CheckableChunk) FindCoveredLines(r span.Range) []int {
	seen := map[int]bool{}
	var lines []int
	for _, sp := range c.FindCoveredSpans(r) {
		for l := sp.Start.Line; l <= sp.End.Line; l++ {
			if !seen[l] {
				seen[l] = true
				lines = append(lines, l)
			}
		}
	}
	return sortInts(lines)
}

// ExtractLineLengths returns, for every source line touched by this chunk,
// the character length of that line's content within the chunk (reflow
// checks that every source line it rewraps has an entry here).
func (c CheckableChunk) ExtractLineLengths() map[int]int {
	out := map[int]int{}
	for _, f := range c.fragments {
		if !f.Span.IsMultiline() {
			n, _ := f.Span.OneLineLen()
			out[f.Span.Start.Line] = n
			continue
		}
		fragmentText := string(c.runes[f.Range.Start:f.Range.End])
		lineStart := 0
		line := f.Span.Start.Line
		runes := []rune(fragmentText)
		for i, r := range runes {
			if r == '\n' {
				out[line] = i - lineStart
				line++
				lineStart = i + 1
			}
		}
		out[line] = len(runes) - lineStart
	}
	return out
}

// IndentColumn returns the indentation column of the fragment covering
// line, i.e. the column its raw source line started at before the comment
// marker was trimmed away.
func (c CheckableChunk) IndentColumn(line int) (int, bool) {
	for _, f := range c.fragments {
		if f.Span.CoversLine(line) {
			return f.Indent, true
		}
	}
	return 0, false
}

// ToContentRange converts a Span expressed in original-file coordinates
// into the Range within c.AsStr() it corresponds to, provided sp is fully
// covered by one of c's fragments' line extents.
func (c CheckableChunk) ToContentRange(sp span.Span) (span.Range, error) {
	if c.FragmentCount() == 0 {
		return span.Range{}, fmt.Errorf("chunk: chunk contains 0 fragments")
	}
	for _, f := range c.fragments {
		if !(f.Span.Start.Line <= sp.Start.Line && sp.End.Line <= f.Span.End.Line) {
			continue
		}
		fragmentText := string(c.runes[f.Range.Start:f.Range.End])
		r, err := span.ExtractSubRangeFromSpan(fragmentText, f.Span, span.Range{Start: 0, End: len([]rune(fragmentText))}, sp)
		if err != nil {
			continue
		}
		return span.Range{Start: r.Start + f.Range.Start, End: r.End + f.Range.Start}, nil
	}
	return span.Range{}, fmt.Errorf("chunk: no fragment's span covers %v: %w", sp, errtag.ErrMappingNotFound)
}

func sortInts(xs []int) []int {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
	return xs
}

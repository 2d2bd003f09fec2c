// Package patch turns Suggestions into BandAids, splits multi-line
// BandAids into single-line Patches, and applies a set of non-overlapping
// Patches to a source buffer with a carbon-copy byte walk, writing the
// result atomically.
package patch

import (
	"fmt"

	"docspell.dev/docspell/errtag"
	"docspell.dev/docspell/span"
	"docspell.dev/docspell/suggestion"
)

// Kind distinguishes the three ways a BandAid can alter source text.
type Kind int

const (
	// Replace substitutes the text covered by Span with Text.
	Replace Kind = iota
	// Insert adds Text at a single LineColumn point, without removing
	// anything.
	Insert
	// Delete removes the text covered by Span entirely.
	Delete
)

// BandAid is one coordinate-addressed edit to source text. It reconciles
// two shapes of the same concept found in the retrieved reference material:
// a simple {span, replacement} pair, and a three-way Replacement/
// Injection/Deletion tag — BandAid here is the tagged union, with Replace
// carrying the {span, replacement} pair.
type BandAid struct {
	Kind Kind
	// Span is used by Replace and Delete.
	Span span.Span
	// At is used by Insert.
	At span.LineColumn
	// Text is the new content for Replace and Insert; empty for Delete.
	Text string
}

// FromSuggestion converts a checker Suggestion directly into a BandAid. If
// the suggestion's span covers more than one source line, use Split instead
// to obtain one BandAid per affected line.
func FromSuggestion(s suggestion.Suggestion) BandAid {
	return BandAid{Kind: Replace, Span: s.Span, Text: s.Replacement}
}

// Split lowers a suggestion whose replacement text may span a different
// number of lines than its original Span into one BandAid per affected
// source line: interior lines become Replace, a shrinking replacement
// yields a trailing Delete, and a growing one yields a trailing Insert.
// This mirrors the original line-splitting behavior required to apply a
// reflow suggestion (which routinely changes line counts) without
// corrupting the bytes surrounding the edited span.
func Split(s suggestion.Suggestion) ([]BandAid, error) {
	if !s.Span.IsMultiline() {
		return []BandAid{FromSuggestion(s)}, nil
	}

	origLines := s.Span.End.Line - s.Span.Start.Line + 1
	newLines := splitLines(s.Replacement)

	var out []BandAid
	for i := 0; i < origLines; i++ {
		line := s.Span.Start.Line + i
		startCol := 0
		if i == 0 {
			startCol = s.Span.Start.Column
		}
		endCol := -1 // sentinel: end of line
		if i == origLines-1 {
			endCol = s.Span.End.Column
		}
		lineSpan := span.Span{
			Start: span.LineColumn{Line: line, Column: startCol},
			End:   span.LineColumn{Line: line, Column: endColOrLineEnd(endCol)},
		}
		switch {
		case i < len(newLines):
			out = append(out, BandAid{Kind: Replace, Span: lineSpan, Text: newLines[i]})
		default:
			out = append(out, BandAid{Kind: Delete, Span: lineSpan})
		}
	}
	for i := origLines; i < len(newLines); i++ {
		out = append(out, BandAid{
			Kind: Insert,
			At:   span.LineColumn{Line: s.Span.End.Line, Column: s.Span.End.Column + 1},
			Text: "\n" + newLines[i],
		})
	}
	return out, nil
}

func endColOrLineEnd(c int) int {
	if c < 0 {
		return 1 << 30 // clamped against the real line length by ApplyPatches
	}
	return c
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
	out = append(out, s[start:])
	return out
}

// Patch is a BandAid narrowed to the two shapes the byte-walking applier
// actually needs once a Delete has been lowered to a Replace with empty
// text.
type Patch struct {
	Kind PatchKind
	// For Replace: the (inclusive-inclusive) Span being replaced.
	Span span.Span
	// For Insert: the point new text is spliced in at.
	At span.LineColumn
	Text string
}

type PatchKind int

const (
	PatchReplace PatchKind = iota
	PatchInsert
)

// FromBandAid lowers b to a Patch, turning Delete into a Replace with empty
// text.
func FromBandAid(b BandAid) Patch {
	switch b.Kind {
	case Insert:
		return Patch{Kind: PatchInsert, At: b.At, Text: b.Text}
	case Delete:
		return Patch{Kind: PatchReplace, Span: b.Span, Text: ""}
	default:
		return Patch{Kind: PatchReplace, Span: b.Span, Text: b.Text}
	}
}

// checkOverlap reports errtag.ErrPatchOverlap if any two Replace patches in
// patches cover overlapping source spans once sorted by start position.
func checkOverlap(patches []Patch) error {
	type bound struct {
		start, end span.LineColumn
	}
	var bounds []bound
	for _, p := range patches {
		if p.Kind != PatchReplace {
			continue
		}
		bounds = append(bounds, bound{start: p.Span.Start, end: p.Span.End})
	}
	for i := range bounds {
		for j := i + 1; j < len(bounds); j++ {
			a, b := bounds[i], bounds[j]
			// Inclusive-interval overlap: a.start <= b.end && b.start <= a.end.
			if !b.end.Less(a.start) && !a.end.Less(b.start) {
				return fmt.Errorf("%w: patch at %v overlaps patch at %v", errtag.ErrPatchOverlap, a.start, b.start)
			}
		}
	}
	return nil
}

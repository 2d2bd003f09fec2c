// Package reflow re-wraps paragraph text to a maximum line width while
// never splitting inside a link, emphasis run, inline code span, or raw
// HTML — the same unbreakable-range model the markdown overlay computes
// ranges for, applied here to text that has not yet been erased.
package reflow

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"docspell.dev/docspell/chunk"
	"docspell.dev/docspell/literal"
	"docspell.dev/docspell/origin"
	"docspell.dev/docspell/span"
	"docspell.dev/docspell/suggestion"
)

var parser = goldmark.New(goldmark.WithExtensions(extension.Table))

// unbreakable is a rune range within a paragraph's text that must never be
// split by the line-wrapper: the source text of a link, emphasis run,
// inline code span, or raw HTML node.
type unbreakable struct {
	start, end int
}

// Indentation describes how a physical output line should be prefixed:
// Offset spaces of generic indentation, followed by an optional Literal
// marker (e.g. "// ") reconstructing the comment syntax.
type Indentation struct {
	Offset  int
	Literal string
}

// String renders the indentation in full.
func (i Indentation) String() string {
	return strings.Repeat(" ", i.Offset) + i.Literal
}

// StringSkipFirst renders the indentation, skipping its first n characters
// — used for a paragraph's very first output line, which inherits
// indentation from text already present before the reflowed span begins.
func (i Indentation) StringSkipFirst(n int) string {
	full := i.String()
	if n >= len(full) {
		return ""
	}
	return full[n:]
}

// Config controls a reflow pass.
type Config struct {
	MaxLineWidth int
}

// DefaultMaxLineWidth matches common doc-comment wrap width conventions.
const DefaultMaxLineWidth = 80

// Suggest reflows every eligible paragraph of c's content and returns one
// Suggestion per paragraph whose rewrapped form differs from the original.
// Tables and fenced/indented code blocks are never reflowed.
func Suggest(o origin.Origin, c chunk.CheckableChunk, cfg Config) ([]suggestion.Suggestion, error) {
	if cfg.MaxLineWidth <= 0 {
		cfg.MaxLineWidth = DefaultMaxLineWidth
	}
	// SlashAsterisk (block) comments keep their own interior formatting
	// conventions and are not reflowed, mirroring the original's decision
	// to skip that comment variant entirely.
	if c.Variant() == literal.SlashAsterisk {
		return nil, nil
	}

	content := c.AsStr()
	src := []byte(content)
	doc := parser.Parser().Parse(text.NewReader(src))

	var out []suggestion.Suggestion
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.Kind() {
		case gast.KindParagraph:
			sg, ok, err := reflowParagraph(o, c, n.(*gast.Paragraph), src, cfg)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, sg)
			}
		default:
			// Headings, lists, tables, and code blocks are left as-is;
			// only plain paragraphs are reflowed.
		}
	}
	return out, nil
}

func reflowParagraph(o origin.Origin, c chunk.CheckableChunk, p *gast.Paragraph, src []byte, cfg Config) (suggestion.Suggestion, bool, error) {
	lines := p.Lines()
	if lines == nil || lines.Len() == 0 {
		return suggestion.Suggestion{}, false, nil
	}
	first := lines.At(0)
	last := lines.At(lines.Len() - 1)
	byteRange := span.Range{Start: first.Start, End: last.Stop}

	runeStart := len([]rune(string(src[:byteRange.Start])))
	runeEnd := len([]rune(string(src[:byteRange.End])))
	original := string([]rune(content(src))[runeStart:runeEnd])

	chunkRange := span.Range{Start: runeStart, End: runeEnd}
	spans := c.FindCoveredSpans(chunkRange)
	if len(spans) == 0 {
		return suggestion.Suggestion{}, false, nil
	}
	full := span.Span{Start: spans[0].Start, End: spans[len(spans)-1].End}

	for _, line := range c.FindCoveredLines(chunkRange) {
		if _, ok := c.ExtractLineLengths()[line]; !ok {
			return suggestion.Suggestion{}, false, fmt.Errorf("reflow: missing line length for source line %d", line)
		}
	}

	indentColumn, _ := c.IndentColumn(full.Start.Line)
	ind := Indentation{Offset: indentColumn, Literal: c.Variant().Prefix()}

	firstLineWidth := cfg.MaxLineWidth - full.Start.Column
	if firstLineWidth < 1 {
		firstLineWidth = 1
	}
	indentLen := len([]rune(ind.String()))
	otherLineWidth := cfg.MaxLineWidth - indentLen
	if otherLineWidth < 1 {
		otherLineWidth = 1
	}

	unb := unbreakableRanges(p, src, runeStart)
	rewrapped := reflowInner(original, unb, ind, firstLineWidth, otherLineWidth)

	// The first output line continues text already present in the source
	// (the indentation and marker before full.Start are untouched); only
	// recover leftover indentation here if, unusually, less of it than
	// ind.String() normally covers was already consumed before full.Start.
	skip := full.Start.Column
	if skip > indentLen {
		skip = indentLen
	}
	if leading := ind.StringSkipFirst(skip); leading != "" {
		rewrapped = leading + rewrapped
	}

	if c.Variant() == literal.SlashAsterisk {
		rewrapped += c.Variant().Suffix()
	}

	// Lines after the first are replaced whole, marker included, so compare
	// against the paragraph as those lines read in the source.
	if rewrapped == strings.ReplaceAll(original, "\n", "\n"+ind.String()) {
		return suggestion.Suggestion{}, false, nil
	}

	return suggestion.Suggestion{
		Origin:      o,
		Span:        full,
		Replacement: rewrapped,
		CheckerName: "reflow",
		Message:     "paragraph can be reflowed to fit the configured line width",
	}, true, nil
}

func content(src []byte) []rune { return []rune(string(src)) }

func unbreakableRanges(p *gast.Paragraph, src []byte, base int) []unbreakable {
	var out []unbreakable
	var walk func(gast.Node)
	walk = func(n gast.Node) {
		switch v := n.(type) {
		case *gast.Link, *gast.AutoLink, *gast.CodeSpan, *gast.RawHTML, *gast.Emphasis:
			r := nodeRuneRange(v, src)
			if r.end > r.start {
				out = append(out, unbreakable{start: r.start - base, end: r.end - base})
			}
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(p)
	return out
}

func nodeRuneRange(n gast.Node, src []byte) unbreakable {
	start, stop := -1, -1
	var walk func(gast.Node)
	walk = func(m gast.Node) {
		if t, ok := m.(*gast.Text); ok {
			if start == -1 || t.Segment.Start < start {
				start = t.Segment.Start
			}
			if t.Segment.Stop > stop {
				stop = t.Segment.Stop
			}
		}
		if h, ok := m.(*gast.RawHTML); ok {
			for i := 0; i < h.Segments.Len(); i++ {
				seg := h.Segments.At(i)
				if start == -1 || seg.Start < start {
					start = seg.Start
				}
				if seg.Stop > stop {
					stop = seg.Stop
				}
			}
		}
		for c := m.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(n)
	if start == -1 {
		return unbreakable{}
	}
	return unbreakable{
		start: len([]rune(string(src[:start]))),
		end:   len([]rune(string(src[:stop]))),
	}
}

// reflowInner re-wraps s (a single paragraph's already-joined text) so its
// first line fits firstLineWidth and every following line fits
// otherLineWidth, gluing words together across any unbreakable range so
// that no split falls strictly inside one. Every line after the first is
// prefixed with ind's rendered indentation and comment marker, since the
// BandAid each such line becomes replaces the entire physical line,
// markers and all.
func reflowInner(s string, unbreakableRanges []unbreakable, ind Indentation, firstLineWidth, otherLineWidth int) string {
	runes := []rune(strings.Join(strings.Fields(s), " "))
	words := glueWords(runes, unbreakableRanges)

	var b strings.Builder
	lineLen := 0
	maxWidth := firstLineWidth
	for i, w := range words {
		wl := len([]rune(w))
		if i > 0 {
			if lineLen+1+wl > maxWidth && lineLen > 0 {
				b.WriteByte('\n')
				b.WriteString(ind.String())
				lineLen = 0
				maxWidth = otherLineWidth
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += wl
	}
	return b.String()
}

// glueWords splits normalized text on spaces, but re-joins any sequence of
// words that an unbreakable range spans, so reflowInner never introduces a
// line break inside e.g. a markdown link.
func glueWords(runes []rune, ranges []unbreakable) []string {
	// Re-derive word boundaries over the space-joined text, then merge any
	// boundary that an unbreakable range straddles.
	var bounds [][2]int
	start := -1
	for i, r := range runes {
		if r == ' ' {
			if start != -1 {
				bounds = append(bounds, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		bounds = append(bounds, [2]int{start, len(runes)})
	}

	merged := make([]bool, len(bounds))
	for _, ub := range ranges {
		for i := range bounds {
			if i+1 >= len(bounds) {
				continue
			}
			// if the boundary's gap (the space) falls inside [ub.start,ub.end), merge
			gapStart, gapEnd := bounds[i][1], bounds[i+1][0]
			if gapStart >= ub.start && gapEnd <= ub.end {
				merged[i] = true
			}
		}
	}

	var words []string
	i := 0
	for i < len(bounds) {
		end := bounds[i][1]
		j := i
		for j < len(merged) && merged[j] {
			end = bounds[j+1][1]
			j++
		}
		words = append(words, string(runes[bounds[i][0]:end]))
		i = j + 1
	}
	return words
}

// Package markdown erases CommonMark markup from a CheckableChunk's content,
// leaving only the "plain" prose a spell/grammar checker should see, while
// recording, for each run of that plain text copied or aliased from the
// markup, the character range of the original content it was derived from.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"docspell.dev/docspell/errtag"
	"docspell.dev/docspell/span"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Footnote, extension.Table))

// SourceRange identifies where one run of plain-overlay text came from.
// Direct means it is a character-for-character copy of the condensed range
// [Start, End) of the original markdown; Alias means the plain text is a
// synthetic placeholder token (used for inline code spans) standing in for
// the original range, so character-for-character checkers don't trip on
// code syntax but position-sensitive consumers can still recover the
// original span.
type SourceRange struct {
	Kind  SourceRangeKind
	Range span.Range // range within the original (condensed) chunk content
}

// SourceRangeKind distinguishes SourceRange's two forms.
type SourceRangeKind int

const (
	Direct SourceRangeKind = iota
	Alias
)

// ApplyOffset shifts r by delta characters of plain-text position; used
// when composing mapping entries as the overlay is built incrementally.
func (r SourceRange) ApplyOffset(delta int) SourceRange {
	return SourceRange{Kind: r.Kind, Range: span.Range{Start: r.Range.Start + delta, End: r.Range.End + delta}}
}

// mapping is one (plainRange -> SourceRange) entry.
type mapping struct {
	plain span.Range
	src   SourceRange
}

// PlainOverlay is markdown-erased plain text derived from one chunk's
// content, plus the mapping needed to translate plain-text ranges back to
// ranges of the original chunk content.
type PlainOverlay struct {
	plain    string
	mappings []mapping
}

// Ignores toggles optional erasure behaviors.
type Ignores struct {
	// FootnoteReferences is carried for configuration; the overlay drops
	// footnote reference markers ([^1]) entirely whether it is set or not,
	// so the reference text never reaches the plain overlay.
	FootnoteReferences bool
}

// maxAliasLen bounds the placeholder token substituted for an inline code
// span, so a long code span yields a short placeholder in the plain text.
const maxAliasLen = 16

// PlainStr returns the erased plain text.
func (o PlainOverlay) PlainStr() string { return o.plain }

// ErasePlain parses condensed (the full chunk content) as CommonMark and
// returns the plain-text overlay with its source mapping.
func ErasePlain(condensed string, ignores Ignores) (PlainOverlay, error) {
	src := []byte(condensed)
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	b := builder{src: src, ignores: ignores}
	b.walk(doc, 0, false)
	b.flushPendingNewline()

	plain := strings.TrimRight(b.out.String(), "\n")
	trimmed := len(b.out.String()) - len(plain)
	mappings := b.mappings
	if trimmed > 0 && len(mappings) > 0 {
		last := &mappings[len(mappings)-1]
		if last.plain.End > len(plain) {
			last.plain.End = len(plain)
		}
	}
	return PlainOverlay{plain: plain, mappings: mappings}, nil
}

type builder struct {
	src      []byte
	ignores  Ignores
	out      strings.Builder
	mappings []mapping
	// codeBlockDepth is raised while a code block is being erased; a code
	// block's contents are never walked, regardless of depth.
	codeBlockDepth int
	pendingBreak   bool
}

var noScopeHTML = regexp.MustCompile(`(?i)^</?(br|hr|img|p|div|span)[ />]`)

// isHTMLTagOnNoScopeList reports whether an inline/raw HTML tag is simple
// enough to pass through the overlay untouched (rather than being erased)
// because it carries no text content of its own.
func isHTMLTagOnNoScopeList(tag string) bool {
	return noScopeHTML.MatchString(tag)
}

func (b *builder) writeDirect(r span.Range, text string) {
	if text == "" {
		return
	}
	// goldmark positions are byte offsets; mappings hold character offsets.
	r = span.Range{Start: utf8.RuneCount(b.src[:r.Start]), End: utf8.RuneCount(b.src[:min(r.End, len(b.src))])}
	start := len([]rune(b.out.String()))
	b.out.WriteString(text)
	end := len([]rune(b.out.String()))
	b.mappings = append(b.mappings, mapping{plain: span.Range{Start: start, End: end}, src: SourceRange{Kind: Direct, Range: r}})
}

func (b *builder) writeAlias(r span.Range, token string) {
	if len(token) > maxAliasLen {
		token = token[:maxAliasLen]
	}
	r = span.Range{Start: utf8.RuneCount(b.src[:r.Start]), End: utf8.RuneCount(b.src[:min(r.End, len(b.src))])}
	start := len([]rune(b.out.String()))
	b.out.WriteString(token)
	end := len([]rune(b.out.String()))
	b.mappings = append(b.mappings, mapping{plain: span.Range{Start: start, End: end}, src: SourceRange{Kind: Alias, Range: r}})
}

func (b *builder) flushPendingNewline() {
	if b.pendingBreak {
		b.out.WriteByte('\n')
		b.pendingBreak = false
	}
}

func (b *builder) emitBreak() {
	b.pendingBreak = true
}

type linesNode interface {
	Lines() *text.Segments
}

// rangeOf computes the byte range of n within src. Block nodes expose their
// extent directly via Lines(); inline nodes (CodeSpan, RawHTML) don't, so
// their range is derived from the span of their own Text/RawHTML children.
func rangeOf(n gast.Node, src []byte) span.Range {
	if ln, ok := n.(linesNode); ok {
		if lines := ln.Lines(); lines != nil && lines.Len() > 0 {
			first := lines.At(0)
			last := lines.At(lines.Len() - 1)
			return span.Range{Start: first.Start, End: last.Stop}
		}
	}
	start, stop := -1, -1
	var walk func(gast.Node)
	walk = func(m gast.Node) {
		switch v := m.(type) {
		case *gast.Text:
			if start == -1 || v.Segment.Start < start {
				start = v.Segment.Start
			}
			if v.Segment.Stop > stop {
				stop = v.Segment.Stop
			}
		case *gast.RawHTML:
			for i := 0; i < v.Segments.Len(); i++ {
				seg := v.Segments.At(i)
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
		return span.Range{}
	}
	return span.Range{Start: start, End: stop}
}

// walk recurses over the goldmark AST, emitting plain text + mappings.
// linkTextOnly, when true, indicates we are inside a Link/Image whose URL
// must be skipped (only the link text, if any, is emitted).
func (b *builder) walk(n gast.Node, depth int, linkTextOnly bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gast.Text:
			seg := node.Segment
			b.flushPendingNewline()
			b.writeDirect(span.Range{Start: seg.Start, End: seg.Stop}, string(seg.Value(b.src)))
			if node.SoftLineBreak() {
				b.out.WriteByte(' ')
			}
			if node.HardLineBreak() {
				b.emitBreak()
			}
		case *gast.CodeSpan:
			r := rangeOf(node, b.src)
			token := codeAliasToken(node, b.src)
			b.flushPendingNewline()
			b.writeAlias(r, token)
		case *gast.AutoLink:
			// Autolinks contribute nothing to plain prose.
		case *gast.Link:
			b.flushPendingNewline()
			b.walk(node, depth+1, true)
		case *gast.Image:
			// The image's alt text and URL contribute nothing to plain
			// prose, but a title (the quoted string after the URL) is
			// prose and is tracked as a direct range. Image carries no
			// Lines() of its own, so the title's byte offset is located by
			// searching the enclosing block's source window, which does.
			if title := node.Title; len(title) > 0 {
				window := rangeOf(n, b.src)
				segment := b.src[window.Start:min(window.End, len(b.src))]
				if idx := bytes.Index(segment, title); idx >= 0 {
					r := span.Range{Start: window.Start + idx, End: window.Start + idx + len(title)}
					b.flushPendingNewline()
					b.writeDirect(r, string(title))
				}
			}
		case *extast.FootnoteLink:
			if !b.ignores.FootnoteReferences {
				// The reference marker itself (e.g. "[^1]") carries no
				// prose; it is always dropped from the plain overlay,
				// with surrounding text left to flow naturally.
			}
		case *gast.RawHTML, *gast.HTMLBlock:
			r := rangeOf(node, b.src)
			raw := string(b.src[r.Start:min(r.End, len(b.src))])
			if isHTMLTagOnNoScopeList(raw) {
				b.flushPendingNewline()
				b.writeDirect(r, raw)
			}
		case *gast.FencedCodeBlock, *gast.CodeBlock:
			// TODO: a fenced block whose info string names the host
			// language (e.g. ```go) recurses back into this pipeline in
			// the original; not implemented here, so such blocks are
			// erased like any other code fence rather than recursively
			// checked.
			b.codeBlockDepth++
			b.emitBreak()
			b.codeBlockDepth--
		case *gast.ThematicBreak:
			b.emitBreak()
		case *extast.Table:
			// Table text is never part of the plain overlay.
			b.emitBreak()
		case *gast.Paragraph, *gast.Heading, *gast.ListItem, *gast.TextBlock:
			b.walk(node, depth+1, linkTextOnly)
			b.emitBreak()
		default:
			b.walk(node, depth+1, linkTextOnly)
		}
	}
}

func codeAliasToken(n *gast.CodeSpan, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	raw := sb.String()
	var out strings.Builder
	for _, r := range raw {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			out.WriteRune(r)
			if out.Len() >= maxAliasLen {
				break
			}
		}
	}
	if out.Len() == 0 {
		return "x"
	}
	return out.String()
}

// FindSpans composes the mapping held by o with a chunk-level translator:
// given a Range in o's plain text, it returns the corresponding Range(s) in
// the condensed chunk content the plain text was erased from, skipping any
// Alias entries (which have no one-to-one correspondence with source
// characters beyond their placeholder token).
func (o PlainOverlay) FindSpans(r span.Range) ([]span.Range, error) {
	var out []span.Range
	for _, m := range o.mappings {
		if m.src.Kind == Alias {
			continue
		}
		lo := max(r.Start, m.plain.Start)
		hi := min(r.End, m.plain.End)
		if lo >= hi {
			continue
		}
		localStart := lo - m.plain.Start
		localEnd := hi - m.plain.Start
		out = append(out, span.Range{Start: m.src.Range.Start + localStart, End: m.src.Range.Start + localEnd})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("markdown: range %v does not map to any source range: %w", r, errtag.ErrMappingNotFound)
	}
	return out, nil
}

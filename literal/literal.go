// Package literal extracts trimmed comment literals from Go source: the
// content of a single comment line with its marker and exactly one
// separating space removed, together with the Span it occupies in the
// original file. This is the finest-grained unit the rest of the pipeline
// operates on.
package literal

import (
	"fmt"
	"strings"

	"docspell.dev/docspell/span"
)

// CommentVariant distinguishes the syntactic form a comment line was
// written in, since each form trims differently and reflows with a
// different prefix/suffix.
type CommentVariant int

const (
	// TripleSlash is a `///`-style doc comment line attached to a
	// declaration (a godoc comment immediately preceding it).
	TripleSlash CommentVariant = iota
	// DoubleSlashEM is a package-level doc comment (the comment block
	// immediately preceding a `package` clause), the Go analogue of an
	// inner/module-level doc attribute.
	DoubleSlashEM
	// SlashSlash is an ordinary, non-doc line comment.
	SlashSlash
	// SlashAsterisk is a `/* ... */` block comment.
	SlashAsterisk
	// MacroDocEqString exists for fidelity with the abstract comment-
	// variant model only: Go has no attribute-style doc string literal
	// (`#[doc = "..."]`), so this variant is never produced by this
	// package's own extraction, but switches over CommentVariant stay
	// exhaustive against it.
	MacroDocEqString
)

func (v CommentVariant) String() string {
	switch v {
	case TripleSlash:
		return "triple_slash"
	case DoubleSlashEM:
		return "double_slash_em"
	case SlashSlash:
		return "slash_slash"
	case SlashAsterisk:
		return "slash_asterisk"
	case MacroDocEqString:
		return "macro_doc_eq_string"
	default:
		return "unknown"
	}
}

// Prefix returns the marker bytes that open a comment of this variant. Go
// does not distinguish doc from non-doc line comments syntactically (both
// use `//`); the variant's prefix marker is the same for all three
// `//`-based variants, and only the call site's positional context
// (attached to a declaration, attached to a package clause, or neither)
// decides which variant tag applies.
func (v CommentVariant) Prefix() string {
	switch v {
	case TripleSlash, DoubleSlashEM, SlashSlash:
		return "// "
	case SlashAsterisk:
		return "/* "
	default:
		return ""
	}
}

// Suffix returns the marker bytes that close a comment of this variant, if
// any (only SlashAsterisk has one).
func (v CommentVariant) Suffix() string {
	if v == SlashAsterisk {
		return " */"
	}
	return ""
}

// TrimmedLiteral is one line of comment content with its marker and a
// single separating space stripped, and the Span it occupies in the
// original file it was extracted from.
type TrimmedLiteral struct {
	variant CommentVariant
	content string
	span    span.Span
	// leadingTrimmed is how many characters of marker/whitespace were
	// stripped from the start of the raw line to produce content; needed
	// to translate content-relative offsets back to file columns.
	leadingTrimmed int
}

// New builds a TrimmedLiteral by trimming variant's prefix (and suffix, for
// block comments) from rawLine, which must be the raw source text for line
// lineNo (1-indexed), starting at startColumn (0-indexed).
func New(variant CommentVariant, rawLine string, lineNo, startColumn int) (TrimmedLiteral, error) {
	rest := rawLine
	trimmed := 0

	prefix := variant.Prefix()
	bare := strings.TrimPrefix(rest, strings.TrimRight(prefix, " "))
	if bare == rest && prefix != "" {
		return TrimmedLiteral{}, fmt.Errorf("literal: line %q does not start with expected marker %q", rawLine, strings.TrimRight(prefix, " "))
	}
	trimmed += len(rest) - len(bare)
	rest = bare
	// a single separating space after the marker is part of the marker and
	// is trimmed along with it; more than one space is content.
	if strings.HasPrefix(rest, " ") {
		rest = rest[1:]
		trimmed++
	}

	suffix := variant.Suffix()
	if suffix != "" {
		bareSuffix := strings.TrimSuffix(rest, strings.TrimLeft(suffix, " "))
		if bareSuffix != rest {
			rest = bareSuffix
			rest = strings.TrimSuffix(rest, " ")
		}
	}

	endColumn := startColumn + trimmed + len([]rune(rest)) - 1
	if len([]rune(rest)) == 0 {
		endColumn = startColumn + trimmed
	}

	return TrimmedLiteral{
		variant:        variant,
		content:        rest,
		leadingTrimmed: trimmed,
		span: span.Span{
			Start: span.LineColumn{Line: lineNo, Column: startColumn + trimmed},
			End:   span.LineColumn{Line: lineNo, Column: endColumn},
		},
	}, nil
}

// Raw builds a TrimmedLiteral directly from content with no marker
// stripped, for sources that have no comment syntax of their own (a
// standalone markdown file, or a manifest's description field). The
// resulting literal carries SlashSlash as a nominal variant, since reflow
// and display only consult Variant() to pick comment-marker prefixes,
// which raw content has none of.
func Raw(content string, lineNo, startColumn int) TrimmedLiteral {
	runes := []rune(content)
	endColumn := startColumn
	if len(runes) > 0 {
		endColumn = startColumn + len(runes) - 1
	}
	return TrimmedLiteral{
		variant: SlashSlash,
		content: content,
		span: span.Span{
			Start: span.LineColumn{Line: lineNo, Column: startColumn},
			End:   span.LineColumn{Line: lineNo, Column: endColumn},
		},
	}
}

// RawMultiline builds a TrimmedLiteral directly from content that may itself
// span several physical lines (e.g. the entirety of a standalone markdown
// file), with no marker stripped. Internal newlines remain part of Content
// verbatim; Span covers the full extent, from (startLine, startColumn) to
// the final line's last column.
func RawMultiline(content string, startLine, startColumn int) TrimmedLiteral {
	lines := strings.Split(content, "\n")
	lastLine := startLine + len(lines) - 1
	lastLineRunes := len([]rune(lines[len(lines)-1]))
	endColumn := 0
	if lastLine == startLine {
		endColumn = startColumn
		if lastLineRunes > 0 {
			endColumn = startColumn + lastLineRunes - 1
		}
	} else if lastLineRunes > 0 {
		endColumn = lastLineRunes - 1
	}
	return TrimmedLiteral{
		variant: SlashSlash,
		content: content,
		span: span.Span{
			Start: span.LineColumn{Line: startLine, Column: startColumn},
			End:   span.LineColumn{Line: lastLine, Column: endColumn},
		},
	}
}

// Variant reports the comment syntax this literal was extracted from.
func (t TrimmedLiteral) Variant() CommentVariant { return t.variant }

// Content is the trimmed text of the line, with marker and separating
// space removed.
func (t TrimmedLiteral) Content() string { return t.content }

// Span is the LineColumn range of Content within the original file (i.e.
// excluding the stripped marker).
func (t TrimmedLiteral) Span() span.Span { return t.span }

// Len returns the character length of Content.
func (t TrimmedLiteral) Len() int { return len([]rune(t.content)) }

// IndentColumn returns the column (0-indexed) the raw source line started
// at, before its comment marker and separating space were trimmed away —
// i.e. the width of the line's leading indentation. Reflow uses this to
// reconstruct that indentation and the marker on lines it rewraps.
func (t TrimmedLiteral) IndentColumn() int { return t.span.Start.Column - t.leadingTrimmed }

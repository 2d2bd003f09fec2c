// Package span defines the coordinate types shared by every stage of the
// extraction pipeline: a character-based Range into a chunk's flattened
// text, and a line/column Span into the original source file.
package span

import (
	"fmt"
)

// LineColumn is a single point in source text. Line is 1-indexed, Column is
// 0-indexed and counts unicode scalar values (runes), not bytes.
type LineColumn struct {
	Line   int
	Column int
}

func (lc LineColumn) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Column)
}

// Less reports whether lc occurs strictly before other.
func (lc LineColumn) Less(other LineColumn) bool {
	if lc.Line != other.Line {
		return lc.Line < other.Line
	}
	return lc.Column < other.Column
}

// Span is an inclusive start/end pair of LineColumns, relative to the
// beginning of whatever document it was derived from.
type Span struct {
	Start LineColumn
	End   LineColumn
}

// Range is a half-open [Start, End) character offset into a flattened
// string (typically CheckableChunk.AsStr()).
type Range struct {
	Start int
	End   int
}

// Len returns the number of characters covered by r.
func (r Range) Len() int { return r.End - r.Start }

// CoversLine reports whether line (1-indexed) falls within s.
func (s Span) CoversLine(line int) bool {
	return line >= s.Start.Line && line <= s.End.Line
}

// OneLineLen returns the character length of s when it spans a single line,
// and ok=false when it spans multiple lines (length cannot be determined
// without the underlying text).
func (s Span) OneLineLen() (n int, ok bool) {
	if s.Start.Line != s.End.Line {
		return 0, false
	}
	return s.End.Column + 1 - s.Start.Column, true
}

// IsMultiline reports whether s spans more than one line.
func (s Span) IsMultiline() bool {
	return s.Start.Line != s.End.Line
}

// ToRange converts a single-line Span to a character Range. It fails for
// multiline spans, which have no single line-relative range.
func (s Span) ToRange() (Range, error) {
	if s.Start.Line != s.End.Line {
		return Range{}, fmt.Errorf("span: start and end are not on the same line: %d vs %d", s.Start.Line, s.End.Line)
	}
	return Range{Start: s.Start.Column, End: s.End.Column + 1}, nil
}

// SpanFromRange builds a single-line Span at the given 1-indexed line from a
// half-open character Range. It fails if the range is empty or inverted.
func SpanFromRange(line int, r Range) (Span, error) {
	if r.Start >= r.End {
		return Span{}, fmt.Errorf("span: range must be non-empty to convert to a span, got %d..%d", r.Start, r.End)
	}
	return Span{
		Start: LineColumn{Line: line, Column: r.Start},
		End:   LineColumn{Line: line, Column: r.End - 1},
	}, nil
}

// RelativeTo expresses s as a Range relative to the start of scope. Both
// must resolve to single-line ranges, and scope must fully contain s.
func (s Span) RelativeTo(scope Span) (Range, error) {
	if s.Start.Line != scope.Start.Line {
		return Range{}, fmt.Errorf("span: %v is not on the same line as %v", s, scope)
	}
	scopeRange, err := scope.ToRange()
	if err != nil {
		return Range{}, err
	}
	meRange, err := s.ToRange()
	if err != nil {
		return Range{}, err
	}
	if scopeRange.Start > meRange.Start {
		return Range{}, fmt.Errorf("span: start of %v is not inside of %v", s, scope)
	}
	if scopeRange.End < meRange.End {
		return Range{}, fmt.Errorf("span: end of %v is not inside of %v", s, scope)
	}
	offset := meRange.Start - scopeRange.Start
	length := meRange.End - meRange.Start
	return Range{Start: offset, End: offset + length}, nil
}

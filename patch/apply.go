package patch

import (
	"fmt"
	"sort"

	"docspell.dev/docspell/errtag"
	"docspell.dev/docspell/span"
)

// ApplyPatches applies patches to source, a carbon copy of the original
// buffer split into lines, and returns the result. Patches are applied in
// source order, patches at the same position in input order; ApplyPatches
// fails if any two Replace patches overlap.
// Insert patches are applied at the LineColumn they name, interleaved with
// the surrounding Replace output.
func ApplyPatches(patches []Patch, source []string) (string, error) {
	if err := checkOverlap(patches); err != nil {
		return "", err
	}

	sorted := make([]Patch, len(patches))
	copy(sorted, patches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return patchKey(sorted[i]).Less(patchKey(sorted[j]))
	})

	var out []byte
	cursor := span.LineColumn{Line: 1, Column: 0}

	emitUpTo := func(target span.LineColumn) error {
		for cursor.Line < target.Line || (cursor.Line == target.Line && cursor.Column < target.Column) {
			if cursor.Line > len(source) {
				return fmt.Errorf("%w: cursor %v moved beyond end of %d-line buffer", errtag.ErrPatchOutOfRange, cursor, len(source))
			}
			line := ""
			if cursor.Line-1 < len(source) {
				line = source[cursor.Line-1]
			}
			runes := []rune(line)
			end := len(runes)
			if target.Line == cursor.Line && target.Column < end {
				end = target.Column
			}
			if cursor.Column < end {
				out = append(out, []byte(string(runes[cursor.Column:end]))...)
			}
			if target.Line == cursor.Line {
				cursor.Column = target.Column
				break
			}
			out = append(out, '\n')
			cursor = span.LineColumn{Line: cursor.Line + 1, Column: 0}
		}
		return nil
	}

	for _, p := range sorted {
		switch p.Kind {
		case PatchInsert:
			if err := emitUpTo(p.At); err != nil {
				return "", err
			}
			out = append(out, []byte(p.Text)...)
		case PatchReplace:
			if err := emitUpTo(p.Span.Start); err != nil {
				return "", err
			}
			out = append(out, []byte(p.Text)...)
			endExclusive := span.LineColumn{Line: p.Span.End.Line, Column: p.Span.End.Column + 1}
			if err := skipTo(source, &cursor, endExclusive); err != nil {
				return "", err
			}
		}
	}
	if err := emitUpTo(endOfBuffer(source)); err != nil {
		return "", err
	}
	return string(out), nil
}

// skipTo advances cursor to target without copying the skipped text (the
// text being replaced).
func skipTo(source []string, cursor *span.LineColumn, target span.LineColumn) error {
	if target.Line > len(source)+1 {
		return fmt.Errorf("%w: replace span end %v is beyond end of %d-line buffer", errtag.ErrPatchOutOfRange, target, len(source))
	}
	if target.Line-1 < len(source) {
		lineLen := len([]rune(source[target.Line-1]))
		if target.Column > lineLen {
			target.Column = lineLen
		}
	}
	*cursor = target
	return nil
}

func endOfBuffer(source []string) span.LineColumn {
	if len(source) == 0 {
		return span.LineColumn{Line: 1, Column: 0}
	}
	last := len([]rune(source[len(source)-1]))
	return span.LineColumn{Line: len(source), Column: last}
}

func patchKey(p Patch) span.LineColumn {
	if p.Kind == PatchInsert {
		return p.At
	}
	return p.Span.Start
}

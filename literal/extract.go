package literal

import (
	"go/ast"
	"go/token"
	"log/slog"
	"strings"
)

// FromCommentGroup classifies and trims every line of a *ast.CommentGroup
// into a slice of TrimmedLiterals. isPackageDoc marks a comment group that
// immediately precedes a `package` clause (DoubleSlashEM); otherwise a
// `//`-style group immediately attached to a following declaration is
// TripleSlash, and any other `//`-style group is SlashSlash. `/* */` groups
// are always SlashAsterisk, since Go doesn't distinguish block-doc from
// block-developer comments syntactically.
func FromCommentGroup(fset *token.FileSet, cg *ast.CommentGroup, isPackageDoc, isDoc bool) ([]TrimmedLiteral, error) {
	var out []TrimmedLiteral
	for _, c := range cg.List {
		pos := fset.Position(c.Pos())
		text := c.Text
		variant := SlashSlash
		switch {
		case strings.HasPrefix(text, "/*"):
			variant = SlashAsterisk
		case isPackageDoc:
			variant = DoubleSlashEM
		case isDoc:
			variant = TripleSlash
		}
		lit, err := New(variant, text, pos.Line, pos.Column-1)
		if err != nil {
			slog.Warn("literal: skipping comment", "line", pos.Line, "error", err)
			continue
		}
		out = append(out, lit)
	}
	return out, nil
}

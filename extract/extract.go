// Package extract walks a file tree and builds a documentation.Documentation
// from Go source comments, developer comments, standalone markdown files,
// and manifest description fields.
package extract

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"docspell.dev/docspell/chunk"
	"docspell.dev/docspell/cluster"
	"docspell.dev/docspell/documentation"
	"docspell.dev/docspell/errtag"
	"docspell.dev/docspell/literal"
	"docspell.dev/docspell/origin"
)

// Options controls what an Extractor pulls out of a tree.
type Options struct {
	// DevComments includes ordinary (non-doc) `//` and `/* */` comments,
	// not just godoc comments attached to declarations.
	DevComments bool
	// Recursive walks subdirectories; otherwise only the given paths
	// themselves are scanned.
	Recursive bool
	// ManifestFilename names the manifest file (the Cargo.toml analogue)
	// whose package.description field is extracted as a checkable chunk.
	// Defaults to "manifest.toml" when empty.
	ManifestFilename string
}

// manifestFilename returns the configured manifest filename, or its default.
func (e Extractor) manifestFilename() string {
	if e.Options.ManifestFilename != "" {
		return e.Options.ManifestFilename
	}
	return "manifest.toml"
}

// Extractor walks one or more file-tree roots and accumulates a
// documentation.Documentation.
type Extractor struct {
	Options Options
}

// Extract walks paths (files or directories) and returns the accumulated
// Documentation. Per-file errors are logged and skipped rather than
// aborting the whole run, so one malformed file doesn't block checking the
// rest of the tree.
func (e Extractor) Extract(paths []string) (*documentation.Documentation, error) {
	doc := documentation.New()
	for _, p := range paths {
		if err := e.walkPath(doc, p); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (e Extractor) walkPath(doc *documentation.Documentation, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	if !info.IsDir() {
		if extractErr := e.extractFile(doc, root); extractErr != nil {
			slog.Warn("extract: skipping file", "path", root, "error", extractErr)
		}
		return nil
	}
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !e.Options.Recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if extractErr := e.extractFile(doc, path); extractErr != nil {
			slog.Warn("extract: skipping file", "path", path, "error", extractErr)
		}
		return nil
	})
}

func (e Extractor) extractFile(doc *documentation.Documentation, path string) error {
	switch {
	case filepath.Base(path) == e.manifestFilename():
		return ExtractManifestDescription(doc, path)
	case strings.HasSuffix(path, ".go"):
		return e.extractGoSource(doc, path)
	case strings.HasSuffix(path, ".md"):
		return e.extractCommonmark(doc, path)
	default:
		return nil
	}
}

func (e Extractor) extractGoSource(doc *documentation.Documentation, path string) error {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("extract: parsing %q: %w", path, err)
	}

	o := origin.Origin{Kind: origin.GoSource, Path: path}

	var lits []literal.TrimmedLiteral
	for _, cg := range f.Comments {
		isPackageDoc := cg == f.Doc
		isDoc := isPackageDoc || attachedToDecl(f, cg)
		if !isDoc && !e.Options.DevComments {
			continue
		}
		got, err := literal.FromCommentGroup(fset, cg, isPackageDoc, isDoc)
		if err != nil {
			return fmt.Errorf("extract: %w: %v", errtag.ErrUnknownLiteralForm, err)
		}
		lits = append(lits, got...)
	}
	if len(lits) == 0 {
		return nil
	}

	var chunks []chunk.CheckableChunk
	for _, set := range cluster.Cluster(lits) {
		chunks = append(chunks, chunk.FromLiteralSet(set))
	}
	doc.AddGoSource(o, chunks)
	return nil
}

// attachedToDecl reports whether cg is the doc comment of some declaration
// in f (i.e. Go's parser associated it with that node via its Doc field).
func attachedToDecl(f *ast.File, cg *ast.CommentGroup) bool {
	found := false
	ast.Inspect(f, func(n ast.Node) bool {
		if found {
			return false
		}
		var doc *ast.CommentGroup
		switch d := n.(type) {
		case *ast.GenDecl:
			doc = d.Doc
		case *ast.FuncDecl:
			doc = d.Doc
		case *ast.TypeSpec:
			doc = d.Doc
		case *ast.Field:
			doc = d.Doc
		}
		if doc == cg {
			found = true
			return false
		}
		return true
	})
	return found
}

func (e Extractor) extractCommonmark(doc *documentation.Documentation, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("extract: reading %q: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	o := origin.Origin{Kind: origin.CommonMark, Path: path}

	// A markdown file's entire content becomes one chunk with exactly one
	// fragment, so that a query against it yields a single covering span
	// rather than one entry per source line.
	set := cluster.FromLiteral(literal.RawMultiline(string(data), 1, 0))
	doc.AddCommonmark(o, []chunk.CheckableChunk{chunk.FromLiteralSet(set)})
	return nil
}

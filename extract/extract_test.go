package extract

import (
	"os"
	"path/filepath"
	"testing"

	"docspell.dev/docspell/documentation"
	"docspell.dev/docspell/origin"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestExtractGoSourceDocComment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "foo.go", `// Package foo does things.
package foo

// Bar does a thing.
func Bar() {}
`)
	e := Extractor{}
	doc, err := e.Extract([]string{path})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.IsEmpty() {
		t.Fatal("expected non-empty documentation")
	}
	o := origin.Origin{Kind: origin.GoSource, Path: path}
	chunks := doc.Chunks(o)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (package doc + func doc)", len(chunks))
	}
}

func TestExtractSkipsDevCommentsByDefault(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "foo.go", `package foo

var x = 1

// not a doc comment, just a trailing note
`)
	e := Extractor{}
	doc, err := e.Extract([]string{path})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !doc.IsEmpty() {
		t.Fatal("expected no chunks without DevComments enabled")
	}
}

func TestExtractIncludesDevCommentsWhenRequested(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "foo.go", `package foo

var x = 1

// not a doc comment, just a trailing note
`)
	e := Extractor{Options: Options{DevComments: true}}
	doc, err := e.Extract([]string{path})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.IsEmpty() {
		t.Fatal("expected a chunk with DevComments enabled")
	}
}

func TestExtractCommonmark(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "README.md", "Hello world.\nMore text.\n")
	e := Extractor{}
	doc, err := e.Extract([]string{path})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	o := origin.Origin{Kind: origin.CommonMark, Path: path}
	chunks := doc.Chunks(o)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
}

func TestExtractManifestDescription(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "manifest.toml", "[package]\ndescription = \"A useful libary for doing things.\"\n")
	doc := documentation.New()
	if err := ExtractManifestDescription(doc, path); err != nil {
		t.Fatalf("ExtractManifestDescription: %v", err)
	}
	o := origin.Origin{Kind: origin.ModuleManifestDescription, Path: path}
	if len(doc.Chunks(o)) != 1 {
		t.Fatal("expected one chunk for manifest description")
	}
}

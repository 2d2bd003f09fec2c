// Package origin identifies where a CheckableChunk's content came from.
package origin

import "fmt"

// Kind distinguishes the provenance of a chunk.
type Kind int

const (
	// GoSource is a chunk extracted from comments in a Go source file.
	GoSource Kind = iota
	// CommonMark is a chunk extracted from a standalone markdown file.
	CommonMark
	// ModuleManifestDescription is a chunk extracted from a manifest's
	// free-text description field (e.g. a package description in a TOML
	// sidecar file, mirroring Cargo.toml's `package.description`).
	ModuleManifestDescription
	// TestGoSource is a synthetic, test-only origin with a fixed path,
	// used so fixtures don't need a real file on disk.
	TestGoSource
	// TestCommonMark is the CommonMark analogue of TestGoSource.
	TestCommonMark
)

// Origin names the file (or synthetic fixture) a chunk was derived from.
type Origin struct {
	Kind Kind
	Path string
}

func (o Origin) String() string {
	switch o.Kind {
	case TestGoSource:
		return "<test-go-source>"
	case TestCommonMark:
		return "<test-commonmark>"
	default:
		return o.Path
	}
}

// TestOrigin builds a fixed synthetic origin for tests, identified by kind.
func TestOrigin(kind Kind) (Origin, error) {
	switch kind {
	case TestGoSource:
		return Origin{Kind: TestGoSource, Path: "<test-go-source>"}, nil
	case TestCommonMark:
		return Origin{Kind: TestCommonMark, Path: "<test-commonmark>"}, nil
	default:
		return Origin{}, fmt.Errorf("origin: %d is not a test-only origin kind", kind)
	}
}

package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"docspell.dev/docspell/chunk"
	"docspell.dev/docspell/cluster"
	"docspell.dev/docspell/documentation"
	"docspell.dev/docspell/literal"
	"docspell.dev/docspell/origin"
)

// manifestShape is the subset of a TOML manifest's fields this package
// cares about: a free-text package description, the analogue of Cargo.toml's
// `package.description`.
type manifestShape struct {
	Package struct {
		Description string `toml:"description"`
	} `toml:"package"`
}

// ExtractManifestDescription decodes path as TOML and, if it has a non-empty
// package.description field, records it as a single checkable chunk. Since
// go-toml/v2 does not expose the byte span of a decoded value, the
// description's span is re-derived by locating its literal text within the
// raw file bytes — the same manual approach needed when the data format's
// decoder provides no position API.
func ExtractManifestDescription(doc *documentation.Documentation, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("extract: reading manifest %q: %w", path, err)
	}
	var m manifestShape
	if err := toml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("extract: decoding manifest %q: %w", path, err)
	}
	if m.Package.Description == "" {
		return nil
	}

	lineNo, col, ok := locateDescription(string(raw), m.Package.Description)
	if !ok {
		return fmt.Errorf("extract: could not locate description text within %q", path)
	}

	o := origin.Origin{Kind: origin.ModuleManifestDescription, Path: path}
	set := cluster.FromLiteral(literal.Raw(m.Package.Description, lineNo, col))
	doc.AddModuleManifestDescription(o, chunk.FromLiteralSet(set))
	return nil
}

// locateDescription finds the first occurrence of needle within raw and
// converts its byte offset into a 1-indexed line / 0-indexed column pair by
// walking raw's characters up to that point.
func locateDescription(raw, needle string) (line, col int, ok bool) {
	idx := strings.Index(raw, needle)
	if idx < 0 {
		return 0, 0, false
	}
	line, col = 1, 0
	for _, r := range raw[:idx] {
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col, true
}

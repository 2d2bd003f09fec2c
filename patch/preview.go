package patch

import (
	"fmt"
	"strings"

	"github.com/pkg/diff"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Preview renders a unified diff between original and patched, for
// showing a pending set of BandAid applications to a human before they are
// written to disk.
func Preview(path, original, patched string) string {
	var b strings.Builder
	err := diff.Text(path, path, original, patched, &b)
	if err != nil {
		// diff.Text only fails on writer errors; strings.Builder never
		// returns one, so this path is unreachable in practice.
		return fmt.Sprintf("(diff generation failed: %v)\n", err)
	}
	return b.String()
}

// ExplainOverlap pinpoints the character run shared between two candidate
// replacement texts that target overlapping spans, for a human-readable
// ErrPatchOverlap message.
func ExplainOverlap(a, b string) string {
	differ := dmp.New()
	diffs := differ.DiffMain(a, b, false)
	for _, d := range diffs {
		if d.Type == dmp.DiffEqual && len(d.Text) > 0 {
			return d.Text
		}
	}
	return ""
}

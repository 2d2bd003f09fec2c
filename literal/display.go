package literal

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// highlight colors the sub-range [from,to) of content differently from the
// rest, for debugging output.
var (
	contextStyle   = color.New(color.FgWhite)
	highlightStyle = color.New(color.FgYellow, color.Bold)
)

// Display renders t with the character range [from,to) highlighted, for
// debugging and verbose-mode output. It never returns an error: an
// out-of-bounds range is clamped rather than rejected, since this is a
// diagnostic aid, not a correctness-bearing path.
func (t TrimmedLiteral) Display(from, to int) string {
	runes := []rune(t.content)
	if from < 0 {
		from = 0
	}
	if to > len(runes) {
		to = len(runes)
	}
	if from > to {
		from, to = to, from
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", t.variant)
	b.WriteString(contextStyle.Sprint(string(runes[:from])))
	b.WriteString(highlightStyle.Sprint(string(runes[from:to])))
	b.WriteString(contextStyle.Sprint(string(runes[to:])))
	return b.String()
}

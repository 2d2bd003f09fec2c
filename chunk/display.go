package chunk

import (
	"strings"

	"github.com/fatih/color"
)

var (
	chunkContext   = color.New(color.FgWhite)
	chunkHighlight = color.New(color.FgRed, color.Bold, color.Underline)
)

// Display renders the chunk's content with the character range [from,to)
// highlighted, for verbose diagnostic output.
func (c CheckableChunk) Display(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(c.runes) {
		to = len(c.runes)
	}
	if from > to {
		from, to = to, from
	}
	var b strings.Builder
	b.WriteString(chunkContext.Sprint(string(c.runes[:from])))
	b.WriteString(chunkHighlight.Sprint(string(c.runes[from:to])))
	b.WriteString(chunkContext.Sprint(string(c.runes[to:])))
	return b.String()
}

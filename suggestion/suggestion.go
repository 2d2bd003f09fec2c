// Package suggestion defines the type a checker emits: a proposed
// replacement for one Span of an Origin's source.
package suggestion

import (
	"docspell.dev/docspell/origin"
	"docspell.dev/docspell/span"
)

// Suggestion proposes replacing the text at Span in Origin's source with
// Replacement, as produced by CheckerName.
type Suggestion struct {
	Origin      origin.Origin
	Span        span.Span
	Replacement string
	CheckerName string
	// Message explains why the change is suggested, for a human-facing
	// diagnostic; it carries no semantic weight for patch application.
	Message string
}

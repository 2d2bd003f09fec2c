// Package errtag defines the sentinel errors checked with errors.Is across
// the extraction and patch pipeline, grouped by the stage that raises them.
package errtag

import "errors"

// Extraction errors: raised while turning source bytes into literals/chunks.
var (
	ErrUnknownLiteralForm = errors.New("extraction: unrecognized comment literal form")
	ErrNoComments         = errors.New("extraction: file contains no checkable comments")
)

// Mapping errors: raised while translating between content ranges and
// source spans.
var (
	ErrMappingNotFound = errors.New("mapping: no source mapping entry covers the requested range")
)

// Patch integrity errors: raised while applying BandAids/Patches.
var (
	ErrPatchOverlap    = errors.New("patch: two patches target overlapping source spans")
	ErrPatchOutOfRange = errors.New("patch: patch span falls outside the source buffer")
)

// IO errors wrap the underlying os/io error; use errors.Is against the
// wrapped stdlib sentinel (os.ErrNotExist, etc.) rather than a docspell-
// specific one, since the taxonomy's "IoError" case is a thin pass-through
// of whatever the filesystem reported.

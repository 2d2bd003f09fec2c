// Package documentation aggregates CheckableChunks by the Origin they were
// extracted from, the unit a checker run operates on.
package documentation

import (
	"docspell.dev/docspell/chunk"
	"docspell.dev/docspell/origin"
)

// Documentation indexes chunks by the origin they were extracted from, in
// the order origins were first added.
type Documentation struct {
	order []origin.Origin
	index map[origin.Origin][]chunk.CheckableChunk
}

// New returns an empty Documentation.
func New() *Documentation {
	return &Documentation{index: make(map[origin.Origin][]chunk.CheckableChunk)}
}

// ContainsKey reports whether o already has chunks recorded.
func (d *Documentation) ContainsKey(o origin.Origin) bool {
	_, ok := d.index[o]
	return ok
}

// IsEmpty reports whether d has no origins at all.
func (d *Documentation) IsEmpty() bool { return len(d.order) == 0 }

// Origins returns the origins added to d, in insertion order.
func (d *Documentation) Origins() []origin.Origin { return d.order }

// Chunks returns the chunks recorded for o.
func (d *Documentation) Chunks(o origin.Origin) []chunk.CheckableChunk { return d.index[o] }

func (d *Documentation) add(o origin.Origin, chunks []chunk.CheckableChunk) {
	if len(chunks) == 0 {
		return
	}
	if !d.ContainsKey(o) {
		d.order = append(d.order, o)
	}
	d.index[o] = append(d.index[o], chunks...)
}

// AddGoSource records chunks extracted from a Go source file's comments.
func (d *Documentation) AddGoSource(o origin.Origin, chunks []chunk.CheckableChunk) {
	d.add(o, chunks)
}

// AddCommonmark records chunks extracted from a standalone markdown file.
func (d *Documentation) AddCommonmark(o origin.Origin, chunks []chunk.CheckableChunk) {
	d.add(o, chunks)
}

// AddModuleManifestDescription records the single chunk derived from a
// manifest's free-text description field.
func (d *Documentation) AddModuleManifestDescription(o origin.Origin, c chunk.CheckableChunk) {
	d.add(o, []chunk.CheckableChunk{c})
}

// Extend merges other into d, preserving insertion order of newly-seen
// origins.
func (d *Documentation) Extend(other *Documentation) {
	for _, o := range other.order {
		d.add(o, other.index[o])
	}
}

// Iter yields every (origin, chunks) pair in insertion order.
func (d *Documentation) Iter(yield func(origin.Origin, []chunk.CheckableChunk) bool) {
	for _, o := range d.order {
		if !yield(o, d.index[o]) {
			return
		}
	}
}

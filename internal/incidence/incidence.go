// Package incidence maintains the derived relation from vertex positions to
// the positions of the hyperedges that reference them.
//
// The relation is a slice of roaring bitmaps aligned with the vertex store's
// dense array: slot i holds the hyperedge positions referencing the vertex at
// position i. It is kept in lockstep with both stores' swap-compactions.
package incidence

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hypergraph/core"
)

// Relation maps vertex positions to sets of hyperedge positions.
type Relation struct {
	sets []*roaring.Bitmap
}

// New creates an empty relation with room for capacity vertices.
func New(capacity int) *Relation {
	return &Relation{sets: make([]*roaring.Bitmap, 0, capacity)}
}

// Len returns the number of vertex slots.
func (r *Relation) Len() int { return len(r.sets) }

// AddVertex appends an empty slot for a newly inserted vertex.
func (r *Relation) AddVertex() {
	r.sets = append(r.sets, roaring.New())
}

// SwapRemoveVertex mirrors the vertex store's swap-compaction: the slot at
// last moves into p and the relation shrinks by one.
func (r *Relation) SwapRemoveVertex(p, last core.Position) {
	r.sets[p] = r.sets[last]
	r.sets[last] = nil
	r.sets = r.sets[:last]
}

// Link records that hyperedge h references every vertex in vertices.
// Repeated vertices are recorded once.
func (r *Relation) Link(vertices []core.Position, h core.Position) {
	for _, v := range vertices {
		r.sets[v].Add(uint32(h))
	}
}

// Unlink removes hyperedge h from every vertex in vertices.
func (r *Relation) Unlink(vertices []core.Position, h core.Position) {
	for _, v := range vertices {
		r.sets[v].Remove(uint32(h))
	}
}

// MoveHyperedge mirrors the hyperedge store's swap-compaction for the entry
// that moved from one position to another.
func (r *Relation) MoveHyperedge(vertices []core.Position, from, to core.Position) {
	for _, v := range vertices {
		s := r.sets[v]
		s.Remove(uint32(from))
		s.Add(uint32(to))
	}
}

// Hyperedges returns the positions of hyperedges referencing v, ascending.
func (r *Relation) Hyperedges(v core.Position) []core.Position {
	if int(v) >= len(r.sets) {
		return nil
	}
	raw := r.sets[v].ToArray()
	out := make([]core.Position, len(raw))
	for i, h := range raw {
		out[i] = core.Position(h)
	}
	return out
}

// Union returns the ascending union of the hyperedge sets of the given vertices.
func (r *Relation) Union(vertices ...core.Position) []core.Position {
	acc := roaring.New()
	for _, v := range vertices {
		if int(v) < len(r.sets) {
			acc.Or(r.sets[v])
		}
	}
	raw := acc.ToArray()
	out := make([]core.Position, len(raw))
	for i, h := range raw {
		out[i] = core.Position(h)
	}
	return out
}

// ClearLinks empties every slot while keeping the vertex count.
func (r *Relation) ClearLinks() {
	for _, s := range r.sets {
		s.Clear()
	}
}

// Diff returns an error describing the first slot where r and o differ.
func (r *Relation) Diff(o *Relation) error {
	if len(r.sets) != len(o.sets) {
		return fmt.Errorf("incidence: %d vertex slots, expected %d", len(r.sets), len(o.sets))
	}
	for i := range r.sets {
		if !r.sets[i].Equals(o.sets[i]) {
			return fmt.Errorf("incidence: vertex position %d has hyperedges %v, expected %v",
				i, r.sets[i].ToArray(), o.sets[i].ToArray())
		}
	}
	return nil
}

// Distinct returns the number of distinct positions in vertices.
// A hyperedge whose sequence has exactly one distinct vertex is a self-loop.
func Distinct(vertices []core.Position) int {
	rb := roaring.New()
	for _, v := range vertices {
		rb.Add(uint32(v))
	}
	return int(rb.GetCardinality())
}

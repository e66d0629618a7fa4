package hypergraph

import (
	"iter"
	"slices"
	"time"

	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/internal/store"
)

// AddHyperedge inserts a hyperedge over the given vertices, in order, with the
// given weight. Vertices may repeat.
//
// It fails with ErrNoVertices for an empty sequence, ErrNotFound for an
// unknown vertex and ErrDuplicateHyperedge when an identical hyperedge is live
// (the error's Index is that hyperedge). Duplicates are always rejected,
// regardless of the CollisionPolicy.
func (g *Hypergraph[V, W]) AddHyperedge(vertices []core.VertexIndex, weight W) (id core.HyperedgeIndex, err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordInsert(time.Since(start), err)
		g.logger.LogMutation(OpAddHyperedge, uint64(id), err)
	}()

	positions, err := g.resolveVertices(OpAddHyperedge, vertices)
	if err != nil {
		return 0, err
	}
	key := store.Key[W]{Vertices: positions, Weight: weight}

	if q, ok := g.keys.Find(key); ok {
		existing, err := g.hyperedges.IDAt(q)
		if err != nil {
			return 0, internalError(OpAddHyperedge, EntityHyperedge, q, err)
		}
		return 0, hyperedgeError(OpAddHyperedge, existing, ErrDuplicateHyperedge)
	}

	id, p, err := g.hyperedges.Insert(key)
	if err != nil {
		return 0, translateError(OpAddHyperedge, EntityHyperedge, 0, err)
	}
	g.incidence.Link(positions, p)

	return id, nil
}

// GetHyperedgeVertices returns the ordered vertices of h.
func (g *Hypergraph[V, W]) GetHyperedgeVertices(h core.HyperedgeIndex) ([]core.VertexIndex, error) {
	key, err := g.hyperedges.Get(h)
	if err != nil {
		return nil, translateError(OpGetHyperedgeVertices, EntityHyperedge, uint64(h), err)
	}

	out := make([]core.VertexIndex, len(key.Vertices))
	for i, p := range key.Vertices {
		v, err := g.vertices.IDAt(p)
		if err != nil {
			return nil, internalError(OpGetHyperedgeVertices, EntityVertex, p, err)
		}
		out[i] = v
	}
	return out, nil
}

// GetHyperedgeWeight returns the weight of h.
func (g *Hypergraph[V, W]) GetHyperedgeWeight(h core.HyperedgeIndex) (W, error) {
	key, err := g.hyperedges.Get(h)
	if err != nil {
		return key.Weight, translateError(OpGetHyperedgeWeight, EntityHyperedge, uint64(h), err)
	}
	return key.Weight, nil
}

// UpdateHyperedgeVertices replaces the vertex sequence of h, keeping its weight
// and index. Setting the current sequence again is a no-op.
func (g *Hypergraph[V, W]) UpdateHyperedgeVertices(h core.HyperedgeIndex, vertices []core.VertexIndex) (err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordUpdate(time.Since(start), err)
		g.logger.LogMutation(OpUpdateHyperedgeVertices, uint64(h), err)
	}()

	if _, err := g.hyperedges.Position(h); err != nil {
		return translateError(OpUpdateHyperedgeVertices, EntityHyperedge, uint64(h), err)
	}
	positions, err := g.resolveVertices(OpUpdateHyperedgeVertices, vertices)
	if err != nil {
		return err
	}

	return g.rewriteHyperedge(OpUpdateHyperedgeVertices, h, func(old store.Key[W]) store.Key[W] {
		return store.Key[W]{Vertices: positions, Weight: old.Weight}
	})
}

// UpdateHyperedgeWeight replaces the weight of h, keeping its vertices and index.
func (g *Hypergraph[V, W]) UpdateHyperedgeWeight(h core.HyperedgeIndex, weight W) (err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordUpdate(time.Since(start), err)
		g.logger.LogMutation(OpUpdateHyperedgeWeight, uint64(h), err)
	}()

	return g.rewriteHyperedge(OpUpdateHyperedgeWeight, h, func(old store.Key[W]) store.Key[W] {
		return store.Key[W]{Vertices: old.Vertices, Weight: weight}
	})
}

// ReverseHyperedge reverses the vertex order of h. Weight and index are
// unchanged; reversing twice restores the original order.
func (g *Hypergraph[V, W]) ReverseHyperedge(h core.HyperedgeIndex) (err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordUpdate(time.Since(start), err)
		g.logger.LogMutation(OpReverseHyperedge, uint64(h), err)
	}()

	return g.rewriteHyperedge(OpReverseHyperedge, h, func(old store.Key[W]) store.Key[W] {
		reversed := slices.Clone(old.Vertices)
		slices.Reverse(reversed)
		return store.Key[W]{Vertices: reversed, Weight: old.Weight}
	})
}

// RemoveHyperedge removes h by swap-compaction. Vertices are not affected.
func (g *Hypergraph[V, W]) RemoveHyperedge(h core.HyperedgeIndex) (err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordDelete(time.Since(start), err)
		g.logger.LogMutation(OpRemoveHyperedge, uint64(h), err)
	}()

	return g.removeHyperedge(OpRemoveHyperedge, h)
}

// Hyperedges iterates live hyperedges and their weights in internal position
// order.
func (g *Hypergraph[V, W]) Hyperedges() iter.Seq2[core.HyperedgeIndex, W] {
	return func(yield func(core.HyperedgeIndex, W) bool) {
		for h, key := range g.hyperedges.All() {
			if !yield(h, key.Weight) {
				return
			}
		}
	}
}

// ClearHyperedges removes every hyperedge and keeps all vertices.
// Hyperedge indices are still never reused.
func (g *Hypergraph[V, W]) ClearHyperedges() {
	g.hyperedges.Reset()
	g.incidence.ClearLinks()
	g.logger.Debug("hyperedges cleared", "vertices", g.vertices.Len())
}

// rewriteHyperedge replaces the content of h with next(old).
//
// Content-wise this is inserting the new key and discarding the old entry; the
// new key takes over h's position, so the mapping is untouched. A result equal
// to the current content is a no-op. A result equal to another live hyperedge
// follows the CollisionPolicy: reject, or drop h and keep the other one.
func (g *Hypergraph[V, W]) rewriteHyperedge(op Op, h core.HyperedgeIndex, next func(old store.Key[W]) store.Key[W]) error {
	p, err := g.hyperedges.Position(h)
	if err != nil {
		return translateError(op, EntityHyperedge, uint64(h), err)
	}
	old, err := g.hyperedges.At(p)
	if err != nil {
		return internalError(op, EntityHyperedge, p, err)
	}

	key := next(old)
	if key.Equal(old) {
		return nil
	}

	if q, ok := g.keys.Find(key); ok && q != p {
		if g.opts.CollisionPolicy != CollisionMerge {
			return hyperedgeError(op, h, ErrDuplicateHyperedge)
		}
		kept, err := g.hyperedges.IDAt(q)
		if err != nil {
			return internalError(op, EntityHyperedge, q, err)
		}
		if err := g.removeHyperedge(op, h); err != nil {
			return err
		}
		g.metrics.RecordMerge()
		g.logger.LogMerge(op, h, kept)
		return nil
	}

	if err := g.hyperedges.Update(h, key); err != nil {
		return translateError(op, EntityHyperedge, uint64(h), err)
	}
	g.incidence.Unlink(old.Vertices, p)
	g.incidence.Link(key.Vertices, p)

	return nil
}

// removeHyperedge swap-compacts the hyperedge store and keeps the relation in
// step: h is unlinked, and the hyperedge moved into h's slot is re-pointed.
func (g *Hypergraph[V, W]) removeHyperedge(op Op, h core.HyperedgeIndex) error {
	p, err := g.hyperedges.Position(h)
	if err != nil {
		return translateError(op, EntityHyperedge, uint64(h), err)
	}
	old, err := g.hyperedges.At(p)
	if err != nil {
		return internalError(op, EntityHyperedge, p, err)
	}

	r, err := g.hyperedges.Remove(h)
	if err != nil {
		return translateError(op, EntityHyperedge, uint64(h), err)
	}
	g.incidence.Unlink(old.Vertices, r.Position)

	if r.Moved {
		moved, err := g.hyperedges.At(r.Position)
		if err != nil {
			return internalError(op, EntityHyperedge, r.Position, err)
		}
		g.incidence.MoveHyperedge(moved.Vertices, r.Last, r.Position)
	}

	return nil
}

// resolveVertices maps external vertex indices to their current positions.
// The returned slice is freshly allocated.
func (g *Hypergraph[V, W]) resolveVertices(op Op, vertices []core.VertexIndex) ([]core.Position, error) {
	if len(vertices) == 0 {
		return nil, &Error{Op: op, Entity: EntityHyperedge, Err: ErrNoVertices}
	}

	positions := make([]core.Position, len(vertices))
	for i, v := range vertices {
		p, err := g.vertices.Position(v)
		if err != nil {
			return nil, translateError(op, EntityVertex, uint64(v), err)
		}
		positions[i] = p
	}
	return positions, nil
}

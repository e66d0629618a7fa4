package hypergraph

import (
	"iter"
	"time"

	"github.com/hupe1980/hypergraph/core"
)

// AddVertex appends a vertex with the given payload and returns its index.
func (g *Hypergraph[V, W]) AddVertex(value V) (id core.VertexIndex, err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordInsert(time.Since(start), err)
		g.logger.LogMutation(OpAddVertex, uint64(id), err)
	}()

	id, _, err = g.vertices.Insert(value)
	if err != nil {
		return 0, translateError(OpAddVertex, EntityVertex, 0, err)
	}
	g.incidence.AddVertex()

	return id, nil
}

// GetVertex returns the payload of v.
func (g *Hypergraph[V, W]) GetVertex(v core.VertexIndex) (V, error) {
	value, err := g.vertices.Get(v)
	if err != nil {
		return value, translateError(OpGetVertex, EntityVertex, uint64(v), err)
	}
	return value, nil
}

// UpdateVertex replaces the payload of v in place.
func (g *Hypergraph[V, W]) UpdateVertex(v core.VertexIndex, value V) (err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordUpdate(time.Since(start), err)
		g.logger.LogMutation(OpUpdateVertex, uint64(v), err)
	}()

	return translateError(OpUpdateVertex, EntityVertex, uint64(v), g.vertices.Update(v, value))
}

// GetVertexHyperedges returns the hyperedges referencing v, in internal
// position order.
func (g *Hypergraph[V, W]) GetVertexHyperedges(v core.VertexIndex) ([]core.HyperedgeIndex, error) {
	p, err := g.vertices.Position(v)
	if err != nil {
		return nil, translateError(OpGetVertexHyperedges, EntityVertex, uint64(v), err)
	}

	positions := g.incidence.Hyperedges(p)
	out := make([]core.HyperedgeIndex, len(positions))
	for i, hp := range positions {
		h, err := g.hyperedges.IDAt(hp)
		if err != nil {
			return nil, internalError(OpGetVertexHyperedges, EntityHyperedge, hp, err)
		}
		out[i] = h
	}
	return out, nil
}

// Vertices iterates live vertices in internal position order.
func (g *Hypergraph[V, W]) Vertices() iter.Seq2[core.VertexIndex, V] {
	return g.vertices.All()
}

// RemoveVertex removes v and cascades into every hyperedge referencing it:
//
//   - a hyperedge whose only distinct vertex is v is removed
//   - any other hyperedge loses every occurrence of v, keeping order, weight
//     and external index
//
// The vertex store is then swap-compacted; hyperedges that referenced the
// vertex moved into v's slot are re-pointed to its new position.
//
// The whole cascade is planned before anything is mutated. If a rewrite would
// duplicate another hyperedge, the configured CollisionPolicy applies; under
// CollisionReject the call fails with ErrDuplicateHyperedge and nothing changes.
func (g *Hypergraph[V, W]) RemoveVertex(v core.VertexIndex) (err error) {
	start := time.Now()
	defer func() {
		g.metrics.RecordDelete(time.Since(start), err)
		g.logger.LogMutation(OpRemoveVertex, uint64(v), err)
	}()

	pv, err := g.vertices.Position(v)
	if err != nil {
		return translateError(OpRemoveVertex, EntityVertex, uint64(v), err)
	}

	c, err := g.planRemoveVertex(pv)
	if err != nil {
		return err
	}
	if err := g.commitRemoveVertex(v, c); err != nil {
		return err
	}

	g.metrics.RecordCascade(c.rewritten, c.removed, time.Since(start))
	g.logger.LogCascade(v, c.rewritten, c.removed, c.remapped, c.parallel)
	for _, s := range c.steps {
		if s.merged {
			g.metrics.RecordMerge()
			g.logger.LogMerge(OpRemoveVertex, s.id, s.keptID)
		}
	}

	return nil
}

package hypergraph

import (
	"slices"

	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/internal/incidence"
	"github.com/hupe1980/hypergraph/internal/store"
	"golang.org/x/sync/errgroup"
)

// step is the planned outcome for one hyperedge touched by a vertex removal.
// next is expressed in post-removal vertex positions.
type step[W comparable] struct {
	position core.Position
	id       core.HyperedgeIndex
	old      store.Key[W]
	next     store.Key[W]
	drop     bool
	merged   bool
	keptID   core.HyperedgeIndex
}

// cascade is a fully validated vertex removal, ready to commit.
type cascade[W comparable] struct {
	vertex core.Position
	last   core.Position
	steps  []step[W]

	parallel  bool
	rewritten int
	removed   int
	remapped  int
}

// planRemoveVertex computes the final content of every hyperedge that
// references the removed vertex pv or the vertex at the last position (which
// will be moved into pv). Nothing is mutated.
func (g *Hypergraph[V, W]) planRemoveVertex(pv core.Position) (*cascade[W], error) {
	last := core.Position(g.vertices.Len() - 1)

	touched := g.incidence.Union(pv, last)
	c := &cascade[W]{
		vertex: pv,
		last:   last,
		steps:  make([]step[W], len(touched)),
	}

	parallel, err := g.forEach(len(touched), func(i int) error {
		hp := touched[i]
		id, err := g.hyperedges.IDAt(hp)
		if err != nil {
			return internalError(OpRemoveVertex, EntityHyperedge, hp, err)
		}
		key, err := g.hyperedges.At(hp)
		if err != nil {
			return internalError(OpRemoveVertex, EntityHyperedge, hp, err)
		}
		c.steps[i] = planStep(hp, id, key, pv, last)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.parallel = parallel

	if err := g.resolveCollisions(c, touched); err != nil {
		return nil, err
	}

	for _, s := range c.steps {
		switch {
		case s.drop:
			c.removed++
		case slices.Contains(s.old.Vertices, pv):
			c.rewritten++
		default:
			c.remapped++
		}
	}

	return c, nil
}

// planStep derives one hyperedge's outcome. A hyperedge whose only distinct
// vertex is pv is dropped; otherwise every occurrence of pv is removed and
// last is renamed to pv, preserving order and weight.
func planStep[W comparable](hp core.Position, id core.HyperedgeIndex, key store.Key[W], pv, last core.Position) step[W] {
	s := step[W]{position: hp, id: id, old: key}

	if slices.Contains(key.Vertices, pv) && incidence.Distinct(key.Vertices) == 1 {
		s.drop = true
		return s
	}

	next := make([]core.Position, 0, len(key.Vertices))
	for _, v := range key.Vertices {
		if v == pv {
			continue
		}
		if v == last {
			v = pv
		}
		next = append(next, v)
	}
	s.next = store.Key[W]{Vertices: next, Weight: key.Weight}

	return s
}

// resolveCollisions checks the planned contents against each other and
// against every untouched live hyperedge, in ascending position order.
func (g *Hypergraph[V, W]) resolveCollisions(c *cascade[W], touched []core.Position) error {
	isTouched := make(map[core.Position]struct{}, len(touched))
	for _, hp := range touched {
		isTouched[hp] = struct{}{}
	}

	planned := store.NewKeySet[W](len(c.steps))
	owners := make([]int, 0, len(c.steps))

	for i := range c.steps {
		s := &c.steps[i]
		if s.drop {
			continue
		}

		var (
			collides bool
			keptID   core.HyperedgeIndex
		)
		if q, ok := g.keys.Find(s.next); ok {
			if _, replaced := isTouched[q]; !replaced {
				id, err := g.hyperedges.IDAt(q)
				if err != nil {
					return internalError(OpRemoveVertex, EntityHyperedge, q, err)
				}
				collides, keptID = true, id
			}
		}
		if !collides {
			if q, ok := planned.Find(s.next); ok {
				collides, keptID = true, c.steps[owners[q]].id
			}
		}

		if !collides {
			if _, err := planned.Append(s.next); err != nil {
				return translateError(OpRemoveVertex, EntityHyperedge, uint64(s.id), err)
			}
			owners = append(owners, i)
			continue
		}

		if g.opts.CollisionPolicy != CollisionMerge {
			return hyperedgeError(OpRemoveVertex, s.id, ErrDuplicateHyperedge)
		}
		s.drop, s.merged, s.keptID = true, true, keptID
	}

	return nil
}

// commitRemoveVertex applies a validated cascade. The only fallible step that
// could reject the plan (the key batch) runs first.
func (g *Hypergraph[V, W]) commitRemoveVertex(v core.VertexIndex, c *cascade[W]) error {
	var (
		updates []store.Update[W]
		retired []core.Position
	)
	for _, s := range c.steps {
		if s.drop {
			retired = append(retired, s.position)
			continue
		}
		updates = append(updates, store.Update[W]{Position: s.position, Key: s.next})
	}
	if err := g.keys.ReplaceAll(updates, retired...); err != nil {
		return translateError(OpRemoveVertex, EntityVertex, uint64(v), err)
	}

	// Detach every touched hyperedge from the relation using its old content,
	// while the relation still uses pre-removal vertex positions.
	touchedIDs := make(map[core.HyperedgeIndex]struct{}, len(c.steps))
	for _, s := range c.steps {
		g.incidence.Unlink(s.old.Vertices, s.position)
		touchedIDs[s.id] = struct{}{}
	}

	for _, s := range c.steps {
		if !s.drop {
			continue
		}
		r, err := g.hyperedges.Remove(s.id)
		if err != nil {
			return internalError(OpRemoveVertex, EntityHyperedge, s.position, err)
		}
		if !r.Moved {
			continue
		}
		if _, ok := touchedIDs[r.MovedID]; ok {
			// Linked below at its final position.
			continue
		}
		// Untouched keys reference neither pv nor last, so they are valid in
		// both the pre- and post-removal vertex positions.
		moved, err := g.hyperedges.At(r.Position)
		if err != nil {
			return internalError(OpRemoveVertex, EntityHyperedge, r.Position, err)
		}
		g.incidence.MoveHyperedge(moved.Vertices, r.Last, r.Position)
	}

	r, err := g.vertices.Remove(v)
	if err != nil {
		return internalError(OpRemoveVertex, EntityVertex, c.vertex, err)
	}
	g.incidence.SwapRemoveVertex(r.Position, r.Last)

	for _, s := range c.steps {
		if s.drop {
			continue
		}
		hp, err := g.hyperedges.Position(s.id)
		if err != nil {
			return internalError(OpRemoveVertex, EntityHyperedge, s.position, err)
		}
		g.incidence.Link(s.next.Vertices, hp)
	}

	return nil
}

// forEach runs fn for 0..n-1. At or above the parallel threshold the range is
// split into contiguous chunks processed by errgroup workers. fn must only
// write to its own index, which keeps the result identical to a sequential
// pass. It reports whether the parallel path was taken.
func (g *Hypergraph[V, W]) forEach(n int, fn func(i int) error) (bool, error) {
	workers := g.opts.MaxWorkers
	if g.opts.ParallelThreshold <= 0 || n < g.opts.ParallelThreshold || workers < 2 {
		for i := range n {
			if err := fn(i); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	var eg errgroup.Group
	eg.SetLimit(workers)

	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if err := fn(i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return true, eg.Wait()
}

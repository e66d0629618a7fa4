package hypergraph

import (
	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/internal/incidence"
	"github.com/hupe1980/hypergraph/internal/store"
)

// Hypergraph is a mutable store of vertices with payloads V and ordered,
// weighted hyperedges with weights W.
//
// Vertices and hyperedges live in dense arrays and are addressed by stable
// external indices. Hyperedges reference vertices by internal position, so
// removing a vertex cascades into every hyperedge that references it.
//
// A Hypergraph is not safe for concurrent use: mutating calls must be
// serialized by the caller. Every operation either completes, leaving the
// structure consistent, or fails before mutating anything.
type Hypergraph[V any, W comparable] struct {
	opts    Options
	logger  *Logger
	metrics MetricsCollector

	vertices   *store.Store[core.VertexIndex, V]
	hyperedges *store.Store[core.HyperedgeIndex, store.Key[W]]
	keys       *store.KeySet[W]
	incidence  *incidence.Relation
}

// New creates an empty Hypergraph.
//
// Example:
//
//	g := hypergraph.New[string, int](func(o *hypergraph.Options) {
//	    o.CollisionPolicy = hypergraph.CollisionMerge
//	})
func New[V any, W comparable](optFns ...func(o *Options)) *Hypergraph[V, W] {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.normalize()

	keys := store.NewKeySet[W](opts.InitialCapacity)

	return &Hypergraph[V, W]{
		opts:       opts,
		logger:     opts.Logger,
		metrics:    opts.MetricsCollector,
		vertices:   store.New[core.VertexIndex, V](store.NewDense[V](opts.InitialCapacity), opts.InitialCapacity),
		hyperedges: store.New[core.HyperedgeIndex, store.Key[W]](keys, opts.InitialCapacity),
		keys:       keys,
		incidence:  incidence.New(opts.InitialCapacity),
	}
}

// CountVertices returns the number of live vertices.
func (g *Hypergraph[V, W]) CountVertices() int { return g.vertices.Len() }

// CountHyperedges returns the number of live hyperedges.
func (g *Hypergraph[V, W]) CountHyperedges() int { return g.hyperedges.Len() }

// Validate checks every structural invariant:
//
//   - both external ↔ internal mappings are bijections covering their stores
//   - no two hyperedges have identical content
//   - every vertex position inside a hyperedge refers to a live vertex
//   - the vertex → hyperedges relation matches the hyperedge contents
//
// A failure is reported as ErrInternalIndexNotFound.
func (g *Hypergraph[V, W]) Validate() error {
	if err := g.vertices.Check(); err != nil {
		return internalError(OpValidate, EntityVertex, 0, err)
	}
	if err := g.hyperedges.Check(); err != nil {
		return internalError(OpValidate, EntityHyperedge, 0, err)
	}
	if err := g.keys.Check(); err != nil {
		return internalError(OpValidate, EntityHyperedge, 0, err)
	}

	n := g.vertices.Len()
	if g.incidence.Len() != n {
		return internalError(OpValidate, EntityVertex, 0, store.ErrPositionNotFound)
	}

	rebuilt := incidence.New(n)
	for range n {
		rebuilt.AddVertex()
	}
	for i := 0; i < g.keys.Len(); i++ {
		p := core.Position(i)
		key, _ := g.keys.At(p)
		if len(key.Vertices) == 0 {
			return internalError(OpValidate, EntityHyperedge, p, ErrNoVertices)
		}
		for _, v := range key.Vertices {
			if int(v) >= n {
				return internalError(OpValidate, EntityVertex, v, store.ErrPositionNotFound)
			}
		}
		rebuilt.Link(key.Vertices, p)
	}
	if err := g.incidence.Diff(rebuilt); err != nil {
		return internalError(OpValidate, EntityVertex, 0, err)
	}

	return nil
}

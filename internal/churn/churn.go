// Package churn drives a Hypergraph through a seeded, random mutation workload
// and checks its invariants along the way.
package churn

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hypergraph"
	"github.com/hupe1980/hypergraph/core"
	"github.com/hupe1980/hypergraph/testutil"
)

// Graph is the hypergraph instantiation used by the workload.
type Graph = hypergraph.Hypergraph[int, int]

// Config controls a workload run.
type Config struct {
	Seed int64
	// Ops is the number of random operations to perform.
	Ops int
	// Vertices is the number of vertices added before the random phase.
	Vertices int
	// MaxArity bounds the length of generated vertex sequences.
	MaxArity int
	// Weights is the number of distinct weights; small values provoke collisions.
	Weights int
	// ValidateEvery runs Validate after every n-th operation. 0 validates only
	// at the end.
	ValidateEvery int
}

// DefaultConfig is a small workload that exercises every operation.
var DefaultConfig = Config{
	Seed:          4711,
	Ops:           2000,
	Vertices:      32,
	MaxArity:      4,
	Weights:       3,
	ValidateEvery: 1,
}

// Stats counts the operations performed.
type Stats struct {
	Ops        int            `json:"ops"`
	PerOp      map[string]int `json:"per_op"`
	Rejected   int            `json:"rejected"`
	Vertices   int            `json:"vertices"`
	Hyperedges int            `json:"hyperedges"`
}

// Run executes the workload against g.
func Run(g *Graph, cfg Config) (Stats, error) {
	if cfg.MaxArity < 1 {
		cfg.MaxArity = 1
	}
	if cfg.Weights < 1 {
		cfg.Weights = 1
	}

	rng := testutil.NewRNG(cfg.Seed)
	stats := Stats{PerOp: make(map[string]int)}

	for i := range cfg.Vertices {
		if _, err := g.AddVertex(i); err != nil {
			return stats, err
		}
	}

	for i := range cfg.Ops {
		op, err := step(g, rng, cfg, i)
		stats.Ops++
		stats.PerOp[op]++
		switch {
		case err == nil:
		case errors.Is(err, hypergraph.ErrDuplicateHyperedge):
			stats.Rejected++
		default:
			return stats, fmt.Errorf("op %d (%s): %w", i, op, err)
		}

		if cfg.ValidateEvery > 0 && (i+1)%cfg.ValidateEvery == 0 {
			if err := g.Validate(); err != nil {
				return stats, fmt.Errorf("op %d (%s): %w", i, op, err)
			}
		}
	}

	if err := g.Validate(); err != nil {
		return stats, err
	}

	stats.Vertices = g.CountVertices()
	stats.Hyperedges = g.CountHyperedges()

	return stats, nil
}

func step(g *Graph, rng *testutil.RNG, cfg Config, i int) (string, error) {
	vertices := vertexIDs(g)
	hyperedges := hyperedgeIDs(g)

	roll := rng.Intn(100)
	switch {
	case roll < 15 || len(vertices) < 2:
		_, err := g.AddVertex(cfg.Vertices + i)
		return "add_vertex", err
	case roll < 45 || len(hyperedges) == 0:
		_, err := g.AddHyperedge(testutil.Sequence(rng, vertices, 1, cfg.MaxArity), rng.Intn(cfg.Weights))
		return "add_hyperedge", err
	case roll < 55:
		return "remove_vertex", g.RemoveVertex(testutil.Pick(rng, vertices))
	case roll < 63:
		return "remove_hyperedge", g.RemoveHyperedge(testutil.Pick(rng, hyperedges))
	case roll < 75:
		return "reverse_hyperedge", g.ReverseHyperedge(testutil.Pick(rng, hyperedges))
	case roll < 87:
		h := testutil.Pick(rng, hyperedges)
		return "update_hyperedge_vertices", g.UpdateHyperedgeVertices(h, testutil.Sequence(rng, vertices, 1, cfg.MaxArity))
	case roll < 94:
		return "update_hyperedge_weight", g.UpdateHyperedgeWeight(testutil.Pick(rng, hyperedges), rng.Intn(cfg.Weights))
	default:
		return "update_vertex", g.UpdateVertex(testutil.Pick(rng, vertices), -i)
	}
}

func vertexIDs(g *Graph) []core.VertexIndex {
	out := make([]core.VertexIndex, 0, g.CountVertices())
	for v := range g.Vertices() {
		out = append(out, v)
	}
	return out
}

func hyperedgeIDs(g *Graph) []core.HyperedgeIndex {
	out := make([]core.HyperedgeIndex, 0, g.CountHyperedges())
	for h := range g.Hyperedges() {
		out = append(out, h)
	}
	return out
}

// Hyperedge is the externally visible content of a hyperedge.
type Hyperedge struct {
	Vertices []core.VertexIndex
	Weight   int
}

// State is the externally visible content of a graph, keyed by external index.
type State struct {
	Vertices   map[core.VertexIndex]int
	Hyperedges map[core.HyperedgeIndex]Hyperedge
}

// Snapshot captures the externally visible state of g.
func Snapshot(g *Graph) (State, error) {
	s := State{
		Vertices:   make(map[core.VertexIndex]int, g.CountVertices()),
		Hyperedges: make(map[core.HyperedgeIndex]Hyperedge, g.CountHyperedges()),
	}
	for v, value := range g.Vertices() {
		s.Vertices[v] = value
	}
	for h, w := range g.Hyperedges() {
		vs, err := g.GetHyperedgeVertices(h)
		if err != nil {
			return s, err
		}
		s.Hyperedges[h] = Hyperedge{Vertices: vs, Weight: w}
	}
	return s, nil
}

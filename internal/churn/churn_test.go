package churn

import (
	"testing"

	"github.com/hupe1980/hypergraph"
	"github.com/hupe1980/hypergraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	for _, policy := range []hypergraph.CollisionPolicy{hypergraph.CollisionReject, hypergraph.CollisionMerge} {
		t.Run(policy.String(), func(t *testing.T) {
			metrics := &hypergraph.BasicMetricsCollector{}
			g := hypergraph.New[int, int](func(o *hypergraph.Options) {
				o.CollisionPolicy = policy
				o.MetricsCollector = metrics
			})

			stats, err := Run(g, DefaultConfig)
			require.NoError(t, err)

			assert.Equal(t, DefaultConfig.Ops, stats.Ops)
			assert.Equal(t, g.CountVertices(), stats.Vertices)
			assert.Equal(t, g.CountHyperedges(), stats.Hyperedges)
			assert.Positive(t, stats.PerOp["remove_vertex"])
			assert.Positive(t, stats.PerOp["add_hyperedge"])

			s := metrics.GetStats()
			assert.Positive(t, s.CascadeCount)
			if policy == hypergraph.CollisionReject {
				assert.Zero(t, s.MergeCount)
			}
		})
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	cfg := DefaultConfig
	cfg.Vertices = 8
	cfg.MaxArity = 6
	cfg.ValidateEvery = 10

	run := func(threshold int) State {
		g := hypergraph.New[int, int](func(o *hypergraph.Options) {
			o.CollisionPolicy = hypergraph.CollisionMerge
			o.ParallelThreshold = threshold
			o.MaxWorkers = 4
		})
		_, err := Run(g, cfg)
		require.NoError(t, err)

		s, err := Snapshot(g)
		require.NoError(t, err)
		return s
	}

	assert.Equal(t, run(0), run(1))
}

func TestSnapshot(t *testing.T) {
	g := hypergraph.New[int, int]()
	a, err := g.AddVertex(10)
	require.NoError(t, err)
	b, err := g.AddVertex(20)
	require.NoError(t, err)
	h, err := g.AddHyperedge([]core.VertexIndex{a, b}, 7)
	require.NoError(t, err)

	s, err := Snapshot(g)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Vertices[a])
	assert.Equal(t, Hyperedge{Vertices: []core.VertexIndex{a, b}, Weight: 7}, s.Hyperedges[h])
}

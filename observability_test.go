package hypergraph

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/hypergraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_MergeIsWarned(t *testing.T) {
	logger, buf := bufferLogger(slog.LevelWarn)
	g := New[string, int](func(o *Options) {
		o.Logger = logger
		o.CollisionPolicy = CollisionMerge
	})
	v := addVertices(t, g, "A", "B")
	dropped, err := g.AddHyperedge([]core.VertexIndex{v[0], v[1]}, 1)
	require.NoError(t, err)
	kept, err := g.AddHyperedge([]core.VertexIndex{v[0]}, 1)
	require.NoError(t, err)

	require.NoError(t, g.RemoveVertex(v[1]))

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "WARN", lines[0]["level"])
	assert.Equal(t, string(OpRemoveVertex), lines[0]["op"])
	assert.EqualValues(t, dropped, lines[0]["dropped"])
	assert.EqualValues(t, kept, lines[0]["kept"])
}

func TestLogger_Mutations(t *testing.T) {
	logger, buf := bufferLogger(slog.LevelDebug)
	g := New[string, int](func(o *Options) { o.Logger = logger })

	v, err := g.AddVertex("A")
	require.NoError(t, err)
	require.Error(t, g.RemoveVertex(v+1))
	require.NoError(t, g.RemoveVertex(v))

	var msgs []string
	for _, l := range logLines(t, buf) {
		msgs = append(msgs, l["msg"].(string))
	}
	assert.Equal(t, []string{
		"mutation completed",
		"mutation rejected",
		"vertex removal cascade",
		"mutation completed",
	}, msgs)
}

func TestLogger_InternalErrorsAtErrorLevel(t *testing.T) {
	logger, buf := bufferLogger(slog.LevelError)

	logger.LogMutation(OpValidate, 0, internalError(OpValidate, EntityVertex, 1, nil))
	logger.LogMutation(OpGetVertex, 0, vertexError(OpGetVertex, 0, ErrNotFound))

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "mutation aborted on broken index", lines[0]["msg"])
}

func TestLogger_With(t *testing.T) {
	logger, buf := bufferLogger(slog.LevelInfo)

	logger.WithOp(OpRemoveVertex).WithVertex(3).WithHyperedge(4).Info("x")

	lines := logLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "remove_vertex", lines[0]["op"])
	assert.EqualValues(t, 3, lines[0]["vertex"])
	assert.EqualValues(t, 4, lines[0]["hyperedge"])
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	g := New[string, int](func(o *Options) { o.MetricsCollector = m })

	v := addVertices(t, g, "A", "B")
	h, err := g.AddHyperedge([]core.VertexIndex{v[0], v[1]}, 1)
	require.NoError(t, err)
	_, err = g.AddHyperedge([]core.VertexIndex{v[0], v[1]}, 1)
	require.Error(t, err)
	require.NoError(t, g.ReverseHyperedge(h))
	require.NoError(t, g.UpdateVertex(v[0], "Z"))
	require.NoError(t, g.RemoveVertex(v[1]))
	require.Error(t, g.RemoveHyperedge(99))

	s := m.GetStats()
	assert.EqualValues(t, 4, s.InsertCount)
	assert.EqualValues(t, 1, s.InsertErrors)
	assert.EqualValues(t, 2, s.UpdateCount)
	assert.Zero(t, s.UpdateErrors)
	assert.EqualValues(t, 2, s.DeleteCount)
	assert.EqualValues(t, 1, s.DeleteErrors)
	assert.EqualValues(t, 1, s.CascadeCount)
	assert.EqualValues(t, 1, s.CascadeRewritten)
	assert.Zero(t, s.CascadeRemoved)
	assert.Zero(t, s.MergeCount)
}

func TestBasicMetricsCollector_Averages(t *testing.T) {
	m := &BasicMetricsCollector{}
	m.RecordInsert(10*time.Nanosecond, nil)
	m.RecordInsert(30*time.Nanosecond, nil)
	m.RecordCascade(1, 0, 8*time.Nanosecond)

	s := m.GetStats()
	assert.EqualValues(t, 20, s.InsertAvgNanos)
	assert.EqualValues(t, 8, s.CascadeAvgNanos)
	assert.Zero(t, (&BasicMetricsCollector{}).GetStats().InsertAvgNanos)
}

func TestParseCollisionPolicy(t *testing.T) {
	for _, p := range []CollisionPolicy{CollisionReject, CollisionMerge} {
		got, err := ParseCollisionPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParseCollisionPolicy("ignore")
	assert.Error(t, err)
	assert.Equal(t, "CollisionPolicy(7)", CollisionPolicy(7).String())
}
